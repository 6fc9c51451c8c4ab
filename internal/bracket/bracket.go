// Package bracket builds single-elimination brackets and advances winners
// through them.
package bracket

import (
	"fmt"
	"math/bits"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/seeding"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// Options tunes a Build call.
type Options struct {
	// MaxEntrants caps the number of couples. Zero means no cap.
	MaxEntrants int
	// AllowEmpty accepts an empty entrant list and returns an empty bracket.
	AllowEmpty bool
	// IDPrefix is prepended to every match id, e.g. "KO-".
	IDPrefix string
	// Phase is stamped on every match. Defaults to ELIMINATION.
	Phase tournament.Phase
}

// Build places the seeded couples into a bracket. seeded[0] is seed 1.
// Seeds > len(seeded) are byes, so the strongest seeds get them first.
func Build(seeded []tournament.Couple, opts Options) (*tournament.Bracket, error) {
	n := len(seeded)
	if n == 0 {
		if !opts.AllowEmpty {
			return nil, tournament.ErrEmptyEntrantList
		}
		return &tournament.Bracket{}, nil
	}
	if opts.MaxEntrants > 0 && n > opts.MaxEntrants {
		return nil, fmt.Errorf("%w: %d couples, maximum is %d", tournament.ErrBracketSizeOverflow, n, opts.MaxEntrants)
	}
	if err := seeding.CheckAmbiguous(seeded); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, n)
	for _, c := range seeded {
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: %s", tournament.ErrDuplicateCouple, c.ID)
		}
		seen[c.ID] = true
	}
	if n == 1 {
		return &tournament.Bracket{Size: 1, ChampionID: seeded[0].ID}, nil
	}
	if opts.Phase == "" {
		opts.Phase = tournament.PhaseElimination
	}

	size := NextPow2(n)
	slots := make([]string, size)
	for k := 1; k <= n; k++ {
		slots[SeedSlot(k, size)] = seeded[k-1].ID
	}

	numRounds := bits.TrailingZeros(uint(size))
	b := &tournament.Bracket{Size: size, Byes: size - n, Rounds: make([]tournament.Round, numRounds)}
	for r := 0; r < numRounds; r++ {
		count := size >> (r + 1)
		matches := make([]tournament.Match, count)
		for i := 0; i < count; i++ {
			m := tournament.Match{
				ID:       matchID(opts.IDPrefix, r, i),
				Phase:    opts.Phase,
				Round:    r,
				Position: i,
				Status:   tournament.MatchPending,
			}
			if r == 0 {
				m.A = tournament.Slot{CoupleID: slots[2*i], Bye: slots[2*i] == ""}
				m.B = tournament.Slot{CoupleID: slots[2*i+1], Bye: slots[2*i+1] == ""}
			} else {
				m.A = tournament.Slot{FromMatchID: matchID(opts.IDPrefix, r-1, 2*i)}
				m.B = tournament.Slot{FromMatchID: matchID(opts.IDPrefix, r-1, 2*i+1)}
			}
			if r < numRounds-1 {
				m.NextMatchID = matchID(opts.IDPrefix, r+1, i/2)
				m.NextSlot = i % 2
			}
			matches[i] = m
		}
		b.Rounds[r] = tournament.Round{Index: r, Matches: matches}
	}

	for i := range b.Rounds[0].Matches {
		m := &b.Rounds[0].Matches[i]
		if !m.A.Bye && !m.B.Bye {
			continue
		}
		m.Status = tournament.MatchWalkover
		if m.A.Bye {
			m.WinnerID = m.B.CoupleID
		} else {
			m.WinnerID = m.A.CoupleID
		}
		log.Debug("Bye awarded", "matchID", m.ID, "coupleID", m.WinnerID)
		advance(b, 0, i)
	}

	log.Debug("Bracket built", "couples", n, "size", size, "byes", b.Byes, "rounds", numRounds)
	return b, nil
}

// NextPow2 returns the smallest power of two that is >= n.
func NextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// SeedSlot returns the zero-based slot of seed k (1-based) in a bracket of
// the given size. First-round match j pairs seed reverse(j)+1 with its
// complement size-reverse(j), where reverse flips the bits of the match
// index. Seeds 1 and 2 land in opposite halves and seed 1 meets the lowest
// seed first.
func SeedSlot(k, size int) int {
	if size < 2 {
		return 0
	}
	width := bits.TrailingZeros(uint(size)) - 1
	if k <= size/2 {
		return 2 * reverse(k-1, width)
	}
	return 2*reverse(size-k, width) + 1
}

func reverse(v, width int) int {
	if width == 0 {
		return 0
	}
	return int(bits.Reverse(uint(v)) >> (bits.UintSize - width))
}

func matchID(prefix string, round, pos int) string {
	return fmt.Sprintf("%sR%dM%d", prefix, round+1, pos+1)
}

// advance copies the winner of Rounds[r].Matches[i] into the slot it feeds,
// or crowns the champion after the final.
func advance(b *tournament.Bracket, r, i int) {
	m := b.Rounds[r].Matches[i]
	if r == len(b.Rounds)-1 {
		b.ChampionID = m.WinnerID
		return
	}
	next := &b.Rounds[r+1].Matches[i/2]
	if i%2 == 0 {
		next.A.CoupleID = m.WinnerID
	} else {
		next.B.CoupleID = m.WinnerID
	}
}
