package zones

import (
	"math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/seeding"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// Standings ranks the zone members on the decided matches so far: wins,
// then set difference, then game difference. Two couples still level are
// split by their head-to-head match; anything left is drawn with rng and
// flagged DrawnByLot.
func Standings(z tournament.Zone, rng *rand.Rand) []tournament.Standing {
	table := make([]tournament.Standing, len(z.Members))
	index := make(map[string]int, len(z.Members))
	for i, id := range z.Members {
		table[i] = tournament.Standing{CoupleID: id}
		index[id] = i
	}

	for _, m := range z.Matches {
		if !m.Decided() {
			continue
		}
		a, okA := index[m.A.CoupleID]
		b, okB := index[m.B.CoupleID]
		if !okA || !okB {
			continue
		}
		tally(&table[a], &table[b], m, m.A.CoupleID)
	}

	sort.SliceStable(table, func(i, j int) bool { return better(table[i], table[j]) })

	for start := 0; start < len(table); {
		end := start + 1
		for end < len(table) && level(table[start], table[end]) {
			end++
		}
		switch group := table[start:end]; {
		case unplayed(group):
			// nothing to separate them yet; keep the seeding order
		case len(group) == 2:
			if winner, ok := headToHead(z, group[0].CoupleID, group[1].CoupleID); ok {
				if winner == group[1].CoupleID {
					group[0], group[1] = group[1], group[0]
				}
				break
			}
			drawLots(z.ID, group, &rng)
		case len(group) > 2:
			drawLots(z.ID, group, &rng)
		}
		start = end
	}

	for i := range table {
		table[i].Position = i + 1
	}
	return table
}

func tally(a, b *tournament.Standing, m tournament.Match, aID string) {
	a.Played++
	b.Played++
	if m.WinnerID == aID {
		a.Wins++
		b.Losses++
	} else {
		b.Wins++
		a.Losses++
	}
	sa, sb := tournament.SetsWon(m.Sets)
	a.SetsWon += sa
	a.SetsLost += sb
	b.SetsWon += sb
	b.SetsLost += sa
	for _, s := range m.Sets {
		a.GamesWon += s.A
		a.GamesLost += s.B
		b.GamesWon += s.B
		b.GamesLost += s.A
	}
}

func better(x, y tournament.Standing) bool {
	if x.Wins != y.Wins {
		return x.Wins > y.Wins
	}
	if x.SetDiff() != y.SetDiff() {
		return x.SetDiff() > y.SetDiff()
	}
	return x.GameDiff() > y.GameDiff()
}

func level(x, y tournament.Standing) bool {
	return x.Wins == y.Wins && x.SetDiff() == y.SetDiff() && x.GameDiff() == y.GameDiff()
}

func unplayed(group []tournament.Standing) bool {
	for _, s := range group {
		if s.Played > 0 {
			return false
		}
	}
	return true
}

// headToHead returns the winner of the decided match between a and b.
func headToHead(z tournament.Zone, a, b string) (string, bool) {
	for _, m := range z.Matches {
		if m.Decided() && m.Involves(a) && m.Involves(b) {
			return m.WinnerID, true
		}
	}
	return "", false
}

func drawLots(zoneID string, group []tournament.Standing, rng **rand.Rand) {
	if *rng == nil {
		*rng = seeding.NewRand(uint64(time.Now().UnixNano()))
	}
	(*rng).Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
	ids := make([]string, len(group))
	for i := range group {
		group[i].DrawnByLot = true
		ids[i] = group[i].CoupleID
	}
	log.Warn("Zone tie broken by lot", "zone", zoneID, "couples", ids)
}
