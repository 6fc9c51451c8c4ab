package tournament

import "time"

// Couple is a registered entrant: two players playing together.
type Couple struct {
	ID           string    `json:"id"`
	Player1ID    string    `json:"player1_id"`
	Player2ID    string    `json:"player2_id"`
	Name         string    `json:"name,omitempty"`
	Seed         *int      `json:"seed,omitempty"` // lower is stronger, nil when unseeded
	Category     string    `json:"category,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Label returns a display name for the couple.
func (c Couple) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Player1ID + " / " + c.Player2ID
}

// IsSeeded reports whether the couple carries a seed rank.
func (c Couple) IsSeeded() bool {
	return c.Seed != nil
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	MatchPending    MatchStatus = "PENDING"
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchCompleted  MatchStatus = "COMPLETED"
	MatchWalkover   MatchStatus = "WALKOVER"
)

// Phase identifies which part of a draw a match belongs to.
type Phase string

const (
	PhaseElimination Phase = "ELIMINATION"
	PhaseZone        Phase = "ZONE"
	PhaseKnockout    Phase = "KNOCKOUT"
)

// Slot is one side of a match. A slot is resolved once CoupleID is set,
// pending while it only references the match that will feed it, and a bye
// when nobody will ever fill it.
type Slot struct {
	CoupleID    string `json:"couple_id,omitempty"`
	FromMatchID string `json:"from_match_id,omitempty"`
	Bye         bool   `json:"bye,omitempty"`
}

// Resolved reports whether a couple occupies the slot.
func (s Slot) Resolved() bool {
	return s.CoupleID != ""
}

// SetScore holds the games won by each side in one set.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Match is a single contest between two slots.
type Match struct {
	ID          string      `json:"id"`
	Phase       Phase       `json:"phase"`
	ZoneID      string      `json:"zone_id,omitempty"`
	Round       int         `json:"round"`
	Position    int         `json:"position"`
	A           Slot        `json:"a"`
	B           Slot        `json:"b"`
	Sets        []SetScore  `json:"sets,omitempty"`
	Status      MatchStatus `json:"status"`
	WinnerID    string      `json:"winner_id,omitempty"`
	NextMatchID string      `json:"next_match_id,omitempty"`
	NextSlot    int         `json:"next_slot,omitempty"` // 0 feeds A, 1 feeds B
}

// Decided reports whether the match has a winner.
func (m Match) Decided() bool {
	return m.Status == MatchCompleted || m.Status == MatchWalkover
}

// Ready reports whether both sides are known and the match still needs playing.
func (m Match) Ready() bool {
	return !m.Decided() && m.A.Resolved() && m.B.Resolved()
}

// LoserID returns the couple that lost a decided match, if any.
func (m Match) LoserID() string {
	if !m.Decided() {
		return ""
	}
	switch m.WinnerID {
	case m.A.CoupleID:
		return m.B.CoupleID
	case m.B.CoupleID:
		return m.A.CoupleID
	}
	return ""
}

// Involves reports whether the couple plays in the match.
func (m Match) Involves(coupleID string) bool {
	return coupleID != "" && (m.A.CoupleID == coupleID || m.B.CoupleID == coupleID)
}

// Result is what gets reported once a match is over.
type Result struct {
	WinnerID string     `json:"winner_id"`
	Sets     []SetScore `json:"sets,omitempty"`
	Walkover bool       `json:"walkover,omitempty"`
}

// Round is one elimination stage. Index 0 is the first round.
type Round struct {
	Index   int     `json:"index"`
	Matches []Match `json:"matches"`
}

// Bracket is a single-elimination tree.
type Bracket struct {
	Size       int     `json:"size"`
	Byes       int     `json:"byes"`
	Rounds     []Round `json:"rounds"`
	ChampionID string  `json:"champion_id,omitempty"`
}

// Clone returns a deep copy of the bracket.
func (b *Bracket) Clone() *Bracket {
	if b == nil {
		return nil
	}
	out := &Bracket{Size: b.Size, Byes: b.Byes, ChampionID: b.ChampionID}
	out.Rounds = make([]Round, len(b.Rounds))
	for i, r := range b.Rounds {
		out.Rounds[i] = Round{Index: r.Index, Matches: cloneMatches(r.Matches)}
	}
	return out
}

// Matches returns every match of the bracket in round order.
func (b *Bracket) Matches() []Match {
	if b == nil {
		return nil
	}
	var all []Match
	for _, r := range b.Rounds {
		all = append(all, r.Matches...)
	}
	return all
}

// Final returns the last match of the bracket.
func (b *Bracket) Final() (Match, bool) {
	if b == nil || len(b.Rounds) == 0 {
		return Match{}, false
	}
	last := b.Rounds[len(b.Rounds)-1]
	if len(last.Matches) == 0 {
		return Match{}, false
	}
	return last.Matches[0], true
}

// Zone is a round-robin group.
type Zone struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
	Matches []Match  `json:"matches"`
}

// Complete reports whether every match of the zone is decided.
func (z Zone) Complete() bool {
	for _, m := range z.Matches {
		if !m.Decided() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the zone.
func (z Zone) Clone() Zone {
	members := make([]string, len(z.Members))
	copy(members, z.Members)
	return Zone{ID: z.ID, Members: members, Matches: cloneMatches(z.Matches)}
}

// Standing is a couple's position within a zone.
type Standing struct {
	Position   int    `json:"position"`
	CoupleID   string `json:"couple_id"`
	Played     int    `json:"played"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
	SetsWon    int    `json:"sets_won"`
	SetsLost   int    `json:"sets_lost"`
	GamesWon   int    `json:"games_won"`
	GamesLost  int    `json:"games_lost"`
	DrawnByLot bool   `json:"drawn_by_lot,omitempty"`
}

// SetDiff is sets won minus sets lost.
func (s Standing) SetDiff() int { return s.SetsWon - s.SetsLost }

// GameDiff is games won minus games lost.
func (s Standing) GameDiff() int { return s.GamesWon - s.GamesLost }

// Draw is everything generated for a tournament once it starts.
type Draw struct {
	TournamentID string   `json:"tournament_id"`
	Format       Format   `json:"format"`
	Bracket      *Bracket `json:"bracket,omitempty"`
	Zones        []Zone   `json:"zones,omitempty"`
	Knockout     *Bracket `json:"knockout,omitempty"`
}

// Clone returns a deep copy of the draw.
func (d Draw) Clone() Draw {
	out := Draw{
		TournamentID: d.TournamentID,
		Format:       d.Format,
		Bracket:      d.Bracket.Clone(),
		Knockout:     d.Knockout.Clone(),
	}
	if d.Zones != nil {
		out.Zones = make([]Zone, len(d.Zones))
		for i, z := range d.Zones {
			out.Zones[i] = z.Clone()
		}
	}
	return out
}

func cloneMatches(in []Match) []Match {
	if in == nil {
		return nil
	}
	out := make([]Match, len(in))
	for i, m := range in {
		out[i] = m
		if m.Sets != nil {
			out[i].Sets = append([]SetScore(nil), m.Sets...)
		}
	}
	return out
}
