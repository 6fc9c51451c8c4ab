package seeding

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// RankByLevel assigns seed ranks from the combined level of both players,
// strongest couple first. Couples where neither player has a known level are
// left unseeded. Equal levels keep registration order.
func RankByLevel(couples []tournament.Couple, levels map[string]float64) []tournament.Couple {
	type rated struct {
		idx   int
		level float64
	}
	var known []rated
	out := make([]tournament.Couple, len(couples))
	for i, c := range couples {
		out[i] = c
		out[i].Seed = nil
		l1, ok1 := levels[c.Player1ID]
		l2, ok2 := levels[c.Player2ID]
		if !ok1 && !ok2 {
			log.Debug("No level known for couple", "coupleID", c.ID)
			continue
		}
		known = append(known, rated{idx: i, level: l1 + l2})
	}

	sort.SliceStable(known, func(i, j int) bool {
		if known[i].level != known[j].level {
			return known[i].level > known[j].level
		}
		return out[known[i].idx].RegisteredAt.Before(out[known[j].idx].RegisteredAt)
	})
	for rank, r := range known {
		seed := rank + 1
		out[r.idx].Seed = &seed
	}
	return out
}
