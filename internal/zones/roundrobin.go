package zones

import (
	"fmt"

	"github.com/mauv0809/padel-draw/internal/tournament"
)

// RoundRobin schedules every pairing of members once using the circle
// method. Match.Round is the rotation slot: no couple appears twice in the
// same slot, so a slot's matches can be played on parallel courts.
func RoundRobin(zoneID string, members []string) []tournament.Match {
	if len(members) < 2 {
		return []tournament.Match{}
	}
	ring := make([]string, len(members))
	copy(ring, members)
	if len(ring)%2 != 0 {
		ring = append(ring, "") // the couple drawn against "" rests this slot
	}
	size := len(ring)

	matches := make([]tournament.Match, 0, len(members)*(len(members)-1)/2)
	for r := 0; r < size-1; r++ {
		pos := 0
		for i := 0; i < size/2; i++ {
			a, b := ring[i], ring[size-1-i]
			if a == "" || b == "" {
				continue
			}
			matches = append(matches, tournament.Match{
				ID:       fmt.Sprintf("%s-R%dM%d", zoneID, r+1, pos+1),
				Phase:    tournament.PhaseZone,
				ZoneID:   zoneID,
				Round:    r,
				Position: pos,
				A:        tournament.Slot{CoupleID: a},
				B:        tournament.Slot{CoupleID: b},
				Status:   tournament.MatchPending,
			})
			pos++
		}
		// Keep the first couple fixed and rotate the rest one step.
		last := ring[size-1]
		copy(ring[2:], ring[1:size-1])
		ring[1] = last
	}
	return matches
}
