package zones

import (
	"fmt"

	"github.com/mauv0809/padel-draw/internal/tournament"
)

// RecordResult returns a copy of the zones with the result applied.
func RecordResult(zs []tournament.Zone, matchID string, res tournament.Result) ([]tournament.Zone, error) {
	z, i, ok := locate(zs, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tournament.ErrMatchNotFound, matchID)
	}
	out := clone(zs)
	m, err := out[z].Matches[i].Apply(res)
	if err != nil {
		return nil, err
	}
	out[z].Matches[i] = m
	return out, nil
}

// Start returns a copy of the zones with the match marked in progress.
func Start(zs []tournament.Zone, matchID string) ([]tournament.Zone, error) {
	z, i, ok := locate(zs, matchID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", tournament.ErrMatchNotFound, matchID)
	}
	out := clone(zs)
	m, err := out[z].Matches[i].Begin()
	if err != nil {
		return nil, err
	}
	out[z].Matches[i] = m
	return out, nil
}

// Ready lists pending zone matches in zone then slot order.
func Ready(zs []tournament.Zone) []tournament.Match {
	var ready []tournament.Match
	for _, z := range zs {
		for _, m := range z.Matches {
			if m.Ready() && m.Status == tournament.MatchPending {
				ready = append(ready, m)
			}
		}
	}
	return ready
}

// Find returns the zone match with the given id.
func Find(zs []tournament.Zone, matchID string) (tournament.Match, bool) {
	z, i, ok := locate(zs, matchID)
	if !ok {
		return tournament.Match{}, false
	}
	return zs[z].Matches[i], true
}

// Complete reports whether every zone has finished.
func Complete(zs []tournament.Zone) bool {
	for _, z := range zs {
		if !z.Complete() {
			return false
		}
	}
	return true
}

// Get returns the zone with the given id.
func Get(zs []tournament.Zone, zoneID string) (tournament.Zone, bool) {
	for _, z := range zs {
		if z.ID == zoneID {
			return z, true
		}
	}
	return tournament.Zone{}, false
}

func locate(zs []tournament.Zone, matchID string) (int, int, bool) {
	for z := range zs {
		for i, m := range zs[z].Matches {
			if m.ID == matchID {
				return z, i, true
			}
		}
	}
	return 0, 0, false
}

func clone(zs []tournament.Zone) []tournament.Zone {
	out := make([]tournament.Zone, len(zs))
	for i, z := range zs {
		out[i] = z.Clone()
	}
	return out
}
