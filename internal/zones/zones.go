// Package zones deals couples into round-robin groups, schedules the group
// matches and ranks each group once results come in.
package zones

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// Options tunes a Build call.
type Options struct {
	// Policy picks zone sizes when couples do not divide evenly. Defaults to FILL.
	Policy tournament.PartialZonePolicy
	// AllowPartialZone accepts fewer couples than a single full zone.
	AllowPartialZone bool
	// AllowEmpty accepts an empty entrant list.
	AllowEmpty bool
}

// Build deals the seeded couples into zones of at most zoneSize members in
// serpentine order (A, B, C, C, B, A, ...) and generates every zone's round
// robin. seeded[0] is the strongest couple.
func Build(seeded []tournament.Couple, zoneSize int, opts Options) ([]tournament.Zone, error) {
	if zoneSize < 2 {
		return nil, fmt.Errorf("%w: %d", tournament.ErrInvalidZoneSize, zoneSize)
	}
	n := len(seeded)
	if n == 0 {
		if !opts.AllowEmpty {
			return nil, tournament.ErrEmptyEntrantList
		}
		return []tournament.Zone{}, nil
	}
	if n < zoneSize && !opts.AllowPartialZone {
		return nil, fmt.Errorf("%w: %d couples for zones of %d", tournament.ErrInsufficientEntrants, n, zoneSize)
	}

	caps, err := capacities(n, zoneSize, opts.Policy)
	if err != nil {
		return nil, err
	}
	zs := make([]tournament.Zone, len(caps))
	for i := range zs {
		zs[i] = tournament.Zone{ID: Name(i), Members: make([]string, 0, caps[i])}
	}

	count := len(zs)
	p := 0
	for _, c := range seeded {
		for {
			z := snake(p, count)
			p++
			if len(zs[z].Members) < caps[z] {
				zs[z].Members = append(zs[z].Members, c.ID)
				break
			}
		}
	}

	for i := range zs {
		zs[i].Matches = RoundRobin(zs[i].ID, zs[i].Members)
		log.Debug("Zone built", "zone", zs[i].ID, "members", len(zs[i].Members), "matches", len(zs[i].Matches))
	}
	return zs, nil
}

// capacities returns the size of each zone.
func capacities(n, zoneSize int, policy tournament.PartialZonePolicy) ([]int, error) {
	count := (n + zoneSize - 1) / zoneSize
	caps := make([]int, count)
	switch policy {
	case tournament.ZonesFill, "":
		for i := range caps {
			caps[i] = zoneSize
		}
		caps[count-1] = n - zoneSize*(count-1)
	case tournament.ZonesBalanced:
		base, extra := n/count, n%count
		for i := range caps {
			caps[i] = base
			if i < extra {
				caps[i]++
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown partial zone policy %q", tournament.ErrInvalidZoneSize, policy)
	}
	return caps, nil
}

// snake maps the p-th deal to a zone index: 0..count-1 then back down.
func snake(p, count int) int {
	z := p % (2 * count)
	if z >= count {
		z = 2*count - 1 - z
	}
	return z
}

// Name returns the letter name of the i-th zone: A..Z, AA, AB, ...
func Name(i int) string {
	name := ""
	for i >= 0 {
		name = string(rune('A'+i%26)) + name
		i = i/26 - 1
	}
	return name
}
