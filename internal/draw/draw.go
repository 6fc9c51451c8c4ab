// Package draw ties seeding, brackets and zones together into the draw of a
// tournament and routes results to the phase a match belongs to.
package draw

import (
	"fmt"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-draw/internal/bracket"
	"github.com/mauv0809/padel-draw/internal/seeding"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/mauv0809/padel-draw/internal/zones"
)

// KnockoutPrefix marks the matches of the cross-zone elimination.
const KnockoutPrefix = "KO-"

// Generate validates cfg, seeds the couples and builds the first phase of the
// draw. rng only matters for the RANDOM policy; nil uses a time seed.
func Generate(tournamentID string, couples []tournament.Couple, cfg tournament.Config, rng *rand.Rand) (tournament.Draw, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return tournament.Draw{}, err
	}
	if cfg.MaxEntrants > 0 && len(couples) > cfg.MaxEntrants {
		return tournament.Draw{}, fmt.Errorf("%w: %d couples, maximum is %d", tournament.ErrBracketSizeOverflow, len(couples), cfg.MaxEntrants)
	}

	seeded, err := seeding.Seed(couples, cfg.SeedingPolicy, seeding.Options{Rand: rng, AllowEmpty: cfg.AllowEmpty})
	if err != nil {
		return tournament.Draw{}, err
	}

	d := tournament.Draw{TournamentID: tournamentID, Format: cfg.Format}
	switch cfg.Format {
	case tournament.FormatElimination:
		b, err := bracket.Build(seeded, bracket.Options{MaxEntrants: cfg.MaxEntrants, AllowEmpty: cfg.AllowEmpty})
		if err != nil {
			return tournament.Draw{}, err
		}
		d.Bracket = b
	case tournament.FormatZones:
		zs, err := zones.Build(seeded, cfg.ZoneSize, zones.Options{
			Policy:           cfg.PartialZones,
			AllowPartialZone: cfg.AllowPartialZone,
			AllowEmpty:       cfg.AllowEmpty,
		})
		if err != nil {
			return tournament.Draw{}, err
		}
		d.Zones = zs
	}

	log.Info("Draw generated", "tournamentID", tournamentID, "format", cfg.Format, "policy", cfg.SeedingPolicy, "couples", len(couples))
	return d, nil
}

// Knockout seeds the cross-zone elimination from the final zone standings:
// every zone winner first in zone order, then every runner-up, and so on.
// The returned draw carries the knockout bracket alongside the zones.
func Knockout(d tournament.Draw, cfg tournament.Config, rng *rand.Rand) (tournament.Draw, error) {
	if d.Format != tournament.FormatZones {
		return tournament.Draw{}, fmt.Errorf("%w: knockout needs a zones draw, got %q", tournament.ErrInvalidFormat, d.Format)
	}
	if d.Knockout != nil {
		return tournament.Draw{}, tournament.ErrKnockoutExists
	}
	if !zones.Complete(d.Zones) {
		return tournament.Draw{}, tournament.ErrZonesIncomplete
	}
	cfg = cfg.WithDefaults()

	qualifiers := Qualifiers(d.Zones, cfg.QualifiersPerZone, rng)
	ko, err := bracket.Build(qualifiers, bracket.Options{
		AllowEmpty: true,
		IDPrefix:   KnockoutPrefix,
		Phase:      tournament.PhaseKnockout,
	})
	if err != nil {
		return tournament.Draw{}, err
	}
	separateZones(ko, d.Zones)

	out := d.Clone()
	out.Knockout = ko
	log.Info("Knockout generated", "tournamentID", d.TournamentID, "qualifiers", len(qualifiers), "size", ko.Size)
	return out, nil
}

// Qualifiers returns the couples that go through from the zones, ranked
// place-major: 1A, 1B, ..., 2A, 2B, ...
func Qualifiers(zs []tournament.Zone, perZone int, rng *rand.Rand) []tournament.Couple {
	tables := make([][]tournament.Standing, len(zs))
	for i, z := range zs {
		tables[i] = zones.Standings(z, rng)
	}
	var out []tournament.Couple
	for place := 0; place < perZone; place++ {
		for _, table := range tables {
			if place >= len(table) {
				continue
			}
			rank := len(out) + 1
			out = append(out, tournament.Couple{ID: table[place].CoupleID, Seed: &rank})
		}
	}
	return out
}

// separateZones swaps couples between first-round knockout matches so that
// no match is a rematch of two couples from the same zone. Only matches with
// two couples are touched; byes have already advanced.
func separateZones(b *tournament.Bracket, zs []tournament.Zone) {
	if len(b.Rounds) == 0 {
		return
	}
	zoneOf := make(map[string]string)
	for _, z := range zs {
		for _, id := range z.Members {
			zoneOf[id] = z.ID
		}
	}
	first := b.Rounds[0].Matches
	playable := func(m tournament.Match) bool { return !m.A.Bye && !m.B.Bye }
	clash := func(x, y string) bool { return zoneOf[x] == zoneOf[y] }

	for i := range first {
		if !playable(first[i]) || !clash(first[i].A.CoupleID, first[i].B.CoupleID) {
			continue
		}
		// Farthest match first.
		for j := len(first) - 1; j >= 0; j-- {
			if j == i || !playable(first[j]) {
				continue
			}
			if clash(first[i].A.CoupleID, first[j].B.CoupleID) || clash(first[j].A.CoupleID, first[i].B.CoupleID) {
				continue
			}
			first[i].B.CoupleID, first[j].B.CoupleID = first[j].B.CoupleID, first[i].B.CoupleID
			log.Debug("Knockout couples swapped to avoid a zone rematch", "matchID", first[i].ID, "withMatchID", first[j].ID)
			break
		}
	}
}

// ZoneStandings returns the table of one zone as Qualifiers would rank it
// with a generator in the same state: lots are drawn zone by zone in order.
func ZoneStandings(zs []tournament.Zone, zoneID string, rng *rand.Rand) ([]tournament.Standing, bool) {
	for _, z := range zs {
		table := zones.Standings(z, rng)
		if z.ID == zoneID {
			return table, true
		}
	}
	return nil, false
}

// RecordResult applies the result to whichever phase holds the match.
func RecordResult(d tournament.Draw, matchID string, res tournament.Result) (tournament.Draw, error) {
	out := d.Clone()
	switch {
	case bracket.Contains(d.Bracket, matchID):
		b, err := bracket.RecordResult(d.Bracket, matchID, res)
		if err != nil {
			return tournament.Draw{}, err
		}
		out.Bracket = b
	case bracket.Contains(d.Knockout, matchID):
		b, err := bracket.RecordResult(d.Knockout, matchID, res)
		if err != nil {
			return tournament.Draw{}, err
		}
		out.Knockout = b
	default:
		zs, err := zones.RecordResult(d.Zones, matchID, res)
		if err != nil {
			return tournament.Draw{}, err
		}
		out.Zones = zs
	}
	return out, nil
}

// Start marks the match in progress in whichever phase holds it.
func Start(d tournament.Draw, matchID string) (tournament.Draw, error) {
	out := d.Clone()
	switch {
	case bracket.Contains(d.Bracket, matchID):
		b, err := bracket.Start(d.Bracket, matchID)
		if err != nil {
			return tournament.Draw{}, err
		}
		out.Bracket = b
	case bracket.Contains(d.Knockout, matchID):
		b, err := bracket.Start(d.Knockout, matchID)
		if err != nil {
			return tournament.Draw{}, err
		}
		out.Knockout = b
	default:
		zs, err := zones.Start(d.Zones, matchID)
		if err != nil {
			return tournament.Draw{}, err
		}
		out.Zones = zs
	}
	return out, nil
}

// Find returns the match with the given id from any phase.
func Find(d tournament.Draw, matchID string) (tournament.Match, bool) {
	if m, ok := bracket.Find(d.Bracket, matchID); ok {
		return m, true
	}
	if m, ok := bracket.Find(d.Knockout, matchID); ok {
		return m, true
	}
	return zones.Find(d.Zones, matchID)
}

// Ready lists the matches that can be played now across every phase.
func Ready(d tournament.Draw) []tournament.Match {
	var ready []tournament.Match
	if d.Bracket != nil {
		ready = append(ready, bracket.Ready(d.Bracket)...)
	}
	ready = append(ready, zones.Ready(d.Zones)...)
	if d.Knockout != nil {
		ready = append(ready, bracket.Ready(d.Knockout)...)
	}
	return ready
}

// Champion returns the tournament winner once the deciding bracket is over.
func Champion(d tournament.Draw) (string, bool) {
	b := d.Bracket
	if d.Format == tournament.FormatZones {
		b = d.Knockout
	}
	if b == nil || b.ChampionID == "" {
		return "", false
	}
	return b.ChampionID, true
}
