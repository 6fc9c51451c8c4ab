package draw

import (
	"fmt"
	"testing"
	"time"

	"github.com/mauv0809/padel-draw/internal/seeding"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func couples(n int) []tournament.Couple {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	out := make([]tournament.Couple, n)
	for i := range out {
		rank := i + 1
		out[i] = tournament.Couple{
			ID:           fmt.Sprintf("s%d", rank),
			Seed:         &rank,
			RegisteredAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return out
}

// winAll reports every ready match as won by side A until nothing is left.
func winAll(t *testing.T, d tournament.Draw, phase tournament.Phase) tournament.Draw {
	t.Helper()
	for {
		var next *tournament.Match
		for _, m := range Ready(d) {
			if m.Phase == phase {
				next = &m
				break
			}
		}
		if next == nil {
			return d
		}
		var err error
		d, err = RecordResult(d, next.ID, tournament.Result{
			WinnerID: next.A.CoupleID,
			Sets:     []tournament.SetScore{{A: 6, B: 3}, {A: 6, B: 4}},
		})
		require.NoError(t, err)
	}
}

func TestGenerateElimination(t *testing.T) {
	d, err := Generate("t1", couples(6), tournament.DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, "t1", d.TournamentID)
	assert.Equal(t, tournament.FormatElimination, d.Format)
	require.NotNil(t, d.Bracket)
	assert.Nil(t, d.Zones)
	assert.Equal(t, 8, d.Bracket.Size)
	assert.Equal(t, 2, d.Bracket.Byes)

	d = winAll(t, d, tournament.PhaseElimination)
	champion, ok := Champion(d)
	require.True(t, ok)
	assert.Equal(t, "s1", champion)
}

func TestGenerateZones(t *testing.T) {
	cfg := tournament.DefaultConfig()
	cfg.Format = tournament.FormatZones
	d, err := Generate("t1", couples(8), cfg, nil)
	require.NoError(t, err)

	assert.Nil(t, d.Bracket)
	require.Len(t, d.Zones, 2)
	assert.Len(t, Ready(d), 12)
	_, ok := Champion(d)
	assert.False(t, ok)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		mutate  func(c *tournament.Config)
		wantErr error
	}{
		{name: "bad policy", n: 4, mutate: func(c *tournament.Config) { c.SeedingPolicy = "ELO" }, wantErr: tournament.ErrInvalidPolicy},
		{name: "no couples", n: 0, mutate: func(c *tournament.Config) {}, wantErr: tournament.ErrEmptyEntrantList},
		{name: "too many couples", n: 9, mutate: func(c *tournament.Config) { c.MaxEntrants = 8 }, wantErr: tournament.ErrBracketSizeOverflow},
		{name: "zone too small", n: 4, mutate: func(c *tournament.Config) { c.Format = tournament.FormatZones; c.ZoneSize = 1 }, wantErr: tournament.ErrInvalidZoneSize},
		{name: "not enough for a zone", n: 3, mutate: func(c *tournament.Config) { c.Format = tournament.FormatZones }, wantErr: tournament.ErrInsufficientEntrants},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tournament.DefaultConfig()
			tt.mutate(&cfg)
			_, err := Generate("t1", couples(tt.n), cfg, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, tournament.IsValidation(err))
		})
	}
}

func TestGenerateRandomIsReproducible(t *testing.T) {
	cfg := tournament.DefaultConfig()
	cfg.SeedingPolicy = tournament.SeedRandom

	a, err := Generate("t1", couples(12), cfg, seeding.NewRand(42))
	require.NoError(t, err)
	b, err := Generate("t1", couples(12), cfg, seeding.NewRand(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKnockout(t *testing.T) {
	cfg := tournament.DefaultConfig()
	cfg.Format = tournament.FormatZones
	d, err := Generate("t1", couples(8), cfg, nil)
	require.NoError(t, err)

	_, err = Knockout(d, cfg, nil)
	assert.ErrorIs(t, err, tournament.ErrZonesIncomplete)

	// Side A wins every zone match, which leaves three-way ties behind each
	// zone winner, so the lots need a fixed source.
	d = winAll(t, d, tournament.PhaseZone)
	ko, err := Knockout(d, cfg, seeding.NewRand(1))
	require.NoError(t, err)
	require.NotNil(t, ko.Knockout)
	assert.Nil(t, d.Knockout, "input draw must not change")

	qualifiers := Qualifiers(d.Zones, 2, seeding.NewRand(1))
	ids := make([]string, len(qualifiers))
	for i, q := range qualifiers {
		ids[i] = q.ID
	}
	require.Len(t, ids, 4)
	assert.Equal(t, "s1", ids[0])
	assert.Equal(t, "s2", ids[1])

	// Zone winners meet the other zone's runner-up in the first round.
	semis := ko.Knockout.Rounds[0].Matches
	require.Len(t, semis, 2)
	assert.Equal(t, "KO-R1M1", semis[0].ID)
	assert.Equal(t, tournament.PhaseKnockout, semis[0].Phase)
	assert.Equal(t, []string{ids[0], ids[3]}, []string{semis[0].A.CoupleID, semis[0].B.CoupleID})
	assert.Equal(t, []string{ids[1], ids[2]}, []string{semis[1].A.CoupleID, semis[1].B.CoupleID})

	_, err = Knockout(ko, cfg, nil)
	assert.ErrorIs(t, err, tournament.ErrKnockoutExists)

	ko = winAll(t, ko, tournament.PhaseKnockout)
	champion, ok := Champion(ko)
	require.True(t, ok)
	assert.Equal(t, ids[0], champion)
}

func TestKnockoutAvoidsZoneRematches(t *testing.T) {
	cfg := tournament.DefaultConfig()
	cfg.Format = tournament.FormatZones
	d, err := Generate("t1", couples(12), cfg, nil)
	require.NoError(t, err)
	require.Len(t, d.Zones, 3)

	d = winAll(t, d, tournament.PhaseZone)
	ko, err := Knockout(d, cfg, seeding.NewRand(1))
	require.NoError(t, err)

	zoneOf := map[string]string{}
	for _, z := range d.Zones {
		for _, id := range z.Members {
			zoneOf[id] = z.ID
		}
	}

	// Six qualifiers in a bracket of eight: seeds 1 and 2 get byes, and the
	// layout alone would pair the third zone's winner with its runner-up.
	first := ko.Knockout.Rounds[0].Matches
	require.Len(t, first, 4)
	seen := map[string]bool{}
	played := 0
	for _, m := range first {
		for _, s := range []tournament.Slot{m.A, m.B} {
			if !s.Bye {
				assert.False(t, seen[s.CoupleID], "%s placed twice", s.CoupleID)
				seen[s.CoupleID] = true
			}
		}
		if m.A.Bye || m.B.Bye {
			continue
		}
		played++
		assert.NotEqual(t, zoneOf[m.A.CoupleID], zoneOf[m.B.CoupleID], "%s pairs %s and %s", m.ID, m.A.CoupleID, m.B.CoupleID)
	}
	assert.Equal(t, 2, played)
	assert.Len(t, seen, 6)

	ko = winAll(t, ko, tournament.PhaseKnockout)
	_, ok := Champion(ko)
	assert.True(t, ok)
}

func TestKnockoutNeedsZones(t *testing.T) {
	d, err := Generate("t1", couples(4), tournament.DefaultConfig(), nil)
	require.NoError(t, err)
	_, err = Knockout(d, tournament.DefaultConfig(), nil)
	assert.ErrorIs(t, err, tournament.ErrInvalidFormat)
}

func TestQualifiersPlaceMajor(t *testing.T) {
	zs := []tournament.Zone{
		{ID: "A", Members: []string{"a1", "a2", "a3"}},
		{ID: "B", Members: []string{"b1", "b2"}},
		{ID: "C", Members: []string{"c1"}},
	}
	got := Qualifiers(zs, 2, nil)
	ids := make([]string, len(got))
	for i, q := range got {
		ids[i] = q.ID
		require.NotNil(t, q.Seed)
		assert.Equal(t, i+1, *q.Seed)
	}
	assert.Equal(t, []string{"a1", "b1", "c1", "a2", "b2"}, ids)
}

func TestStartAndFind(t *testing.T) {
	d, err := Generate("t1", couples(4), tournament.DefaultConfig(), nil)
	require.NoError(t, err)

	d, err = Start(d, "R1M1")
	require.NoError(t, err)
	m, ok := Find(d, "R1M1")
	require.True(t, ok)
	assert.Equal(t, tournament.MatchInProgress, m.Status)

	_, err = Start(d, "R2M1")
	assert.ErrorIs(t, err, tournament.ErrMatchNotReady)

	_, err = RecordResult(d, "A-R1M1", tournament.Result{WinnerID: "s1"})
	assert.ErrorIs(t, err, tournament.ErrMatchNotFound)
}

func TestZoneStandingsMatchQualifiers(t *testing.T) {
	cfg := tournament.Config{Format: tournament.FormatZones, ZoneSize: 4}
	d, err := Generate("t1", couples(12), cfg, nil)
	require.NoError(t, err)
	d = winAll(t, d, tournament.PhaseZone)

	winners := Qualifiers(d.Zones, 1, seeding.NewRand(7))
	require.Len(t, winners, 3)
	for i, z := range d.Zones {
		table, ok := ZoneStandings(d.Zones, z.ID, seeding.NewRand(7))
		require.True(t, ok)
		assert.Equal(t, winners[i].ID, table[0].CoupleID, "zone %s", z.ID)
	}

	_, ok := ZoneStandings(d.Zones, "Z", seeding.NewRand(7))
	assert.False(t, ok)
}
