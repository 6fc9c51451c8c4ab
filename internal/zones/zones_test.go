package zones

import (
	"fmt"
	"testing"

	"github.com/mauv0809/padel-draw/internal/seeding"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCouples(n int) []tournament.Couple {
	couples := make([]tournament.Couple, n)
	for i := range couples {
		couples[i] = tournament.Couple{ID: fmt.Sprintf("s%d", i+1)}
	}
	return couples
}

func members(zs []tournament.Zone) [][]string {
	out := make([][]string, len(zs))
	for i, z := range zs {
		out[i] = z.Members
	}
	return out
}

func TestBuildDistribution(t *testing.T) {
	tests := []struct {
		name     string
		n, size  int
		policy   tournament.PartialZonePolicy
		expected [][]string
	}{
		{
			name: "ten couples in fours", n: 10, size: 4, policy: tournament.ZonesFill,
			expected: [][]string{{"s1", "s6", "s7", "s10"}, {"s2", "s5", "s8", "s9"}, {"s3", "s4"}},
		},
		{
			name: "seven couples in threes filled", n: 7, size: 3, policy: tournament.ZonesFill,
			expected: [][]string{{"s1", "s5", "s6"}, {"s2", "s4", "s7"}, {"s3"}},
		},
		{
			name: "seven couples in threes balanced", n: 7, size: 3, policy: tournament.ZonesBalanced,
			expected: [][]string{{"s1", "s6", "s7"}, {"s2", "s5"}, {"s3", "s4"}},
		},
		{
			name: "even split", n: 8, size: 4, policy: tournament.ZonesFill,
			expected: [][]string{{"s1", "s4", "s5", "s8"}, {"s2", "s3", "s6", "s7"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			zs, err := Build(seededCouples(tt.n), tt.size, Options{Policy: tt.policy})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, members(zs))
			for i, z := range zs {
				assert.Equal(t, Name(i), z.ID)
				assert.LessOrEqual(t, len(z.Members), tt.size)
			}
		})
	}
}

func TestBuildTopSeedsInDifferentZones(t *testing.T) {
	zs, err := Build(seededCouples(16), 4, Options{})
	require.NoError(t, err)
	require.Len(t, zs, 4)
	for i, z := range zs {
		assert.Equal(t, fmt.Sprintf("s%d", i+1), z.Members[0])
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(seededCouples(4), 1, Options{})
	assert.ErrorIs(t, err, tournament.ErrInvalidZoneSize)

	_, err = Build(nil, 4, Options{})
	assert.ErrorIs(t, err, tournament.ErrEmptyEntrantList)

	zs, err := Build(nil, 4, Options{AllowEmpty: true})
	require.NoError(t, err)
	assert.Empty(t, zs)

	_, err = Build(seededCouples(3), 4, Options{})
	assert.ErrorIs(t, err, tournament.ErrInsufficientEntrants)

	zs, err = Build(seededCouples(3), 4, Options{AllowPartialZone: true})
	require.NoError(t, err)
	require.Len(t, zs, 1)
	assert.Len(t, zs[0].Matches, 3)

	_, err = Build(seededCouples(5), 4, Options{Policy: "ROUND"})
	assert.ErrorIs(t, err, tournament.ErrInvalidZoneSize)
}

func TestRoundRobinSchedule(t *testing.T) {
	for n := 2; n <= 9; n++ {
		t.Run(fmt.Sprintf("%d couples", n), func(t *testing.T) {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = fmt.Sprintf("c%d", i)
			}
			matches := RoundRobin("A", ids)
			require.Len(t, matches, n*(n-1)/2)

			pairs := map[[2]string]bool{}
			perSlot := map[int]map[string]bool{}
			for _, m := range matches {
				assert.Equal(t, tournament.PhaseZone, m.Phase)
				assert.Equal(t, "A", m.ZoneID)
				assert.Equal(t, fmt.Sprintf("A-R%dM%d", m.Round+1, m.Position+1), m.ID)

				key := [2]string{m.A.CoupleID, m.B.CoupleID}
				if key[0] > key[1] {
					key[0], key[1] = key[1], key[0]
				}
				assert.False(t, pairs[key], "pair %v scheduled twice", key)
				pairs[key] = true

				if perSlot[m.Round] == nil {
					perSlot[m.Round] = map[string]bool{}
				}
				for _, c := range []string{m.A.CoupleID, m.B.CoupleID} {
					assert.False(t, perSlot[m.Round][c], "%s plays twice in slot %d", c, m.Round)
					perSlot[m.Round][c] = true
				}
			}
		})
	}

	assert.Empty(t, RoundRobin("A", []string{"c0"}))
}

func TestZoneNames(t *testing.T) {
	for i, want := range map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"} {
		assert.Equal(t, want, Name(i))
	}
}

func zoneOf(ids ...string) tournament.Zone {
	return tournament.Zone{ID: "A", Members: ids, Matches: RoundRobin("A", ids)}
}

// play records winner over loser with the given games per set, from the winner's side.
func play(t *testing.T, z tournament.Zone, winner, loser string, games ...[2]int) tournament.Zone {
	t.Helper()
	for _, m := range z.Matches {
		if !m.Involves(winner) || !m.Involves(loser) {
			continue
		}
		sets := make([]tournament.SetScore, len(games))
		for i, g := range games {
			if m.A.CoupleID == winner {
				sets[i] = tournament.SetScore{A: g[0], B: g[1]}
			} else {
				sets[i] = tournament.SetScore{A: g[1], B: g[0]}
			}
		}
		zs, err := RecordResult([]tournament.Zone{z}, m.ID, tournament.Result{WinnerID: winner, Sets: sets})
		require.NoError(t, err)
		return zs[0]
	}
	t.Fatalf("no match between %s and %s", winner, loser)
	return z
}

func order(table []tournament.Standing) []string {
	out := make([]string, len(table))
	for i, s := range table {
		out[i] = s.CoupleID
	}
	return out
}

func TestStandingsByWins(t *testing.T) {
	z := zoneOf("c", "b", "a")
	z = play(t, z, "a", "b", [2]int{6, 3}, [2]int{6, 3})
	z = play(t, z, "a", "c", [2]int{6, 3}, [2]int{6, 3})
	z = play(t, z, "b", "c", [2]int{6, 3}, [2]int{6, 3})

	table := Standings(z, nil)
	assert.Equal(t, []string{"a", "b", "c"}, order(table))
	assert.Equal(t, 1, table[0].Position)
	assert.Equal(t, 2, table[0].Wins)
	assert.Equal(t, 2, table[0].Played)
	assert.Equal(t, 4, table[0].SetsWon)
	assert.Equal(t, 24, table[0].GamesWon)
	assert.Equal(t, 12, table[0].GamesLost)
	assert.Equal(t, 2, table[2].Losses)
}

func TestStandingsBySetDifference(t *testing.T) {
	z := zoneOf("c", "b", "a")
	z = play(t, z, "a", "b", [2]int{6, 0}, [2]int{6, 0})
	z = play(t, z, "b", "c", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "c", "a", [2]int{6, 4}, [2]int{4, 6}, [2]int{6, 4})

	table := Standings(z, nil)
	assert.Equal(t, []string{"a", "b", "c"}, order(table))
	assert.Equal(t, 1, table[0].SetDiff())
	assert.False(t, table[0].DrawnByLot)
}

func TestStandingsByGameDifference(t *testing.T) {
	z := zoneOf("b", "c", "a")
	z = play(t, z, "a", "b", [2]int{6, 0}, [2]int{6, 0})
	z = play(t, z, "b", "c", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "c", "a", [2]int{6, 4}, [2]int{6, 4})

	table := Standings(z, nil)
	assert.Equal(t, []string{"a", "c", "b"}, order(table))
	assert.Equal(t, 8, table[0].GameDiff())
}

func TestStandingsHeadToHead(t *testing.T) {
	z := zoneOf("b", "a", "c", "d")
	z = play(t, z, "a", "b", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "b", "c", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "c", "a", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "d", "c", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "a", "d", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "b", "d", [2]int{6, 4}, [2]int{6, 4})
	require.True(t, z.Complete())

	table := Standings(z, nil)
	assert.Equal(t, []string{"a", "b", "d", "c"}, order(table))
	for _, s := range table {
		assert.False(t, s.DrawnByLot)
	}
}

func TestStandingsDrawnByLot(t *testing.T) {
	z := zoneOf("a", "b", "c")
	z = play(t, z, "a", "b", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "b", "c", [2]int{6, 4}, [2]int{6, 4})
	z = play(t, z, "c", "a", [2]int{6, 4}, [2]int{6, 4})

	first := Standings(z, seeding.NewRand(7))
	second := Standings(z, seeding.NewRand(7))
	assert.Equal(t, order(first), order(second))
	assert.ElementsMatch(t, []string{"a", "b", "c"}, order(first))
	for i, s := range first {
		assert.True(t, s.DrawnByLot)
		assert.Equal(t, i+1, s.Position)
	}
}

func TestStandingsBeforeAnyMatch(t *testing.T) {
	table := Standings(zoneOf("a", "b", "c", "d"), nil)
	assert.Equal(t, []string{"a", "b", "c", "d"}, order(table))
	for _, s := range table {
		assert.False(t, s.DrawnByLot)
		assert.Zero(t, s.Played)
	}
}

func TestRecordResult(t *testing.T) {
	zs, err := Build(seededCouples(8), 4, Options{})
	require.NoError(t, err)

	ready := Ready(zs)
	require.Len(t, ready, 12)
	m := ready[0]

	updated, err := RecordResult(zs, m.ID, tournament.Result{WinnerID: m.A.CoupleID, Sets: []tournament.SetScore{{A: 6, B: 1}, {A: 6, B: 2}}})
	require.NoError(t, err)

	got, ok := Find(updated, m.ID)
	require.True(t, ok)
	assert.Equal(t, tournament.MatchCompleted, got.Status)
	assert.Equal(t, m.A.CoupleID, got.WinnerID)

	original, _ := Find(zs, m.ID)
	assert.Equal(t, tournament.MatchPending, original.Status, "input zones must not change")
	assert.Len(t, Ready(updated), 11)

	_, err = RecordResult(updated, m.ID, tournament.Result{WinnerID: m.A.CoupleID})
	assert.ErrorIs(t, err, tournament.ErrMatchAlreadyDecided)

	_, err = RecordResult(updated, "Z-R1M1", tournament.Result{WinnerID: m.A.CoupleID})
	assert.ErrorIs(t, err, tournament.ErrMatchNotFound)

	_, err = RecordResult(updated, ready[1].ID, tournament.Result{WinnerID: "nobody"})
	assert.ErrorIs(t, err, tournament.ErrInvalidWinner)
}

func TestStartAndComplete(t *testing.T) {
	zs, err := Build(seededCouples(4), 4, Options{})
	require.NoError(t, err)
	assert.False(t, Complete(zs))

	first := zs[0].Matches[0]
	started, err := Start(zs, first.ID)
	require.NoError(t, err)
	got, _ := Find(started, first.ID)
	assert.Equal(t, tournament.MatchInProgress, got.Status)
	assert.Len(t, Ready(started), 5)

	for _, m := range started[0].Matches {
		started, err = RecordResult(started, m.ID, tournament.Result{WinnerID: m.B.CoupleID, Walkover: true})
		require.NoError(t, err)
	}
	assert.True(t, Complete(started))
	z, ok := Get(started, "A")
	require.True(t, ok)
	assert.Len(t, Standings(z, nil), 4)
}
