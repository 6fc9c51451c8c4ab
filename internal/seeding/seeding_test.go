package seeding

import (
	"testing"
	"time"

	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func seed(n int) *int { return &n }

func couple(id string, rank *int, minute int) tournament.Couple {
	return tournament.Couple{
		ID:           id,
		Player1ID:    id + "-1",
		Player2ID:    id + "-2",
		Seed:         rank,
		RegisteredAt: base.Add(time.Duration(minute) * time.Minute),
	}
}

func ids(couples []tournament.Couple) []string {
	out := make([]string, len(couples))
	for i, c := range couples {
		out[i] = c.ID
	}
	return out
}

func TestSeedRanked(t *testing.T) {
	couples := []tournament.Couple{
		couple("E", nil, 0),
		couple("C", seed(3), 1),
		couple("A", seed(1), 2),
		couple("F", nil, 3),
		couple("D", seed(4), 4),
		couple("B", seed(2), 5),
	}

	got, err := Seed(couples, tournament.SeedRanked, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, ids(got))
	assert.Nil(t, got[4].Seed, "unseeded couples never get a rank implicitly")

	// Input must be left as it was.
	assert.Equal(t, "E", couples[0].ID)
}

func TestSeedRankedTieBreak(t *testing.T) {
	couples := []tournament.Couple{
		couple("late", seed(2), 10),
		couple("early", seed(2), 1),
		couple("top", seed(1), 5),
	}

	got, err := Seed(couples, tournament.SeedRanked, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"top", "early", "late"}, ids(got))
}

func TestSeedRankedAmbiguous(t *testing.T) {
	couples := []tournament.Couple{
		couple("X", seed(1), 0),
		couple("Y", seed(1), 0),
	}

	_, err := Seed(couples, tournament.SeedRanked, Options{})
	assert.ErrorIs(t, err, tournament.ErrAmbiguousSeed)
}

func TestSeedRandomIsReproducible(t *testing.T) {
	var couples []tournament.Couple
	for i := 0; i < 16; i++ {
		couples = append(couples, couple(string(rune('a'+i)), nil, i))
	}

	first, err := Seed(couples, tournament.SeedRandom, Options{Rand: NewRand(42)})
	require.NoError(t, err)
	second, err := Seed(couples, tournament.SeedRandom, Options{Rand: NewRand(42)})
	require.NoError(t, err)

	assert.Equal(t, ids(first), ids(second))
	assert.ElementsMatch(t, ids(couples), ids(first))
	assert.NotEqual(t, ids(couples), ids(first), "16 couples should not come back in registration order")
}

func TestSeedRegistrationOrder(t *testing.T) {
	couples := []tournament.Couple{
		couple("third", seed(1), 30),
		couple("first", nil, 10),
		couple("second", seed(5), 20),
	}

	first, err := Seed(couples, tournament.SeedRegistrationOrder, Options{})
	require.NoError(t, err)
	second, err := Seed(couples, tournament.SeedRegistrationOrder, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, ids(first))
	assert.Equal(t, ids(first), ids(second))
}

func TestSeedErrors(t *testing.T) {
	t.Run("unknown policy", func(t *testing.T) {
		_, err := Seed([]tournament.Couple{couple("a", nil, 0)}, "BEST_AGAINST_WORST", Options{})
		assert.ErrorIs(t, err, tournament.ErrInvalidPolicy)
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := Seed(nil, tournament.SeedRanked, Options{})
		assert.ErrorIs(t, err, tournament.ErrEmptyEntrantList)
	})

	t.Run("empty list allowed", func(t *testing.T) {
		got, err := Seed(nil, tournament.SeedRanked, Options{AllowEmpty: true})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRankByLevel(t *testing.T) {
	couples := []tournament.Couple{
		couple("weak", seed(1), 0),
		couple("strong", nil, 1),
		couple("unknown", seed(2), 2),
		couple("mid", nil, 3),
		couple("alsoMid", nil, 4),
	}
	levels := map[string]float64{
		"weak-1": 1.0, "weak-2": 1.5,
		"strong-1": 4.5, "strong-2": 4.0,
		"mid-1": 3.0, "mid-2": 2.0,
		"alsoMid-1": 5.0,
	}

	got := RankByLevel(couples, levels)
	require.Len(t, got, 5)

	seeds := map[string]*int{}
	for _, c := range got {
		seeds[c.ID] = c.Seed
	}
	require.NotNil(t, seeds["strong"])
	assert.Equal(t, 1, *seeds["strong"])
	assert.Equal(t, 2, *seeds["mid"], "mid registered before alsoMid with the same combined level")
	assert.Equal(t, 3, *seeds["alsoMid"])
	assert.Equal(t, 4, *seeds["weak"])
	assert.Nil(t, seeds["unknown"])
}
