package club_test

import (
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/database"
	"github.com/mauv0809/padel-draw/internal/draw"
	"github.com/mauv0809/padel-draw/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	return club.New(db), db, teardown
}

func newTournament(t *testing.T, store club.ClubStore, id string, cfg tournament.Config) {
	t.Helper()
	require.NoError(t, store.CreateTournament(&club.Tournament{
		ID:       id,
		ClubID:   "club1",
		Name:     "Summer Open",
		Category: "mixed",
		Config:   cfg,
	}))
}

func couple(id, p1, p2 string, minute int) tournament.Couple {
	return tournament.Couple{
		ID:           id,
		Player1ID:    p1,
		Player2ID:    p2,
		RegisteredAt: time.Date(2025, 7, 1, 9, minute, 0, 0, time.UTC),
	}
}

func TestCreateAndGetTournament(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	cfg := tournament.DefaultConfig()
	cfg.Format = tournament.FormatZones
	newTournament(t, store, "t1", cfg)

	got, err := store.GetTournament("t1")
	require.NoError(t, err)
	assert.Equal(t, "club1", got.ClubID)
	assert.Equal(t, club.StatusRegistration, got.Status)
	assert.Equal(t, cfg, got.Config)
	assert.NotZero(t, got.CreatedAt)

	_, err = store.GetTournament("missing")
	assert.ErrorIs(t, err, club.ErrTournamentNotFound)
}

func TestListTournaments(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.CreateTournament(&club.Tournament{ID: "t1", ClubID: "club1", Name: "A", CreatedAt: 100}))
	require.NoError(t, store.CreateTournament(&club.Tournament{ID: "t2", ClubID: "club1", Name: "B", CreatedAt: 200}))
	require.NoError(t, store.CreateTournament(&club.Tournament{ID: "t3", ClubID: "club2", Name: "C", CreatedAt: 300}))
	require.NoError(t, store.UpdateTournamentStatus("t1", club.StatusFinished))

	all, err := store.ListTournaments("", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "t3", all[0].ID)

	mine, err := store.ListTournaments("club1", "")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "t2", mine[0].ID)

	open, err := store.ListTournaments("club1", club.StatusRegistration)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "t2", open[0].ID)

	assert.ErrorIs(t, store.UpdateTournamentStatus("missing", club.StatusFinished), club.ErrTournamentNotFound)
}

func TestRegisterCouple(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	newTournament(t, store, "t1", tournament.DefaultConfig())

	seed := 2
	c1 := couple("c1", "p1", "p2", 0)
	c1.Seed = &seed
	require.NoError(t, store.RegisterCouple("t1", c1))
	require.NoError(t, store.RegisterCouple("t1", couple("c2", "p3", "p4", 1)))

	couples, err := store.GetCouples("t1")
	require.NoError(t, err)
	require.Len(t, couples, 2)
	assert.Equal(t, "c1", couples[0].ID)
	assert.Equal(t, "mixed", couples[0].Category, "category defaults to the tournament's")
	require.NotNil(t, couples[0].Seed)
	assert.Equal(t, 2, *couples[0].Seed)
	assert.Nil(t, couples[1].Seed)
	assert.True(t, c1.RegisteredAt.Equal(couples[0].RegisteredAt))

	regs, err := store.GetRegistrations("p3")
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "t1", regs[0].TournamentID)
	assert.Equal(t, "c2", regs[0].Couple.ID)
}

func TestRegisterCoupleRejections(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	newTournament(t, store, "t1", tournament.DefaultConfig())
	require.NoError(t, store.RegisterCouple("t1", couple("c1", "p1", "p2", 0)))

	tests := []struct {
		name    string
		id      string
		c       tournament.Couple
		wantErr error
	}{
		{"player already in a couple", "t1", couple("c2", "p2", "p3", 1), club.ErrPlayerAlreadyRegistered},
		{"same player twice", "t1", couple("c3", "p5", "p5", 2), club.ErrInvalidCouple},
		{"missing player", "t1", couple("c4", "p6", "", 3), club.ErrInvalidCouple},
		{"unknown tournament", "missing", couple("c5", "p7", "p8", 4), club.ErrTournamentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.RegisterCouple(tt.id, tt.c)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("category other than the tournament's", func(t *testing.T) {
		other := couple("c6", "p1", "p9", 5)
		other.Category = "men"
		assert.ErrorIs(t, store.RegisterCouple("t1", other), club.ErrInvalidCouple)

		couples, err := store.GetCouples("t1")
		require.NoError(t, err)
		require.Len(t, couples, 1, "p1 must not end up in two couples of one draw")
		assert.Equal(t, "c1", couples[0].ID)
	})

	t.Run("same player in another tournament", func(t *testing.T) {
		newTournament(t, store, "t2", tournament.DefaultConfig())
		require.NoError(t, store.RegisterCouple("t2", couple("c7", "p1", "p9", 6)))
	})
}

func TestSetSeeds(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	newTournament(t, store, "t1", tournament.DefaultConfig())

	one := 1
	c1 := couple("c1", "p1", "p2", 0)
	c1.Seed = &one
	require.NoError(t, store.RegisterCouple("t1", c1))
	require.NoError(t, store.RegisterCouple("t1", couple("c2", "p3", "p4", 1)))

	require.NoError(t, store.SetSeeds("t1", map[string]int{"c2": 1}))
	couples, err := store.GetCouples("t1")
	require.NoError(t, err)
	assert.Nil(t, couples[0].Seed)
	require.NotNil(t, couples[1].Seed)
	assert.Equal(t, 1, *couples[1].Seed)
}

func TestSaveDrawClosesRegistration(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	newTournament(t, store, "t1", tournament.DefaultConfig())
	for i, players := range [][2]string{{"p1", "p2"}, {"p3", "p4"}, {"p5", "p6"}} {
		require.NoError(t, store.RegisterCouple("t1", couple(players[0], players[0], players[1], i)))
	}
	couples, err := store.GetCouples("t1")
	require.NoError(t, err)

	d, err := draw.Generate("t1", couples, tournament.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveDraw(d))
	assert.ErrorIs(t, store.SaveDraw(d), club.ErrDrawExists)

	got, err := store.GetTournament("t1")
	require.NoError(t, err)
	assert.Equal(t, club.StatusDrawn, got.Status)

	err = store.RegisterCouple("t1", couple("c9", "p7", "p8", 9))
	assert.ErrorIs(t, err, club.ErrRegistrationClosed)
	assert.ErrorIs(t, store.SetSeeds("t1", nil), club.ErrRegistrationClosed)

	stored, err := store.GetDraw("t1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version)
	assert.Equal(t, tournament.FormatElimination, stored.Draw.Format)
	require.NotNil(t, stored.Draw.Bracket)
	assert.Equal(t, d.Bracket.Size, stored.Draw.Bracket.Size)
	assert.Equal(t, d.Bracket.Matches(), stored.Draw.Bracket.Matches())

	_, err = store.GetDraw("missing")
	assert.ErrorIs(t, err, club.ErrDrawNotFound)
}

func seedDraw(t *testing.T, store club.ClubStore) tournament.Draw {
	t.Helper()
	newTournament(t, store, "t1", tournament.DefaultConfig())
	for i, players := range [][2]string{{"p1", "p2"}, {"p3", "p4"}, {"p5", "p6"}, {"p7", "p8"}} {
		require.NoError(t, store.RegisterCouple("t1", couple(players[0], players[0], players[1], i)))
	}
	couples, err := store.GetCouples("t1")
	require.NoError(t, err)
	d, err := draw.Generate("t1", couples, tournament.DefaultConfig(), nil)
	require.NoError(t, err)
	require.NoError(t, store.SaveDraw(d))
	return d
}

func TestUpdateDraw(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	d := seedDraw(t, store)
	first := d.Bracket.Rounds[0].Matches[0]

	stored, err := store.UpdateDraw("t1", func(cur tournament.Draw) (tournament.Draw, error) {
		return draw.RecordResult(cur, first.ID, tournament.Result{WinnerID: first.A.CoupleID})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Version)

	got, err := store.GetDraw("t1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	m, ok := draw.Find(got.Draw, first.ID)
	require.True(t, ok)
	assert.Equal(t, first.A.CoupleID, m.WinnerID)

	// a failing update leaves the stored draw alone
	_, err = store.UpdateDraw("t1", func(cur tournament.Draw) (tournament.Draw, error) {
		return draw.RecordResult(cur, first.ID, tournament.Result{WinnerID: first.A.CoupleID})
	})
	assert.ErrorIs(t, err, tournament.ErrMatchAlreadyDecided)
	got, err = store.GetDraw("t1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)

	_, err = store.UpdateDraw("missing", func(cur tournament.Draw) (tournament.Draw, error) { return cur, nil })
	assert.ErrorIs(t, err, club.ErrDrawNotFound)
}

func TestUpdateDrawConcurrentResults(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	d := seedDraw(t, store)
	match := d.Bracket.Rounds[0].Matches[0]

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			winner := match.A.CoupleID
			if i%2 == 1 {
				winner = match.B.CoupleID
			}
			_, errs[i] = store.UpdateDraw("t1", func(cur tournament.Draw) (tournament.Draw, error) {
				return draw.RecordResult(cur, match.ID, tournament.Result{WinnerID: winner})
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, errors.Is(err, tournament.ErrMatchAlreadyDecided), "unexpected error %v", err)
	}
	assert.Equal(t, 1, ok, "exactly one result wins")

	got, err := store.GetDraw("t1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
}

func TestPlayerLevels(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertPlayerLevels([]club.PlayerLevel{
		{PlayerID: "p1", Name: "Ana", Level: 3.5},
		{PlayerID: "p2", Name: "Bo", Level: 2.1},
	}))
	require.NoError(t, store.UpsertPlayerLevels([]club.PlayerLevel{{PlayerID: "p1", Level: 3.8}}))

	levels, err := store.GetPlayerLevels([]string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"p1": 3.8, "p2": 2.1}, levels)

	levels, err = store.GetPlayerLevels(nil)
	require.NoError(t, err)
	assert.Empty(t, levels)
}
