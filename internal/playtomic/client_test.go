package playtomic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSpecificMatch(t *testing.T) {
	mockJSONResponse := `{
		"start_date": "2025-07-09T18:00:00",
		"game_status": "PLAYED",
		"teams": [{
			"team_id": "1",
			"players": [
				{ "user_id": "user-123", "name": "Player A", "level_value": 3.25 },
				{ "user_id": "user-456", "name": "Player B" }
			]
		}]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/matches/match-abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	c := APIClient{
		httpClient: server.Client(),
		apiClient:  client.NewClient(), // not used by GetSpecificMatch
		BaseURL:    server.URL,
	}

	match, err := c.GetSpecificMatch(context.Background(), "match-abc")
	require.NoError(t, err)
	assert.Equal(t, "match-abc", match.MatchID)
	assert.Equal(t, GameStatusPlayed, match.GameStatus)
	assert.Equal(t, time.Date(2025, 7, 9, 18, 0, 0, 0, time.UTC).Unix(), match.Start)
	require.Len(t, match.Teams, 1)
	require.Len(t, match.Teams[0].Players, 2)
	assert.Equal(t, Player{UserID: "user-123", Name: "Player A", Level: 3.25, HasLevel: true}, match.Teams[0].Players[0])
	assert.False(t, match.Teams[0].Players[1].HasLevel)
}

func TestGetSpecificMatch_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	c := APIClient{httpClient: server.Client(), apiClient: client.NewClient(), BaseURL: server.URL}
	_, err := c.GetSpecificMatch(context.Background(), "missing")
	assert.ErrorContains(t, err, "404")
}

func level(v float64) Player {
	return Player{Level: v, HasLevel: true}
}

func TestLevelLookup(t *testing.T) {
	mock := NewMockClient()
	mock.GetMatchesFunc = func(params *SearchMatchesParams) ([]MatchSummary, error) {
		assert.Equal(t, []string{"tenant-1"}, params.TenantIDs)
		assert.Equal(t, "2025-04-11T12:00:00", params.FromStartDate)
		return []MatchSummary{{MatchID: "old"}, {MatchID: "new"}, {MatchID: "broken"}}, nil
	}
	mock.GetSpecificMatchFunc = func(matchID string) (PadelMatch, error) {
		p := func(id, name string, v float64) Player {
			pl := level(v)
			pl.UserID, pl.Name = id, name
			return pl
		}
		switch matchID {
		case "old":
			return PadelMatch{MatchID: "old", Start: 100, Teams: []Team{
				{Players: []Player{p("p1", "Ana", 2.0), p("p2", "Bea", 3.0)}},
				{Players: []Player{p("p9", "Zoe", 5.0)}},
			}}, nil
		case "new":
			return PadelMatch{MatchID: "new", Start: 200, Teams: []Team{
				{Players: []Player{p("p1", "Ana", 2.5), {UserID: "p3", Name: "Cris"}}},
			}}, nil
		}
		return PadelMatch{}, errors.New("boom")
	}

	lookup := NewLevelLookup(mock, "tenant-1")
	lookup.now = func() time.Time { return time.Date(2025, 7, 10, 12, 0, 0, 0, time.UTC) }

	levels, err := lookup.Levels(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]Level{
		"p1": {PlayerID: "p1", Name: "Ana", Level: 2.5, MatchStart: 200},
		"p2": {PlayerID: "p2", Name: "Bea", Level: 3.0, MatchStart: 100},
	}, levels)
	assert.ElementsMatch(t, []string{"old", "new", "broken"}, mock.GetSpecificMatchCalls)
}

func TestLevelLookup_NoPlayers(t *testing.T) {
	mock := NewMockClient()
	levels, err := NewLevelLookup(mock, "tenant-1").Levels(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, levels)
	assert.Empty(t, mock.GetMatchesCalls)
}

func TestLevelLookup_SearchFails(t *testing.T) {
	mock := NewMockClient()
	mock.GetMatchesFunc = func(*SearchMatchesParams) ([]MatchSummary, error) {
		return nil, errors.New("down")
	}
	_, err := NewLevelLookup(mock, "tenant-1").Levels(context.Background(), []string{"p1"})
	assert.ErrorContains(t, err, "down")
}
