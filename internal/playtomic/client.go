package playtomic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rafa-garcia/go-playtomic-api/client"
	"github.com/rafa-garcia/go-playtomic-api/models"
)

// APIClient is a custom Playtomic API client that implements the PlaytomicClient interface.
type APIClient struct {
	httpClient *http.Client
	apiClient  *client.Client
	BaseURL    string
}

// NewClient creates a new custom Playtomic client.
func NewClient() PlaytomicClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiClient: client.NewClient(
			client.WithTimeout(10*time.Second),
			client.WithRetries(3),
		),
		BaseURL: "https://api.playtomic.io",
	}
}

// Ensure APIClient implements the PlaytomicClient interface.
var _ PlaytomicClient = (*APIClient)(nil)

// GetMatches fetches every page of matches for the search parameters.
func (c *APIClient) GetMatches(ctx context.Context, params *SearchMatchesParams) ([]MatchSummary, error) {
	const pageSize = 300
	var (
		allMatches []MatchSummary
		page       = 0
	)

	for {
		externalParams := &models.SearchMatchesParams{
			SportID:       params.SportID,
			HasPlayers:    params.HasPlayers,
			Sort:          params.Sort,
			TenantIDs:     params.TenantIDs,
			FromStartDate: params.FromStartDate,
			Size:          pageSize,
			Page:          page,
		}

		log.Debug("Fetching matches from Playtomic API", "params", externalParams)
		matches, err := c.apiClient.GetMatches(ctx, externalParams)
		if err != nil {
			return nil, fmt.Errorf("error fetching matches from playtomic api: %w", err)
		}

		for _, m := range matches {
			allMatches = append(allMatches, MatchSummary{
				MatchID: m.MatchID,
				OwnerID: m.OwnerID,
			})
		}
		if len(matches) < pageSize {
			break
		}
		page++
	}
	log.Info("Fetched matches", "count", len(allMatches), "pages", page+1)
	return allMatches, nil
}

// GetSpecificMatch fetches a specific match by its ID.
func (c *APIClient) GetSpecificMatch(ctx context.Context, matchID string) (PadelMatch, error) {
	url := fmt.Sprintf("%s/v1/matches/%s", c.BaseURL, matchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "PlaytomicGoClient/1.0")

	log.Debug("Requesting specific match from Playtomic API", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from Playtomic API", "status", resp.StatusCode, "body", string(body))
		return PadelMatch{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var matchResponse playtomicMatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&matchResponse); err != nil {
		return PadelMatch{}, fmt.Errorf("failed to decode response: %w", err)
	}

	startTime, err := time.Parse("2006-01-02T15:04:05", matchResponse.StartDate)
	if err != nil {
		return PadelMatch{}, fmt.Errorf("failed to parse start time: %w", err)
	}

	teams := make([]Team, 0, len(matchResponse.Teams))
	for _, responseTeam := range matchResponse.Teams {
		t := Team{ID: responseTeam.TeamID}
		for _, p := range responseTeam.Players {
			player := Player{UserID: p.UserID, Name: p.Name}
			if p.LevelValue != nil {
				player.Level = *p.LevelValue
				player.HasLevel = true
			}
			t.Players = append(t.Players, player)
		}
		teams = append(teams, t)
	}

	gameStatus := GameStatus(matchResponse.GameStatus)
	switch gameStatus {
	case GameStatusPending, GameStatusPlayed, GameStatusCanceled, GameStatusWaitingFor, GameStatusExpired:
	default:
		log.Warn("Unknown game status received from Playtomic API", "status", matchResponse.GameStatus, "matchID", matchID)
		gameStatus = GameStatusUnknown
	}

	return PadelMatch{
		MatchID:    matchID,
		Start:      startTime.Unix(),
		GameStatus: gameStatus,
		Teams:      teams,
	}, nil
}
