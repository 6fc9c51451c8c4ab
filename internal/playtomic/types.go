package playtomic

// SearchMatchesParams defines the parameters for searching for matches.
type SearchMatchesParams struct {
	SportID       string
	HasPlayers    bool
	Sort          string
	TenantIDs     []string
	FromStartDate string
}

// MatchSummary contains the essential details of a match from a search result.
type MatchSummary struct {
	MatchID string
	OwnerID *string
}

// PadelMatch is a played or booked Playtomic match, reduced to what the
// level lookup needs.
type PadelMatch struct {
	MatchID    string
	Start      int64
	GameStatus GameStatus
	Teams      []Team
}

// GameStatus is Playtomic's state of a match.
type GameStatus string

const (
	GameStatusPending    GameStatus = "PENDING"
	GameStatusPlayed     GameStatus = "PLAYED"
	GameStatusCanceled   GameStatus = "CANCELED"
	GameStatusWaitingFor GameStatus = "WAITING_FOR"
	GameStatusExpired    GameStatus = "EXPIRED"
	GameStatusUnknown    GameStatus = "UNKNOWN"
)

// Team represents a team in a match.
type Team struct {
	ID      string
	Players []Player
}

// Player represents a player in a match. HasLevel is false when Playtomic
// did not report a level for the player.
type Player struct {
	UserID   string
	Name     string
	Level    float64
	HasLevel bool
}

// playtomicMatchResponse defines the structure for the JSON response from the Playtomic API for a single match.
type playtomicMatchResponse struct {
	StartDate  string                  `json:"start_date"`
	GameStatus string                  `json:"game_status"`
	Teams      []playtomicTeamResponse `json:"teams"`
}

// playtomicTeamResponse defines the structure for a team within the match response.
type playtomicTeamResponse struct {
	TeamID  string                    `json:"team_id"`
	Players []playtomicPlayerResponse `json:"players"`
}

// playtomicPlayerResponse defines the structure for a player within a team.
type playtomicPlayerResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	LevelValue *float64 `json:"level_value"`
}
