package club

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/padel-draw/internal/tournament"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	ErrTournamentNotFound      = errors.New("tournament not found")
	ErrDrawNotFound            = errors.New("draw not found")
	ErrDrawExists              = errors.New("draw already generated")
	ErrConcurrentUpdate        = errors.New("draw was changed by another update")
	ErrPlayerAlreadyRegistered = errors.New("player already registered in this category")
	ErrRegistrationClosed      = errors.New("registration is closed")
	ErrInvalidCouple           = errors.New("a couple needs two different players")
)

// TournamentStatus is the lifecycle of a tournament.
type TournamentStatus string

const (
	StatusRegistration TournamentStatus = "REGISTRATION"
	StatusDrawn        TournamentStatus = "DRAWN"
	StatusKnockout     TournamentStatus = "KNOCKOUT"
	StatusFinished     TournamentStatus = "FINISHED"
)

// Tournament is a competition run by a club.
type Tournament struct {
	ID           string            `json:"id"`
	ClubID       string            `json:"club_id"`
	Name         string            `json:"name"`
	Category     string            `json:"category,omitempty"`
	Status       TournamentStatus  `json:"status"`
	Config       tournament.Config `json:"config"`
	SlackChannel string            `json:"slack_channel,omitempty"`
	CreatedAt    int64             `json:"created_at"`
}

// StoredDraw is a persisted draw together with its optimistic lock version.
type StoredDraw struct {
	Draw      tournament.Draw `json:"draw"`
	Version   int             `json:"version"`
	UpdatedAt int64           `json:"updated_at"`
}

// Registration links a couple to the tournament it entered.
type Registration struct {
	TournamentID string            `json:"tournament_id"`
	Couple       tournament.Couple `json:"couple"`
}

// PlayerLevel is the last known playing level of a player.
type PlayerLevel struct {
	PlayerID  string  `json:"player_id"`
	Name      string  `json:"name"`
	Level     float64 `json:"level"`
	UpdatedAt int64   `json:"updated_at"`
}
