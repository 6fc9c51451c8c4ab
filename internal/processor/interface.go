package processor

import (
	"context"

	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/notifier"
	"github.com/mauv0809/padel-draw/internal/playtomic"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// Store defines the database operations required by the processor.
type Store interface {
	CreateTournament(t *club.Tournament) error
	GetTournament(tournamentID string) (*club.Tournament, error)
	ListTournaments(clubID string, status club.TournamentStatus) ([]club.Tournament, error)
	UpdateTournamentStatus(tournamentID string, status club.TournamentStatus) error
	RegisterCouple(tournamentID string, couple tournament.Couple) error
	GetCouples(tournamentID string) ([]tournament.Couple, error)
	GetRegistrations(playerID string) ([]club.Registration, error)
	SetSeeds(tournamentID string, seeds map[string]int) error
	SaveDraw(d tournament.Draw) error
	GetDraw(tournamentID string) (*club.StoredDraw, error)
	UpdateDraw(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error)) (*club.StoredDraw, error)
	UpsertPlayerLevels(levels []club.PlayerLevel) error
	GetPlayerLevels(playerIDs []string) (map[string]float64, error)
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}

// LevelSource looks up current player levels, usually from Playtomic.
type LevelSource interface {
	Levels(ctx context.Context, playerIDs []string) (map[string]playtomic.Level, error)
}

var (
	_ Store       = (*club.MockStore)(nil)
	_ LevelSource = (*playtomic.LevelLookup)(nil)
)
