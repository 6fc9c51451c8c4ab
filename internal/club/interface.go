package club

import "github.com/mauv0809/padel-draw/internal/tournament"

// ClubStore defines the interface for interacting with a club's tournaments.
type ClubStore interface {
	CreateTournament(t *Tournament) error
	GetTournament(tournamentID string) (*Tournament, error)
	ListTournaments(clubID string, status TournamentStatus) ([]Tournament, error)
	UpdateTournamentStatus(tournamentID string, status TournamentStatus) error

	RegisterCouple(tournamentID string, couple tournament.Couple) error
	GetCouples(tournamentID string) ([]tournament.Couple, error)
	GetRegistrations(playerID string) ([]Registration, error)
	SetSeeds(tournamentID string, seeds map[string]int) error

	SaveDraw(d tournament.Draw) error
	GetDraw(tournamentID string) (*StoredDraw, error)
	UpdateDraw(tournamentID string, fn func(tournament.Draw) (tournament.Draw, error)) (*StoredDraw, error)

	UpsertPlayerLevels(levels []PlayerLevel) error
	GetPlayerLevels(playerIDs []string) (map[string]float64, error)
}
