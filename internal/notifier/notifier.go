package notifier

import (
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// Names maps couple ids to display names.
type Names map[string]string

// Label returns the display name of a couple, falling back to its id.
func (n Names) Label(coupleID string) string {
	if name, ok := n[coupleID]; ok && name != "" {
		return name
	}
	return coupleID
}

// NamesFor builds the display names of the given couples.
func NamesFor(couples []tournament.Couple) Names {
	names := make(Names, len(couples))
	for _, c := range couples {
		names[c.ID] = c.Label()
	}
	return names
}

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// When a draw or its knockout phase is published
	SendDrawPublished(t *club.Tournament, d tournament.Draw, names Names, dryRun bool) error
	// For completed matches
	SendMatchResult(t *club.Tournament, m tournament.Match, names Names, dryRun bool) error
	// Once the tournament is decided
	SendChampion(t *club.Tournament, championID string, names Names, dryRun bool) error

	// For formatting responses for slash commands
	FormatStandingsResponse(t *club.Tournament, zoneID string, table []tournament.Standing, names Names) (any, error)
	FormatReadyMatchesResponse(t *club.Tournament, matches []tournament.Match, names Names) (any, error)
}
