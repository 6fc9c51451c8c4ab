package processor

import (
	"errors"
	"math/rand/v2"

	"github.com/mauv0809/padel-draw/internal/live"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/pubsub"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrZoneNotFound   = errors.New("zone not found")
)

// Processor runs the tournament use cases on top of the store and pushes the
// outcome to Pub/Sub, live watchers and metrics.
type Processor struct {
	store    Store
	notifier Notifier
	metrics  metrics.Metrics
	totals   metrics.MetricsStore
	pubsub   pubsub.PubSubClient
	live     live.Broadcaster
	levels   LevelSource

	maxEntrants int
	newID       func() string
	newRand     func() *rand.Rand
}

// CreateTournamentRequest is what a club sends to open a tournament.
type CreateTournamentRequest struct {
	ClubID       string            `json:"club_id"`
	Name         string            `json:"name"`
	Category     string            `json:"category,omitempty"`
	SlackChannel string            `json:"slack_channel,omitempty"`
	Config       tournament.Config `json:"config"`
}

// RegisterCoupleRequest enters two players into a tournament.
type RegisterCoupleRequest struct {
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
	Name      string `json:"name,omitempty"`
	Seed      *int   `json:"seed,omitempty"`
	Category  string `json:"category,omitempty"`
}
