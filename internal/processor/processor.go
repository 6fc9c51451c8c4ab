package processor

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-draw/internal/club"
	"github.com/mauv0809/padel-draw/internal/live"
	"github.com/mauv0809/padel-draw/internal/metrics"
	"github.com/mauv0809/padel-draw/internal/pubsub"
	"github.com/mauv0809/padel-draw/internal/seeding"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

// New creates a new Processor. levels may be nil, in which case AutoSeed
// only uses the levels already stored.
func New(store Store, notifier Notifier, metrics metrics.Metrics, totals metrics.MetricsStore, pubsub pubsub.PubSubClient, live live.Broadcaster, levels LevelSource) *Processor {
	return &Processor{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		totals:   totals,
		pubsub:   pubsub,
		live:     live,
		levels:   levels,
		newID:    uuid.NewString,
		newRand: func() *rand.Rand {
			return seeding.NewRand(uint64(time.Now().UnixNano()))
		},
	}
}

// SetMaxEntrants caps the entrants any tournament may accept.
func (p *Processor) SetMaxEntrants(n int) {
	p.maxEntrants = n
}

// CreateTournament opens a tournament for registration.
func (p *Processor) CreateTournament(req CreateTournamentRequest, dryRun bool) (*club.Tournament, error) {
	if strings.TrimSpace(req.Name) == "" || req.ClubID == "" {
		return nil, fmt.Errorf("%w: club and name are required", ErrInvalidRequest)
	}
	cfg := req.Config.WithDefaults()
	if p.maxEntrants > 0 && cfg.MaxEntrants > p.maxEntrants {
		cfg.MaxEntrants = p.maxEntrants
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &club.Tournament{
		ID:           p.newID(),
		ClubID:       req.ClubID,
		Name:         strings.TrimSpace(req.Name),
		Category:     req.Category,
		Status:       club.StatusRegistration,
		Config:       cfg,
		SlackChannel: req.SlackChannel,
		CreatedAt:    time.Now().Unix(),
	}
	if dryRun {
		log.Info("[Dry Run] Would create tournament", "name", t.Name, "clubID", t.ClubID, "format", cfg.Format)
		return t, nil
	}
	if err := p.store.CreateTournament(t); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	p.totals.Increment(metrics.KeyTournamentsCreated)
	log.Info("Tournament created", "tournamentID", t.ID, "clubID", t.ClubID, "format", cfg.Format)
	return t, nil
}

// GetTournament returns a tournament with its configuration.
func (p *Processor) GetTournament(tournamentID string) (*club.Tournament, error) {
	return p.store.GetTournament(tournamentID)
}

// ListTournaments lists tournaments by club and status; empty filters match all.
func (p *Processor) ListTournaments(clubID string, status club.TournamentStatus) ([]club.Tournament, error) {
	return p.store.ListTournaments(clubID, status)
}

// RegisterCouple enters a couple while registration is open.
func (p *Processor) RegisterCouple(tournamentID string, req RegisterCoupleRequest, dryRun bool) (tournament.Couple, error) {
	if req.Player1ID == "" || req.Player2ID == "" {
		return tournament.Couple{}, fmt.Errorf("%w: both players are required", ErrInvalidRequest)
	}
	c := tournament.Couple{
		ID:           p.newID(),
		Player1ID:    req.Player1ID,
		Player2ID:    req.Player2ID,
		Name:         req.Name,
		Seed:         req.Seed,
		Category:     req.Category,
		RegisteredAt: time.Now().UTC(),
	}
	if dryRun {
		log.Info("[Dry Run] Would register couple", "tournamentID", tournamentID, "players", []string{c.Player1ID, c.Player2ID})
		return c, nil
	}
	if err := p.store.RegisterCouple(tournamentID, c); err != nil {
		return tournament.Couple{}, err
	}
	p.totals.Increment(metrics.KeyCouplesRegistered)
	log.Info("Couple registered", "tournamentID", tournamentID, "coupleID", c.ID)
	return c, nil
}

// Couples lists the couples of a tournament in registration order.
func (p *Processor) Couples(tournamentID string) ([]tournament.Couple, error) {
	if _, err := p.store.GetTournament(tournamentID); err != nil {
		return nil, err
	}
	return p.store.GetCouples(tournamentID)
}

// Registrations lists the tournaments a player entered.
func (p *Processor) Registrations(playerID string) ([]club.Registration, error) {
	return p.store.GetRegistrations(playerID)
}

// Totals returns the persisted activity counters.
func (p *Processor) Totals() (map[string]int, error) {
	return p.totals.GetAll()
}

// lotRand returns the generator used to break zone ties by lot. It is seeded
// from the tournament so every reader sees the same lots.
func lotRand(tournamentID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(tournamentID))
	return seeding.NewRand(h.Sum64())
}

func (p *Processor) publish(topic pubsub.EventType, data any, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would publish event", "topic", topic)
		return
	}
	if err := p.pubsub.SendMessage(topic, data); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}

func (p *Processor) broadcast(tournamentID string, kind live.MessageType, payload any, dryRun bool) {
	if dryRun {
		return
	}
	p.live.Broadcast(tournamentID, live.Message{Type: kind, Payload: payload})
}
