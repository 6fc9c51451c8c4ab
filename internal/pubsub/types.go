package pubsub

import (
	"cloud.google.com/go/pubsub"
	"github.com/mauv0809/padel-draw/internal/tournament"
)

type client struct {
	client   *pubsub.Client
	teardown func()
	topicIDs map[EventType]string
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventDrawGenerated  EventType = "draw-generated"
	EventMatchCompleted EventType = "match-completed"
)

// DrawGenerated is published once a draw or its knockout phase exists.
type DrawGenerated struct {
	TournamentID string            `msgpack:"tournament_id"`
	Format       tournament.Format `msgpack:"format"`
	Phase        tournament.Phase  `msgpack:"phase"`
	Version      int               `msgpack:"version"`
}

// MatchCompleted is published after a result was recorded.
type MatchCompleted struct {
	TournamentID string                `msgpack:"tournament_id"`
	MatchID      string                `msgpack:"match_id"`
	WinnerID     string                `msgpack:"winner_id"`
	LoserID      string                `msgpack:"loser_id"`
	Sets         []tournament.SetScore `msgpack:"sets"`
	Walkover     bool                  `msgpack:"walkover"`
	ChampionID   string                `msgpack:"champion_id,omitempty"`
	Version      int                   `msgpack:"version"`
}

// PushEnvelope is the body Pub/Sub push subscriptions deliver.
type PushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
