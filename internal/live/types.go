package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType names the kind of update pushed to watchers.
type MessageType string

const (
	MessageDrawGenerated MessageType = "DRAW_GENERATED"
	MessageKnockoutBuilt MessageType = "KNOCKOUT_BUILT"
	MessageMatchUpdated  MessageType = "MATCH_UPDATED"
	MessageChampion      MessageType = "CHAMPION"
)

// Message is the JSON frame sent to websocket clients.
type Message struct {
	Type         MessageType `json:"type"`
	TournamentID string      `json:"tournament_id"`
	Payload      any         `json:"payload,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Hub keeps one room of websocket clients per tournament.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	room      string
	closeOnce sync.Once
}
