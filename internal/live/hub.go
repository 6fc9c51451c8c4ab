package live

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// NewHub creates an empty hub. Origins are not checked; the HTTP layer
// authenticates the request before upgrading.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades the request and joins the connection to the tournament's room.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, tournamentID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Warn("Failed to upgrade websocket", "tournamentID", tournamentID, "error", err)
		return
	}
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		room: tournamentID,
	}
	h.register(c)
	go c.writePump()
	go c.readPump()
}

// Broadcast sends msg to every client watching the tournament. Clients whose
// buffer is full miss the message.
func (h *Hub) Broadcast(tournamentID string, msg Message) {
	msg.TournamentID = tournamentID
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("Failed to marshal live message", "tournamentID", tournamentID, "type", msg.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	room := h.rooms[tournamentID]
	log.Debug("Broadcasting live update", "tournamentID", tournamentID, "type", msg.Type, "clients", len(room))
	for c := range room {
		select {
		case c.send <- data:
		default:
			log.Warn("Live client buffer full, dropping message", "tournamentID", tournamentID)
		}
	}
}

// Clients returns how many connections watch the tournament.
func (h *Hub) Clients(tournamentID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[tournamentID])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	rooms := h.rooms
	h.rooms = make(map[string]map[*client]struct{})
	h.mu.Unlock()
	for _, room := range rooms {
		for c := range room {
			c.closeSend()
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.room]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[c.room] = room
	}
	room[c] = struct{}{}
	log.Info("Live client joined", "tournamentID", c.room, "clients", len(room))
}

// unregister removes c before closing its channel so Broadcast never sends
// on a closed channel.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if room, ok := h.rooms[c.room]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, c.room)
		}
	}
	h.mu.Unlock()
	c.closeSend()
	log.Info("Live client left", "tournamentID", c.room)
}

func (c *client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// readPump discards client frames and detects disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("Live client read failed", "tournamentID", c.room, "error", err)
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("Live client write failed", "tournamentID", c.room, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
