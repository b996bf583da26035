// Package live pushes ranking-change notifications to subscribed websocket
// clients. Each event has its own room; a client subscribes to one event and
// receives a message whenever a match mutation changed that event's
// standings. Clients re-fetch the ranking endpoint on notification, so
// messages carry no leaderboard payload.
package live

import (
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	eventID int
}

type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[int]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.eventID]; !ok {
				h.rooms[client.eventID] = make(map[*Client]bool)
			}
			h.rooms[client.eventID][client] = true
			h.mu.Unlock()
			h.logger.Debug("live client subscribed", slog.Int("event_id", client.eventID))

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.eventID]; ok {
				if _, connected := room[client]; connected {
					delete(room, client)
					close(client.send)
					if len(room) == 0 {
						delete(h.rooms, client.eventID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("live client unsubscribed", slog.Int("event_id", client.eventID))
		}
	}
}

// RankingChanged implements services.RankingNotifier.
func (h *Hub) RankingChanged(eventID int) {
	h.broadcast(eventID, Message{
		Type:    "RANKING_CHANGED",
		Payload: map[string]int{"event_id": eventID},
	})
}

func (h *Hub) broadcast(eventID int, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, ok := h.rooms[eventID]
	if !ok {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to marshal live message", slog.Any("error", err))
		return
	}

	for client := range room {
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop the notification rather than block the
			// broadcaster.
			h.logger.Warn("live client send buffer full",
				slog.String("event", strconv.Itoa(eventID)))
		}
	}
}

// NewClient wires an upgraded connection into the hub and starts its pumps.
func (h *Hub) NewClient(conn *websocket.Conn, eventID int) {
	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 16),
		eventID: eventID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Inbound messages are ignored; the read loop only exists to detect
	// disconnects and answer pings.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
