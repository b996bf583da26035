package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/hirohaya/racket-hero/live"
	"github.com/hirohaya/racket-hero/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering is handled by the CORS layer in front of the
		// router; the ranking feed itself is public read-only data.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	eventService services.EventService
	logger       *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, eventService services.EventService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		eventService: eventService,
		logger:       logger,
	}
}

// ServeWs subscribes the caller to live ranking updates for one event.
// Clients connect to /ws/events/{eventID}/ranking.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	eventID, err := readIDParam(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.eventService.GetByID(r.Context(), eventID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "event_id", eventID, "error", err)
		return
	}

	h.hub.NewClient(conn, eventID)
}
