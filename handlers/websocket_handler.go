package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/forgehq/hackforge/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO restrict Origin to the deployed frontend domains.
		return true
	},
}

type WebSocketHandler struct {
	hub    *live.Hub
	logger *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, logger: logger}
}

// ServeWs handles GET /hackathons/{hackathonID}/live: one room per
// hackathon.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	hackathonID := chi.URLParam(r, "hackathonID")
	if hackathonID == "" {
		http.Error(w, "missing hackathon id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.String("hackathon_id", hackathonID),
			slog.Any("error", err),
		)
		return
	}

	client := live.NewClient(h.hub, conn, hackathonID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
