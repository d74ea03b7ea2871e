package gateway

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// HandleWebSocket handles GET /ws by upgrading to WebSocket and joining
// the room. The history replay is enqueued before the session is
// registered, so replayed records always precede any broadcast event the
// session receives.
func (h *Hub) HandleWebSocket(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("gateway upgrade error", "error", err)
		return nil
	}

	s := newSession(ws, h, uuid.NewString())

	if err := h.replay(c.Request().Context(), s); err != nil {
		slog.Error("history replay failed", "session", s.ID, "error", err)
		s.Close()
		return nil
	}

	h.register(s)

	go s.writePump()
	go s.readPump()

	return nil
}
