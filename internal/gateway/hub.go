package gateway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eleclys/Chatroom/internal/database"
	"github.com/eleclys/Chatroom/internal/models"
	"github.com/eleclys/Chatroom/internal/redis"
)

// Router accepts chat messages submitted over the real-time channel. The
// concrete service.RoomService implements it; it persists the message and
// broadcasts the echo back through the hub.
type Router interface {
	SubmitMessage(ctx context.Context, username, body string) (*models.Message, error)
}

// Hub is the session registry: the set of currently connected clients.
// It is owned by the composition root and passed by reference; there is
// no package-level instance.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	messages database.MessageRepository
	files    database.FileRepository
	presence *redis.Client

	router Router
}

// NewHub creates a Hub. The presence client may be nil, in which case
// presence tracking is disabled.
func NewHub(messages database.MessageRepository, files database.FileRepository, presence *redis.Client) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		messages: messages,
		files:    files,
		presence: presence,
	}
}

// BindRouter wires the hub to the message router. The hub and router
// reference each other, so this happens after both are constructed.
func (h *Hub) BindRouter(r Router) {
	h.router = r
}

// register adds a session to the registry.
func (h *Hub) register(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	h.setPresence(s.ID)
}

// unregister removes a session. No other side effect: stored records are
// untouched by disconnects.
func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	if existing, ok := h.sessions[s.ID]; ok && existing == s {
		delete(h.sessions, s.ID)
	}
	h.mu.Unlock()

	h.clearPresence(s.ID)
}

// SessionCount returns the number of currently registered sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Broadcast delivers an event to every currently registered session.
// The session set is snapshotted under the read lock and sends happen
// outside it, so registry mutation concurrent with a broadcast is safe.
// Sessions joining after the snapshot never receive the event; they see
// the resulting state in their connect-time replay instead.
func (h *Hub) Broadcast(event string, data any) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	for _, s := range targets {
		s.SendEvent(event, data)
	}
}

// replay sends a new session the point-in-time snapshot of all current
// records: full message history first, then the file list.
func (h *Hub) replay(ctx context.Context, s *Session) error {
	msgs, err := h.messages.List(ctx)
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	files, err := h.files.List(ctx)
	if err != nil {
		return err
	}
	if files == nil {
		files = []models.File{}
	}

	s.SendEvent(EventLoadHistory, msgs)
	s.SendEvent(EventLoadFiles, files)
	return nil
}

// submitChatMessage forwards an inbound chat message to the router.
func (h *Hub) submitChatMessage(ctx context.Context, username, body string) error {
	if h.router == nil {
		return nil
	}
	_, err := h.router.SubmitMessage(ctx, username, body)
	return err
}

// Presence bookkeeping is best-effort: a Redis failure never affects the
// session itself.

func (h *Hub) setPresence(sessionID string) {
	if h.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.presence.SetPresence(ctx, sessionID); err != nil {
		slog.Error("failed to set presence", "session", sessionID, "error", err)
	}
}

func (h *Hub) refreshPresence(sessionID string) {
	if h.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.presence.RefreshPresence(ctx, sessionID); err != nil {
		slog.Error("failed to refresh presence", "session", sessionID, "error", err)
	}
}

func (h *Hub) clearPresence(sessionID string) {
	if h.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.presence.ClearPresence(ctx, sessionID); err != nil {
		slog.Error("failed to clear presence", "session", sessionID, "error", err)
	}
}
