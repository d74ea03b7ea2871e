package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/websocket"

	"github.com/eleclys/Chatroom/internal/models"
	redisclient "github.com/eleclys/Chatroom/internal/redis"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestRedis(t *testing.T) *redisclient.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := redisclient.NewClient("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("creating test redis client: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func newTestHub(t *testing.T, messages *mockMessageRepo, files *mockFileRepo) *Hub {
	t.Helper()
	if messages == nil {
		messages = &mockMessageRepo{}
	}
	if files == nil {
		files = &mockFileRepo{}
	}
	return NewHub(messages, files, newTestRedis(t))
}

// fakeSession creates a Session wired into the Hub with a buffered Send
// channel so we can read dispatched frames without pumping a real
// WebSocket. A throw-away test server pair backs the *websocket.Conn to
// avoid nil panics; it is never read from or written to.
func fakeSession(t *testing.T, h *Hub, id string) *Session {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		up := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
		ws, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("fakeSession: dial failed: %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })

	s := &Session{
		ID:       id,
		JoinedAt: time.Now(),
		Conn:     ws,
		Send:     make(chan []byte, sendBufferSize),
		hub:      h,
		done:     make(chan struct{}),
	}
	return s
}

// drainFrames reads all buffered frames from a session's Send channel.
func drainFrames(s *Session) []Frame {
	var frames []Frame
	for {
		select {
		case raw := <-s.Send:
			var f Frame
			if err := json.Unmarshal(raw, &f); err == nil {
				frames = append(frames, f)
			}
		default:
			return frames
		}
	}
}

// ---------------------------------------------------------------------------
// Mock repositories
// ---------------------------------------------------------------------------

// mockMessageRepo implements database.MessageRepository.
type mockMessageRepo struct {
	InsertFn    func(ctx context.Context, username, body string) (*models.Message, error)
	ListFn      func(ctx context.Context) ([]models.Message, error)
	ExistsFn    func(ctx context.Context, id int64) (bool, error)
	DeleteFn    func(ctx context.Context, id int64) error
	DeleteAllFn func(ctx context.Context) error
}

func (m *mockMessageRepo) Insert(ctx context.Context, username, body string) (*models.Message, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, username, body)
	}
	return &models.Message{ID: 1, Username: username, Body: body}, nil
}

func (m *mockMessageRepo) List(ctx context.Context) ([]models.Message, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockMessageRepo) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return false, nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockMessageRepo) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}
	return nil
}

// mockFileRepo implements database.FileRepository.
type mockFileRepo struct {
	InsertFn    func(ctx context.Context, filename, path string) (*models.File, error)
	ListFn      func(ctx context.Context) ([]models.File, error)
	GetByIDFn   func(ctx context.Context, id int64) (*models.File, error)
	ListPathsFn func(ctx context.Context) ([]string, error)
	DeleteFn    func(ctx context.Context, id int64) error
	DeleteAllFn func(ctx context.Context) error
}

func (m *mockFileRepo) Insert(ctx context.Context, filename, path string) (*models.File, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, filename, path)
	}
	return &models.File{ID: 1, Filename: filename, Path: path}, nil
}

func (m *mockFileRepo) List(ctx context.Context) ([]models.File, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *mockFileRepo) GetByID(ctx context.Context, id int64) (*models.File, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockFileRepo) ListPaths(ctx context.Context) ([]string, error) {
	if m.ListPathsFn != nil {
		return m.ListPathsFn(ctx)
	}
	return nil, nil
}

func (m *mockFileRepo) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *mockFileRepo) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFn != nil {
		return m.DeleteAllFn(ctx)
	}
	return nil
}
