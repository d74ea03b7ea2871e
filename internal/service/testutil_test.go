package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/eleclys/Chatroom/internal/models"
)

// ---------------------------------------------------------------------------
// Mock broadcaster
// ---------------------------------------------------------------------------

type broadcastCall struct {
	Event string
	Data  any
}

type mockBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (m *mockBroadcaster) Broadcast(event string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, broadcastCall{Event: event, Data: data})
}

func (m *mockBroadcaster) events() []broadcastCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]broadcastCall(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock storage
// ---------------------------------------------------------------------------

type mockStorage struct {
	UploadFn func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DeleteFn func(ctx context.Context, key string) error

	mu      sync.Mutex
	deleted []string
}

func (m *mockStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if m.UploadFn != nil {
		return m.UploadFn(ctx, key, reader, size, contentType)
	}
	return nil
}

func (m *mockStorage) URL(key string) string { return "http://storage.test/" + key }

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	m.deleted = append(m.deleted, key)
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
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
	return &models.Message{ID: 1, Username: username, Body: body, CreatedAt: time.Now()}, nil
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
	return &models.File{ID: 1, Filename: filename, Path: path, CreatedAt: time.Now()}, nil
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
