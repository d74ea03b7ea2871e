package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/eleclys/Chatroom/internal/database"
	"github.com/eleclys/Chatroom/internal/gateway"
	"github.com/eleclys/Chatroom/internal/models"
)

// maxBodyBytes is the storage column ceiling for a message body. Longer
// bodies are truncated by byte position, silently.
const maxBodyBytes = 16777215

// defaultUsername stands in when a client submits no username.
const defaultUsername = "unknown"

// Broadcaster delivers an event to every connected session. The concrete
// gateway.Hub implements it.
type Broadcaster interface {
	Broadcast(event string, data any)
}

// FileStorage abstracts blob storage operations for testability.
type FileStorage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	URL(key string) string
	Delete(ctx context.Context, key string) error
}

// RoomService routes client-submitted events: it persists the record,
// then fans the state change out to every session. Within one submission
// the store write always happens before the broadcast; across concurrent
// submissions the relative order is whatever the store commits.
type RoomService struct {
	messages  database.MessageRepository
	files     database.FileRepository
	storage   FileStorage
	broadcast Broadcaster

	now func() time.Time
}

// NewRoomService creates a RoomService.
func NewRoomService(
	messages database.MessageRepository,
	files database.FileRepository,
	storage FileStorage,
	broadcast Broadcaster,
) *RoomService {
	return &RoomService{
		messages:  messages,
		files:     files,
		storage:   storage,
		broadcast: broadcast,
		now:       time.Now,
	}
}

// SubmitMessage persists a chat message and echoes it to all sessions,
// including the sender. An insert failure aborts the submission: nothing
// is broadcast and the error is scoped to this one event.
func (s *RoomService) SubmitMessage(ctx context.Context, username, body string) (*models.Message, error) {
	if username == "" {
		username = defaultUsername
	}
	if len(body) > maxBodyBytes {
		body = body[:maxBodyBytes]
	}

	msg, err := s.messages.Insert(ctx, username, body)
	if err != nil {
		return nil, Internal("INTERNAL", "failed to store message")
	}

	s.broadcast.Broadcast(gateway.EventChatMessage, gateway.ChatMessageData{
		Username: msg.Username,
		Message:  msg.Body,
	})

	return msg, nil
}

// SubmitFile stores an uploaded blob, records its metadata, and announces
// it to all sessions. The blob write happens first; if it fails no record
// is inserted and nothing is broadcast.
func (s *RoomService) SubmitFile(ctx context.Context, owner, originalFilename string, size int64, contentType string, reader io.Reader) (*models.File, error) {
	if owner == "" {
		owner = defaultUsername
	}
	if originalFilename == "" {
		return nil, BadRequest("MISSING_FILENAME", "original filename is required")
	}

	// The original name is kept verbatim, extension included, with the
	// millisecond timestamp making the derived name collision-resistant.
	ext := filepath.Ext(originalFilename)
	filename := fmt.Sprintf("%s_%s_%d%s", owner, originalFilename, s.now().UnixMilli(), ext)
	key := "uploads/" + filename

	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		return nil, Internal("UPLOAD_FAILED", "failed to store file")
	}

	file, err := s.files.Insert(ctx, filename, key)
	if err != nil {
		return nil, Internal("INTERNAL", "failed to record file")
	}

	s.broadcast.Broadcast(gateway.EventFileUploaded, gateway.FileUploadedData{
		Filename: file.Filename,
		Path:     file.Path,
		URL:      s.storage.URL(file.Path),
	})

	return file, nil
}
