package service

import (
	"context"
	"log/slog"

	"github.com/eleclys/Chatroom/internal/database"
	"github.com/eleclys/Chatroom/internal/gateway"
	"github.com/eleclys/Chatroom/internal/models"
)

// AdminService mutates stored records outside the real-time channel.
// Bulk wipes broadcast a resync signal so every connected session
// re-fetches authoritative state; single-record deletes do not, and a
// live view may be briefly stale until its next replay.
type AdminService struct {
	messages  database.MessageRepository
	files     database.FileRepository
	storage   FileStorage
	broadcast Broadcaster
}

// NewAdminService creates an AdminService.
func NewAdminService(
	messages database.MessageRepository,
	files database.FileRepository,
	storage FileStorage,
	broadcast Broadcaster,
) *AdminService {
	return &AdminService{
		messages:  messages,
		files:     files,
		storage:   storage,
		broadcast: broadcast,
	}
}

// ListMessages returns every message, oldest first.
func (s *AdminService) ListMessages(ctx context.Context) ([]models.Message, error) {
	msgs, err := s.messages.List(ctx)
	if err != nil {
		return nil, Internal("INTERNAL", "failed to list messages")
	}
	if msgs == nil {
		msgs = []models.Message{}
	}
	return msgs, nil
}

// ListFiles returns every file record, oldest first.
func (s *AdminService) ListFiles(ctx context.Context) ([]models.File, error) {
	files, err := s.files.List(ctx)
	if err != nil {
		return nil, Internal("INTERNAL", "failed to list files")
	}
	if files == nil {
		files = []models.File{}
	}
	return files, nil
}

// DeleteMessage deletes one message by id.
func (s *AdminService) DeleteMessage(ctx context.Context, id int64) error {
	exists, err := s.messages.Exists(ctx, id)
	if err != nil {
		return Internal("INTERNAL", "failed to check message")
	}
	if !exists {
		return NotFound("NOT_FOUND", "message not found")
	}
	if err := s.messages.Delete(ctx, id); err != nil {
		return Internal("INTERNAL", "failed to delete message")
	}
	return nil
}

// DeleteFile deletes one file record and its blob. The blob goes first;
// if that fails the record is retained so it never points at a vanished
// blob, and the failure is reported to the caller.
func (s *AdminService) DeleteFile(ctx context.Context, id int64) error {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return Internal("INTERNAL", "failed to load file")
	}
	if file == nil {
		return NotFound("NOT_FOUND", "file not found")
	}

	if err := s.storage.Delete(ctx, file.Path); err != nil {
		return Internal("BLOB_DELETE_FAILED", "failed to delete stored file")
	}
	if err := s.files.Delete(ctx, id); err != nil {
		return Internal("INTERNAL", "failed to delete file record")
	}
	return nil
}

// DeleteAllMessages wipes every message and signals all sessions to
// re-fetch history. Idempotent: wiping an empty room succeeds.
func (s *AdminService) DeleteAllMessages(ctx context.Context) error {
	if err := s.messages.DeleteAll(ctx); err != nil {
		return Internal("INTERNAL", "failed to delete messages")
	}
	s.broadcast.Broadcast(gateway.EventRefreshMessages, nil)
	return nil
}

// DeleteAllFiles wipes every file record after a best-effort pass over
// the blobs: a blob deletion failure is logged and skipped, never
// blocking the rest of the cleanup or the record wipe.
func (s *AdminService) DeleteAllFiles(ctx context.Context) error {
	paths, err := s.files.ListPaths(ctx)
	if err != nil {
		return Internal("INTERNAL", "failed to list file paths")
	}

	for _, path := range paths {
		if err := s.storage.Delete(ctx, path); err != nil {
			slog.Error("failed to delete blob during bulk wipe", "path", path, "error", err)
		}
	}

	if err := s.files.DeleteAll(ctx); err != nil {
		return Internal("INTERNAL", "failed to delete file records")
	}
	s.broadcast.Broadcast(gateway.EventRefreshFiles, nil)
	return nil
}
