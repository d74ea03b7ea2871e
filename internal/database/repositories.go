package database

import (
	"context"

	"github.com/eleclys/Chatroom/internal/models"
)

type MessageRepository interface {
	Insert(ctx context.Context, username, body string) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

type FileRepository interface {
	Insert(ctx context.Context, filename, path string) (*models.File, error)
	List(ctx context.Context) ([]models.File, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	ListPaths(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
