package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eleclys/Chatroom/internal/models"
)

type messageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &messageRepo{pool: pool}
}

func (r *messageRepo) Insert(ctx context.Context, username, body string) (*models.Message, error) {
	m := &models.Message{Username: username, Body: body}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO messages (username, body)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		username, body,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *messageRepo) List(ctx context.Context) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, username, body, created_at
		 FROM messages
		 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.Username, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM messages WHERE id = $1)`, id,
	).Scan(&exists)
	return exists, err
}

func (r *messageRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	return err
}

func (r *messageRepo) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM messages`)
	return err
}
