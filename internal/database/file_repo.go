package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eleclys/Chatroom/internal/models"
)

type fileRepo struct {
	pool *pgxpool.Pool
}

func NewFileRepository(pool *pgxpool.Pool) FileRepository {
	return &fileRepo{pool: pool}
}

func (r *fileRepo) Insert(ctx context.Context, filename, path string) (*models.File, error) {
	f := &models.File{Filename: filename, Path: path}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO files (filename, path)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		filename, path,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fileRepo) List(ctx context.Context) ([]models.File, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, filename, path, created_at
		 FROM files
		 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var f models.File
		if err := rows.Scan(&f.ID, &f.Filename, &f.Path, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

func (r *fileRepo) GetByID(ctx context.Context, id int64) (*models.File, error) {
	f := &models.File{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, filename, path, created_at
		 FROM files
		 WHERE id = $1`, id,
	).Scan(&f.ID, &f.Filename, &f.Path, &f.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fileRepo) ListPaths(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT path FROM files`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

func (r *fileRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	return err
}

func (r *fileRepo) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM files`)
	return err
}
