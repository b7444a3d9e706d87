package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRepository is the Postgres-backed Repository.
type PgxRepository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PgxRepository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *PgxRepository {
	return &PgxRepository{db: db}
}

// Insert persists the post inside a single transaction. The creation
// timestamp is assigned by the database and written back to p.
func (r *PgxRepository) Insert(ctx context.Context, p *Post) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO posts (id, user_id, caption, url, file_type, file_name)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING created_at`,
			p.ID, p.UserID, p.Caption, p.URL, p.FileType, p.FileName,
		).Scan(&p.CreatedAt)
	})
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// ListFeed loads every post together with its owner's email in one joined
// query, newest first. The LEFT JOIN keeps a post visible even if its user
// row is gone; the service substitutes a sentinel email in that case.
func (r *PgxRepository) ListFeed(ctx context.Context) ([]FeedEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.user_id, p.caption, p.url, p.file_type, p.file_name, p.created_at, u.email
		 FROM posts p
		 LEFT JOIN users u ON u.id = p.user_id
		 ORDER BY p.created_at DESC, p.seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	defer rows.Close()

	var entries []FeedEntry
	for rows.Next() {
		var e FeedEntry
		if err := rows.Scan(
			&e.Post.ID,
			&e.Post.UserID,
			&e.Post.Caption,
			&e.Post.URL,
			&e.Post.FileType,
			&e.Post.FileName,
			&e.Post.CreatedAt,
			&e.OwnerEmail,
		); err != nil {
			return nil, fmt.Errorf("scan feed row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read feed rows: %w", err)
	}
	return entries, nil
}

// GetByID fetches a post by its UUID. A malformed id cannot reference any
// post, so it reports ErrNotFound instead of a Postgres cast error.
func (r *PgxRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	p := &Post{}
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, caption, url, file_type, file_name, created_at
		 FROM posts WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.UserID, &p.Caption, &p.URL, &p.FileType, &p.FileName, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", err)
	}
	return p, nil
}

// Delete removes the post row in a single transaction. A row that is
// already gone reports ErrNotFound.
func (r *PgxRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
