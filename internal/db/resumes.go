package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResume stores the user's resume, replacing any previous content
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, content string) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET content = EXCLUDED.content, updated_at = NOW()
		 RETURNING id, user_id, content, created_at, updated_at`,
		userID, content,
	).Scan(&r.ID, &r.UserID, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return &r, nil
}

// GetResume retrieves the user's resume. Returns nil, nil if none was saved.
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, content, created_at, updated_at FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&r.ID, &r.UserID, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}
