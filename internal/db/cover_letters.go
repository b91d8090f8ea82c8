package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/career-coach/internal/types"
)

const coverLetterColumns = `id, user_id, content, job_title, company_name, job_description, status, created_at, updated_at`

func scanCoverLetter(row rowScanner) (*CoverLetter, error) {
	var c CoverLetter
	err := row.Scan(&c.ID, &c.UserID, &c.Content, &c.JobTitle, &c.CompanyName,
		&c.JobDescription, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCoverLetter inserts a cover letter
func (db *DB) CreateCoverLetter(ctx context.Context, nc NewCoverLetter) (*CoverLetter, error) {
	status := nc.Status
	if status == "" {
		status = types.CoverLetterDraft
	}
	c, err := scanCoverLetter(db.pool.QueryRow(ctx,
		`INSERT INTO cover_letters (user_id, content, job_title, company_name, job_description, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+coverLetterColumns,
		nc.UserID, nc.Content, nc.JobTitle, nc.CompanyName, nc.JobDescription, status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create cover letter: %w", err)
	}
	return c, nil
}

// ListCoverLetters returns a user's cover letters, newest first
func (db *DB) ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]CoverLetter, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+coverLetterColumns+` FROM cover_letters
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	defer rows.Close()

	letters := []CoverLetter{}
	for rows.Next() {
		c, err := scanCoverLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cover letter: %w", err)
		}
		letters = append(letters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cover letters: %w", err)
	}
	return letters, nil
}

// GetCoverLetter retrieves a cover letter owned by userID. Returns nil, nil
// when it doesn't exist or belongs to someone else.
func (db *DB) GetCoverLetter(ctx context.Context, userID, id uuid.UUID) (*CoverLetter, error) {
	c, err := scanCoverLetter(db.pool.QueryRow(ctx,
		`SELECT `+coverLetterColumns+` FROM cover_letters WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}
	return c, nil
}

// UpdateCoverLetterContent replaces the content of a cover letter and marks it completed
func (db *DB) UpdateCoverLetterContent(ctx context.Context, userID, id uuid.UUID, content string) (*CoverLetter, error) {
	c, err := scanCoverLetter(db.pool.QueryRow(ctx,
		`UPDATE cover_letters SET content = $1, status = $2, updated_at = NOW()
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+coverLetterColumns,
		content, types.CoverLetterCompleted, id, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("cover letter %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update cover letter: %w", err)
	}
	return c, nil
}

// DeleteCoverLetter deletes a cover letter owned by userID
func (db *DB) DeleteCoverLetter(ctx context.Context, userID, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM cover_letters WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete cover letter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cover letter %s: %w", id, ErrNotFound)
	}
	return nil
}
