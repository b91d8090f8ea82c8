package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, auth_subject, email, name, image_url, industry, experience, bio, skills, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.AuthSubject, &u.Email, &u.Name, &u.ImageURL,
		&u.Industry, &u.Experience, &u.Bio, &u.Skills, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserBySubject retrieves a user by auth provider subject. Returns nil, nil
// when no such user exists.
func (db *DB) GetUserBySubject(ctx context.Context, subject string) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE auth_subject = $1`,
		subject,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByID retrieves a user by UUID. Returns nil, nil when missing.
func (db *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// CreateUser inserts a user for an auth subject. A concurrent insert for the
// same subject returns the existing row.
func (db *DB) CreateUser(ctx context.Context, nu NewUser) (*User, error) {
	if strings.TrimSpace(nu.AuthSubject) == "" {
		return nil, fmt.Errorf("auth subject cannot be empty")
	}
	u, err := scanUser(db.pool.QueryRow(ctx,
		`INSERT INTO users (auth_subject, email, name, image_url)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (auth_subject) DO UPDATE SET updated_at = NOW()
		 RETURNING `+userColumns,
		nu.AuthSubject, nu.Email, nu.Name, nu.ImageURL,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

// UpdateProfile writes the onboarding fields of a user. When insight is not
// nil it is inserted in the same transaction unless a row for its industry
// already exists.
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, p ProfileUpdate, insight *IndustryInsight) (*User, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			fmt.Printf("Rollback error: %v\n", rErr)
		}
	}()

	if insight != nil {
		if err := insertInsightIfMissing(ctx, tx, insight); err != nil {
			return nil, err
		}
	}

	skills := StringArray(p.Skills)
	if skills == nil {
		skills = StringArray{}
	}

	u, err := scanUser(tx.QueryRow(ctx,
		`UPDATE users
		 SET industry = $1, experience = $2, bio = $3, skills = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING `+userColumns,
		p.Industry, p.Experience, nullableString(p.Bio), skills, userID,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return u, nil
}

func insertInsightIfMissing(ctx context.Context, tx pgx.Tx, insight *IndustryInsight) error {
	data, err := json.Marshal(insight.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal insight: %w", err)
	}
	lastUpdated := insight.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO industry_insights (industry, data, last_updated, next_update)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (industry) DO NOTHING`,
		insight.Industry, data, lastUpdated, insight.NextUpdate,
	)
	if err != nil {
		return fmt.Errorf("failed to create industry insight: %w", err)
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
