package career

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/rendering"
	"github.com/jonathan/career-coach/internal/types"
)

// ResumeStore persists a user's resume markdown
type ResumeStore interface {
	UserStore
	SaveResume(ctx context.Context, userID uuid.UUID, content string) (*db.Resume, error)
	GetResume(ctx context.Context, userID uuid.UUID) (*db.Resume, error)
}

// ResumeService saves and loads the resume document
type ResumeService struct {
	store ResumeStore
}

// NewResumeService creates a ResumeService
func NewResumeService(store ResumeStore) *ResumeService {
	return &ResumeService{store: store}
}

// Save normalizes content and stores it as the user's resume. Empty documents
// are rejected before anything is written.
func (s *ResumeService) Save(ctx context.Context, identity *types.Identity, content string) (*db.Resume, error) {
	normalized := rendering.Normalize(content)
	if normalized == "" {
		return nil, &ValidationError{Field: "content", Message: "Resume content cannot be empty"}
	}

	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}

	resume, err := s.store.SaveResume(ctx, user.ID, normalized)
	if err != nil {
		return nil, &PersistenceError{Op: "save resume", Cause: err}
	}
	return resume, nil
}

// Get loads the user's saved resume
func (s *ResumeService) Get(ctx context.Context, identity *types.Identity) (*db.Resume, error) {
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}

	resume, err := s.store.GetResume(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == nil {
		return nil, &NotFoundError{Resource: "resume"}
	}
	return resume, nil
}
