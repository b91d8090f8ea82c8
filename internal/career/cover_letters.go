package career

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/types"
)

// CoverLetterStore persists cover letters
type CoverLetterStore interface {
	UserStore
	CreateCoverLetter(ctx context.Context, nc db.NewCoverLetter) (*db.CoverLetter, error)
	ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]db.CoverLetter, error)
	GetCoverLetter(ctx context.Context, userID, id uuid.UUID) (*db.CoverLetter, error)
	UpdateCoverLetterContent(ctx context.Context, userID, id uuid.UUID, content string) (*db.CoverLetter, error)
	DeleteCoverLetter(ctx context.Context, userID, id uuid.UUID) error
}

// CoverLetterService manages a user's cover letters
type CoverLetterService struct {
	store  CoverLetterStore
	writer llm.Client
}

// NewCoverLetterService creates a CoverLetterService. writer may be nil, in
// which case letters created without content stay drafts.
func NewCoverLetterService(store CoverLetterStore, writer llm.Client) *CoverLetterService {
	return &CoverLetterService{store: store, writer: writer}
}

// Create stores a new cover letter. Without content, and with a writer
// configured, the letter is drafted by the model from the user's profile.
func (s *CoverLetterService) Create(ctx context.Context, identity *types.Identity, req *types.CreateCoverLetterRequest) (*db.CoverLetter, error) {
	if req == nil {
		return nil, &ValidationError{Field: "job_title", Message: "job title is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, &ValidationError{Message: "job title and company name are required"}
	}

	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	status := types.CoverLetterDraft
	if content == "" && s.writer != nil {
		content, err = s.draft(ctx, user, req)
		if err != nil {
			return nil, err
		}
	}
	if content != "" {
		status = types.CoverLetterCompleted
	}

	letter, err := s.store.CreateCoverLetter(ctx, db.NewCoverLetter{
		UserID:         user.ID,
		Content:        content,
		JobTitle:       strings.TrimSpace(req.JobTitle),
		CompanyName:    strings.TrimSpace(req.CompanyName),
		JobDescription: strings.TrimSpace(req.JobDescription),
		Status:         status,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "create cover letter", Cause: err}
	}
	return letter, nil
}

func (s *CoverLetterService) draft(ctx context.Context, user *db.User, req *types.CreateCoverLetterRequest) (string, error) {
	profile := ToProfile(user)
	experience := ""
	if profile.Experience != nil {
		experience = strconv.Itoa(*profile.Experience)
	}
	prompt, err := prompts.Render(prompts.CareerFile, prompts.KeyCoverLetter, map[string]string{
		"JobTitle":       req.JobTitle,
		"CompanyName":    req.CompanyName,
		"JobDescription": req.JobDescription,
		"Industry":       profile.Industry,
		"Experience":     experience,
		"Skills":         strings.Join(profile.Skills, ", "),
		"Bio":            profile.Bio,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build cover letter prompt: %w", err)
	}

	text, err := s.writer.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return "", fmt.Errorf("failed to generate cover letter: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// List returns the user's cover letters, newest first
func (s *CoverLetterService) List(ctx context.Context, identity *types.Identity) ([]db.CoverLetter, error) {
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}
	letters, err := s.store.ListCoverLetters(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cover letters: %w", err)
	}
	return letters, nil
}

// Get returns one of the user's cover letters
func (s *CoverLetterService) Get(ctx context.Context, identity *types.Identity, id uuid.UUID) (*db.CoverLetter, error) {
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}
	letter, err := s.store.GetCoverLetter(ctx, user.ID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get cover letter: %w", err)
	}
	if letter == nil {
		return nil, &NotFoundError{Resource: "cover letter", ID: id.String()}
	}
	return letter, nil
}

// Update replaces the content of a cover letter
func (s *CoverLetterService) Update(ctx context.Context, identity *types.Identity, id uuid.UUID, content string) (*db.CoverLetter, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Field: "content", Message: "Content cannot be empty"}
	}
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}
	letter, err := s.store.UpdateCoverLetterContent(ctx, user.ID, id, content)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, &NotFoundError{Resource: "cover letter", ID: id.String()}
		}
		return nil, &PersistenceError{Op: "update cover letter", Cause: err}
	}
	return letter, nil
}

// Delete removes a cover letter
func (s *CoverLetterService) Delete(ctx context.Context, identity *types.Identity, id uuid.UUID) error {
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCoverLetter(ctx, user.ID, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &NotFoundError{Resource: "cover letter", ID: id.String()}
		}
		return &PersistenceError{Op: "delete cover letter", Cause: err}
	}
	return nil
}
