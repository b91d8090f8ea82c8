package career

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

// InsightSource produces insight data for an industry
type InsightSource interface {
	Generate(ctx context.Context, industry string) (*types.InsightData, error)
}

// ProfileStore is the persistence behind onboarding and insights
type ProfileStore interface {
	UserStore
	GetIndustryInsight(ctx context.Context, industry string) (*db.IndustryInsight, error)
	UpsertIndustryInsight(ctx context.Context, industry string, data types.InsightData, lastUpdated, nextUpdate time.Time) (*db.IndustryInsight, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, p db.ProfileUpdate, insight *db.IndustryInsight) (*db.User, error)
}

// ProfileResult is the outcome of onboarding
type ProfileResult struct {
	Profile *types.Profile         `json:"profile"`
	Insight *types.IndustryInsight `json:"insight,omitempty"`
}

// ProfileService handles onboarding and industry insights
type ProfileService struct {
	store    ProfileStore
	insights InsightSource
	now      func() time.Time
}

// NewProfileService creates a ProfileService
func NewProfileService(store ProfileStore, insights InsightSource) *ProfileService {
	return &ProfileService{store: store, insights: insights, now: time.Now}
}

// UpdateProfile records the onboarding form. When the industry has no insight
// yet one is generated first, outside the transaction, then stored together
// with the profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, identity *types.Identity, req *types.OnboardingRequest) (*ProfileResult, error) {
	if err := validateOnboarding(req); err != nil {
		return nil, err
	}
	industry := strings.TrimSpace(req.Industry)

	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, wrapProfileErr(err)
	}

	existing, err := s.store.GetIndustryInsight(ctx, industry)
	if err != nil {
		return nil, wrapProfileErr(err)
	}

	var pending *db.IndustryInsight
	if existing == nil {
		data, err := s.insights.Generate(ctx, industry)
		if err != nil {
			return nil, wrapProfileErr(err)
		}
		now := s.now()
		pending = &db.IndustryInsight{
			Industry:    industry,
			Data:        *data,
			LastUpdated: now,
			NextUpdate:  now.Add(types.InsightRefreshInterval),
		}
		log.Printf("[onboarding] Generated insight for industry %q", industry)
	}

	updated, err := s.store.UpdateProfile(ctx, user.ID, db.ProfileUpdate{
		Industry:   industry,
		Experience: req.Experience,
		Bio:        strings.TrimSpace(req.Bio),
		Skills:     []string(req.Skills),
	}, pending)
	if err != nil {
		return nil, wrapProfileErr(&PersistenceError{Op: "save profile", Cause: err})
	}

	insight := existing
	if insight == nil {
		// Another request may have inserted the industry first; read back the winner.
		if insight, err = s.store.GetIndustryInsight(ctx, industry); err != nil {
			return nil, wrapProfileErr(err)
		}
	}

	return &ProfileResult{Profile: ToProfile(updated), Insight: insight.ToInsight()}, nil
}

// OnboardingStatus reports whether the user picked an industry. First-time
// users are created and reported as not onboarded.
func (s *ProfileService) OnboardingStatus(ctx context.Context, identity *types.Identity) (*types.OnboardingStatus, error) {
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		if errors.Is(err, ErrNoIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check onboarding status: %w", err)
	}
	return &types.OnboardingStatus{IsOnboarded: user.Industry != nil && *user.Industry != ""}, nil
}

// Insight returns the insight for the user's industry, generating and storing
// it when missing.
func (s *ProfileService) Insight(ctx context.Context, identity *types.Identity) (*types.IndustryInsight, error) {
	user, err := ensureUser(ctx, s.store, identity)
	if err != nil {
		return nil, err
	}
	if user.Industry == nil || *user.Industry == "" {
		return nil, &NotFoundError{Resource: "industry insight"}
	}
	industry := *user.Industry

	insight, err := s.store.GetIndustryInsight(ctx, industry)
	if err != nil {
		return nil, fmt.Errorf("failed to get industry insight: %w", err)
	}
	if insight != nil {
		return insight.ToInsight(), nil
	}

	data, err := s.insights.Generate(ctx, industry)
	if err != nil {
		return nil, err
	}
	now := s.now()
	insight, err = s.store.UpsertIndustryInsight(ctx, industry, *data, now, now.Add(types.InsightRefreshInterval))
	if err != nil {
		return nil, &PersistenceError{Op: "save industry insight", Cause: err}
	}
	return insight.ToInsight(), nil
}

func validateOnboarding(req *types.OnboardingRequest) error {
	if req == nil {
		return &ValidationError{Field: "industry", Message: "industry is required"}
	}
	req.Industry = strings.TrimSpace(req.Industry)
	if err := req.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := strings.ToLower(verrs[0].Field())
			return &ValidationError{Field: field, Message: fmt.Sprintf("invalid %s: failed %q check", field, verrs[0].Tag())}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// wrapProfileErr prefixes onboarding failures while keeping the typed error
// reachable through errors.As.
func wrapProfileErr(err error) error {
	if errors.Is(err, ErrNoIdentity) {
		return err
	}
	return fmt.Errorf("failed to update profile: %w", err)
}
