package career

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/career-coach/internal/db"
	"github.com/jonathan/career-coach/internal/types"
)

// DefaultUserName is stored for users whose identity carries no name
const DefaultUserName = "User"

// UserStore looks up and creates users by auth subject
type UserStore interface {
	GetUserBySubject(ctx context.Context, subject string) (*db.User, error)
	CreateUser(ctx context.Context, nu db.NewUser) (*db.User, error)
}

// ensureUser returns the user for identity, creating it on first sight.
func ensureUser(ctx context.Context, store UserStore, identity *types.Identity) (*db.User, error) {
	if identity == nil || strings.TrimSpace(identity.Subject) == "" {
		return nil, ErrNoIdentity
	}

	user, err := store.GetUserBySubject(ctx, identity.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	name := strings.TrimSpace(identity.Name)
	if name == "" {
		name = DefaultUserName
	}
	user, err = store.CreateUser(ctx, db.NewUser{
		AuthSubject: identity.Subject,
		Email:       identity.Email,
		Name:        name,
		ImageURL:    identity.ImageURL,
	})
	if err != nil {
		return nil, &PersistenceError{Op: "create user", Cause: err}
	}
	return user, nil
}

// ToProfile converts a user row into its API shape
func ToProfile(u *db.User) *types.Profile {
	if u == nil {
		return nil
	}
	p := &types.Profile{
		ID:         u.ID,
		Subject:    u.AuthSubject,
		Email:      u.Email,
		Name:       u.Name,
		ImageURL:   u.ImageURL,
		Experience: u.Experience,
		Skills:     []string(u.Skills),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if u.Industry != nil {
		p.Industry = *u.Industry
	}
	if u.Bio != nil {
		p.Bio = *u.Bio
	}
	return p
}
