package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validate is shared; validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()

// OnboardingRequest is the profile form submitted during onboarding.
type OnboardingRequest struct {
	Industry   string `json:"industry" validate:"required,min=2"`
	Experience *int   `json:"experience,omitempty" validate:"omitempty,min=0,max=60"`
	Bio        string `json:"bio,omitempty" validate:"max=2000"`
	// Skills is either a JSON array or a comma separated string.
	Skills SkillList `json:"skills,omitempty"`
}

// Validate validates the OnboardingRequest using the validator.
func (r *OnboardingRequest) Validate() error {
	return validate.Struct(r)
}

// SkillList accepts both ["a","b"] and "a, b" on the wire.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler
func (s *SkillList) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*s = nil
		return nil
	}
	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*s = SkillList(items)
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = SplitSkills(joined)
	return nil
}

// SplitSkills splits a comma separated skills string, trimming each item and
// dropping empties.
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

// Profile is the user profile returned by the API.
type Profile struct {
	ID         uuid.UUID `json:"id"`
	Subject    string    `json:"-"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"image_url,omitempty"`
	Industry   string    `json:"industry,omitempty"`
	Experience *int      `json:"experience,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	Skills     []string  `json:"skills"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OnboardingStatus reports whether a user finished onboarding.
type OnboardingStatus struct {
	IsOnboarded bool `json:"is_onboarded"`
}
