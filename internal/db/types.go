package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/types"
)

// User represents a user record, keyed by the auth provider's subject
type User struct {
	ID          uuid.UUID   `json:"id"`
	AuthSubject string      `json:"-"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	ImageURL    string      `json:"image_url,omitempty"`
	Industry    *string     `json:"industry,omitempty"`
	Experience  *int        `json:"experience,omitempty"`
	Bio         *string     `json:"bio,omitempty"`
	Skills      StringArray `json:"skills"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewUser holds the identity fields a user row is created from
type NewUser struct {
	AuthSubject string
	Email       string
	Name        string
	ImageURL    string
}

// ProfileUpdate holds the onboarding fields written to a user
type ProfileUpdate struct {
	Industry   string
	Experience *int
	Bio        string
	Skills     []string
}

// Resume is a user's saved resume markdown. A user has at most one.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CoverLetter represents a generated or edited cover letter
type CoverLetter struct {
	ID             uuid.UUID               `json:"id"`
	UserID         uuid.UUID               `json:"user_id"`
	Content        string                  `json:"content"`
	JobTitle       string                  `json:"job_title"`
	CompanyName    string                  `json:"company_name"`
	JobDescription string                  `json:"job_description,omitempty"`
	Status         types.CoverLetterStatus `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// NewCoverLetter holds the fields for a cover letter insert
type NewCoverLetter struct {
	UserID         uuid.UUID
	Content        string
	JobTitle       string
	CompanyName    string
	JobDescription string
	Status         types.CoverLetterStatus
}

// IndustryInsight is a cached market insight shared by every user in an industry
type IndustryInsight struct {
	ID          uuid.UUID         `json:"id"`
	Industry    string            `json:"industry"`
	Data        types.InsightData `json:"data"`
	LastUpdated time.Time         `json:"last_updated"`
	NextUpdate  time.Time         `json:"next_update"`
}

// ToInsight converts the row into the API shape
func (i *IndustryInsight) ToInsight() *types.IndustryInsight {
	if i == nil {
		return nil
	}
	return &types.IndustryInsight{
		Industry:    i.Industry,
		InsightData: i.Data,
		LastUpdated: i.LastUpdated,
		NextUpdate:  i.NextUpdate,
	}
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	var source []byte
	switch v := src.(type) {
	case []byte:
		source = v
	case string:
		source = []byte(v)
	default:
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
