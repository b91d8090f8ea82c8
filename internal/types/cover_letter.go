package types

// CoverLetterStatus is the lifecycle state of a cover letter.
type CoverLetterStatus string

// Cover letter statuses
const (
	CoverLetterDraft     CoverLetterStatus = "draft"
	CoverLetterCompleted CoverLetterStatus = "completed"
)

// CreateCoverLetterRequest creates a new cover letter.
type CreateCoverLetterRequest struct {
	JobTitle       string `json:"job_title" validate:"required"`
	CompanyName    string `json:"company_name" validate:"required"`
	JobDescription string `json:"job_description,omitempty"`
	Content        string `json:"content,omitempty"`
}

// Validate validates the CreateCoverLetterRequest using the validator.
func (r *CreateCoverLetterRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateCoverLetterRequest replaces the content of a cover letter.
type UpdateCoverLetterRequest struct {
	Content string `json:"content"`
}
