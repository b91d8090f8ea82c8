// Package types provides type definitions for structured data used throughout the career coach system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// ContactInfo holds the reach and social fields of the contact section.
// Values are kept as typed; a half-entered address is still rendered.
type ContactInfo struct {
	Email    string `json:"email,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// IsEmpty reports whether every contact field is blank.
func (c ContactInfo) IsEmpty() bool {
	return isBlank(c.Email) && isBlank(c.Mobile) && isBlank(c.LinkedIn) && isBlank(c.Twitter)
}

// TimelineEntry is a single experience, education or project entry.
// An entry marked Current has no terminal date.
type TimelineEntry struct {
	Title        string `json:"title,omitempty"`
	Organization string `json:"organization,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Current      bool   `json:"current,omitempty"`
	Description  string `json:"description,omitempty"`
}

// IsEmpty reports whether the entry has no content at all.
func (e TimelineEntry) IsEmpty() bool {
	return !e.Current &&
		isBlank(e.Title) &&
		isBlank(e.Organization) &&
		isBlank(e.StartDate) &&
		isBlank(e.EndDate) &&
		isBlank(e.Description)
}

// ResumeSections is the structured form data the resume document is built from.
type ResumeSections struct {
	Contact    ContactInfo     `json:"contact_info"`
	Summary    string          `json:"summary,omitempty"`
	Skills     string          `json:"skills,omitempty"`
	Experience []TimelineEntry `json:"experience,omitempty"`
	Education  []TimelineEntry `json:"education,omitempty"`
	Projects   []TimelineEntry `json:"projects,omitempty"`
}

// Clone returns a deep copy so callers can't mutate shared entry slices.
func (s ResumeSections) Clone() ResumeSections {
	out := s
	out.Experience = append([]TimelineEntry(nil), s.Experience...)
	out.Education = append([]TimelineEntry(nil), s.Education...)
	out.Projects = append([]TimelineEntry(nil), s.Projects...)
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
