// Package rendering assembles resume sections into markdown and renders the
// markdown into the preview page that gets rasterized for export.
package rendering

import (
	"strings"

	"github.com/jonathan/career-coach/internal/types"
)

// PlaceholderName is used in the contact heading when the identity has no name.
const PlaceholderName = "Your Name"

// Category headings, in document order.
const (
	CategoryExperience = "Work Experience"
	CategoryEducation  = "Education"
	CategoryProjects   = "Projects"
)

const (
	sectionSeparator = "\n\n"
	contactSeparator = " | "
	dateSeparator    = " – "
	presentLabel     = "Present"
)

// Combine builds the resume markdown from the form sections. Sections are
// emitted in a fixed order and empty sections contribute nothing, so a fully
// empty form yields "".
func Combine(sections types.ResumeSections, displayName string) string {
	parts := []string{
		ContactMarkdown(sections.Contact, displayName),
		textSection("Professional Summary", sections.Summary),
		textSection("Skills", sections.Skills),
		EntriesToMarkdown(sections.Experience, CategoryExperience),
		EntriesToMarkdown(sections.Education, CategoryEducation),
		EntriesToMarkdown(sections.Projects, CategoryProjects),
	}

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, sectionSeparator)
}

// ContactMarkdown renders the name heading and the contact line.
// Returns "" when no contact field is present.
func ContactMarkdown(contact types.ContactInfo, displayName string) string {
	var fields []string
	if v := strings.TrimSpace(contact.Email); v != "" {
		fields = append(fields, "📧 "+v)
	}
	if v := strings.TrimSpace(contact.Mobile); v != "" {
		fields = append(fields, "📱 "+v)
	}
	if v := strings.TrimSpace(contact.LinkedIn); v != "" {
		fields = append(fields, "💼 [LinkedIn]("+v+")")
	}
	if v := strings.TrimSpace(contact.Twitter); v != "" {
		fields = append(fields, "🐦 [Twitter]("+v+")")
	}
	if len(fields) == 0 {
		return ""
	}

	name := strings.TrimSpace(displayName)
	if name == "" {
		name = PlaceholderName
	}
	return "# " + name + sectionSeparator + strings.Join(fields, contactSeparator)
}

// EntriesToMarkdown renders a timeline category. Blank entries are skipped and
// a category with no remaining entries renders as "".
func EntriesToMarkdown(entries []types.TimelineEntry, category string) string {
	var blocks []string
	for _, e := range entries {
		if e.IsEmpty() {
			continue
		}
		blocks = append(blocks, entryMarkdown(e))
	}
	if len(blocks) == 0 {
		return ""
	}
	return "## " + category + sectionSeparator + strings.Join(blocks, sectionSeparator)
}

func entryMarkdown(e types.TimelineEntry) string {
	var head []string
	if h := entryHeading(e); h != "" {
		head = append(head, "### "+h)
	}
	if d := DateRange(e); d != "" {
		head = append(head, d)
	}

	block := strings.Join(head, "\n")
	desc := strings.TrimSpace(e.Description)
	switch {
	case desc == "":
		return block
	case block == "":
		return desc
	default:
		return block + sectionSeparator + desc
	}
}

func entryHeading(e types.TimelineEntry) string {
	title := strings.TrimSpace(e.Title)
	org := strings.TrimSpace(e.Organization)
	switch {
	case title != "" && org != "":
		return title + " at " + org
	case title != "":
		return title
	default:
		return org
	}
}

// DateRange renders "start – end", with "Present" as the end of a current entry.
func DateRange(e types.TimelineEntry) string {
	start := strings.TrimSpace(e.StartDate)
	end := strings.TrimSpace(e.EndDate)
	if e.Current {
		end = presentLabel
	}
	switch {
	case start != "" && end != "":
		return start + dateSeparator + end
	case start != "":
		return start
	default:
		return end
	}
}

func textSection(heading, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return "## " + heading + sectionSeparator + body
}
