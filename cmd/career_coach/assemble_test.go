package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sectionsJSON = `{
  "contact_info": {"email": "ada@example.com", "linkedin": "https://linkedin.com/in/ada"},
  "summary": "Analyst of engines.",
  "experience": [
    {"title": "Analyst", "organization": "Analytical Engines", "start_date": "1842", "current": true, "description": "Wrote the first program."}
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAssembleCommand_PrintsMarkdown(t *testing.T) {
	path := writeFile(t, "sections.json", sectionsJSON)

	stdout, _, err := execute(t, "assemble", "--sections", path, "--name", "Ada Lovelace")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "# Ada Lovelace"), stdout)
	assert.Contains(t, stdout, "ada@example.com")
	assert.Contains(t, stdout, "Analyst of engines.")
	assert.Contains(t, stdout, "Analytical Engines")
}

func TestAssembleCommand_WritesFile(t *testing.T) {
	path := writeFile(t, "sections.json", sectionsJSON)
	out := filepath.Join(t.TempDir(), "nested", "resume.md")

	stdout, _, err := execute(t, "assemble", "-s", path, "-o", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Analyst of engines.")
}

func TestAssembleCommand_VerboseSummary(t *testing.T) {
	path := writeFile(t, "sections.json", sectionsJSON)

	_, stderr, err := execute(t, "assemble", "--sections", path, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "RESUME SECTIONS")
	assert.Contains(t, stderr, "Experience: 1")
}

func TestAssembleCommand_MissingSectionsFlag(t *testing.T) {
	_, _, err := execute(t, "assemble")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "sections" not set`)
}

func TestAssembleCommand_InvalidSections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown field", content: `{"hobbies": "chess"}`, want: "invalid sections file"},
		{name: "wrong type", content: `{"summary": 42}`, want: "invalid sections file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "sections.json", tt.content)
			_, _, err := execute(t, "assemble", "--sections", path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAssembleCommand_PartialContact(t *testing.T) {
	path := writeFile(t, "sections.json", `{"contact_info": {"email": "ada@", "linkedin": "linkedin.com/in/ada"}}`)

	stdout, _, err := execute(t, "assemble", "--sections", path, "--name", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "# Ada Lovelace\n\n📧 ada@ | 💼 [LinkedIn](linkedin.com/in/ada)\n", stdout)
}

func TestAssembleCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, "assemble", "--sections", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read sections file")
}
