package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(CareerFile, KeyIndustryInsight)
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Industry}}")
	assert.Contains(t, prompt, "salaryRanges")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(CareerFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	out, err := Format("Hello {{.Name}}, welcome to {{.Place}}. Bye {{.Name}}.", map[string]string{
		"Name":  "Ada",
		"Place": "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, welcome to Acme. Bye Ada.", out)
}

func TestFormat_MissingValue(t *testing.T) {
	_, err := Format("{{.B}} and {{.A}}", map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A, B")
}

func TestFormat_EmptyValueIsAllowed(t *testing.T) {
	out, err := Format("bio: {{.Bio}}", map[string]string{"Bio": ""})
	require.NoError(t, err)
	assert.Equal(t, "bio: ", out)
}

func TestRender_CoverLetter(t *testing.T) {
	ClearCache()

	out, err := Render(CareerFile, KeyCoverLetter, map[string]string{
		"JobTitle":       "Backend Engineer",
		"CompanyName":    "Acme",
		"Industry":       "tech",
		"Experience":     "5",
		"Skills":         "Go, SQL",
		"Bio":            "Builds services",
		"JobDescription": "Own the billing API",
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Backend Engineer position at Acme")
	assert.NotContains(t, out, "{{.")
}
