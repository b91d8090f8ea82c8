package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validInsight = `{
	"salaryRanges": [{"role": "Software Engineer", "min": 90000, "max": 180000, "median": 130000, "location": "US"}],
	"growthRate": 12.5,
	"demandLevel": "High",
	"topSkills": ["Go", "Kubernetes"],
	"marketOutlook": "Positive",
	"keyTrends": ["AI tooling"],
	"recommendedSkills": ["Rust"]
}`

func TestEmbeddedSchemas_ValidJSON(t *testing.T) {
	for _, name := range []string{IndustryInsight, ResumeSections} {
		t.Run(name, func(t *testing.T) {
			content, err := Get(name)
			require.NoError(t, err)

			var v interface{}
			assert.NoError(t, json.Unmarshal([]byte(content), &v))
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope.schema.json")
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
}

func TestValidate_IndustryInsight(t *testing.T) {
	assert.NoError(t, Validate(IndustryInsight, validInsight))
}

func TestValidate_IndustryInsight_BadEnum(t *testing.T) {
	doc := `{
		"salaryRanges": [], "growthRate": 1, "demandLevel": "Extreme",
		"topSkills": [], "marketOutlook": "Positive", "keyTrends": [], "recommendedSkills": []
	}`
	err := Validate(IndustryInsight, doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "demandLevel", validationErr.Errors[0].Field)
}

func TestValidate_IndustryInsight_MissingFields(t *testing.T) {
	err := Validate(IndustryInsight, `{"growthRate": 3}`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.GreaterOrEqual(t, len(validationErr.Errors), 6)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ResumeSections(t *testing.T) {
	doc := `{
		"contact_info": {"email": "ada@example.com"},
		"summary": "Engineer",
		"experience": [{"title": "Engineer", "organization": "Acme", "start_date": "2020", "current": true}]
	}`
	assert.NoError(t, Validate(ResumeSections, doc))

	err := Validate(ResumeSections, `{"experience": [{"company": "Acme"}]}`)
	assert.Error(t, err, "unknown entry fields are rejected")
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{not json`)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
}
