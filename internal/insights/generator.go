// Package insights generates and refreshes AI industry insights.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/career-coach/internal/llm"
	"github.com/jonathan/career-coach/internal/prompts"
	"github.com/jonathan/career-coach/internal/schemas"
	"github.com/jonathan/career-coach/internal/types"
)

// GenerationError is a failure to obtain a usable insight from the model
type GenerationError struct {
	Industry string
	Message  string
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("insight generation for %q: %s: %v", e.Industry, e.Message, e.Cause)
	}
	return fmt.Sprintf("insight generation for %q: %s", e.Industry, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generator asks the LLM for industry insights
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate returns fresh insight data for an industry. The model output is
// checked against the industry insight schema before decoding.
func (g *Generator) Generate(ctx context.Context, industry string) (*types.InsightData, error) {
	industry = strings.TrimSpace(industry)
	if industry == "" {
		return nil, &GenerationError{Message: "industry is empty"}
	}

	prompt, err := prompts.Render(prompts.CareerFile, prompts.KeyIndustryInsight, map[string]string{
		"Industry": industry,
	})
	if err != nil {
		return nil, &GenerationError{Industry: industry, Message: "failed to build prompt", Cause: err}
	}

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Industry: industry, Message: "model call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.IndustryInsight, raw); err != nil {
		return nil, &GenerationError{Industry: industry, Message: "model returned an invalid insight", Cause: err}
	}

	var data types.InsightData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, &GenerationError{Industry: industry, Message: "failed to decode insight", Cause: err}
	}
	return &data, nil
}
