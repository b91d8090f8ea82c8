// Package llm wraps the generative AI provider used for industry insights and
// cover letter drafts.
package llm

import "os"

// ModelTier selects a model by cost and capability
type ModelTier string

const (
	// TierLite is for short drafts and classification
	TierLite ModelTier = "lite"
	// TierStandard is for structured output such as industry insights
	TierStandard ModelTier = "standard"
)

// Config holds the model per tier and sampling settings
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
		Temperature: 0.1,
	}
}

// ConfigFromEnv returns DefaultConfig with GEMINI_MODEL and GEMINI_LITE_MODEL
// applied when set.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		cfg.Models[TierStandard] = m
	}
	if m := os.Getenv("GEMINI_LITE_MODEL"); m != "" {
		cfg.Models[TierLite] = m
	}
	return cfg
}

// GetModel returns the model name for a tier, falling back to the standard
// tier. Returns "" when nothing is configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
