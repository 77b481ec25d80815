// Package llm provides the structured-generation boundary: model tier configuration, the
// Gemini client, and schema-validated decoding of generated JSON.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierStandard is for extraction: parsing the resume and job description into records
	TierStandard ModelTier = "standard"
	// TierAdvanced is for rewriting responsibilities against a job description
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultMaxOutputTokens bounds every generation call unless configured otherwise
const DefaultMaxOutputTokens int32 = 4096

// TierSettings holds the model and sampling parameters for one tier
type TierSettings struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Tiers    map[ModelTier]TierSettings
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Tiers: map[ModelTier]TierSettings{
			TierStandard: {Model: "gemini-2.5-flash", Temperature: 0.0, MaxOutputTokens: DefaultMaxOutputTokens},
			TierAdvanced: {Model: "gemini-2.5-pro", Temperature: 0.1, MaxOutputTokens: DefaultMaxOutputTokens},
		},
	}
}

// Settings returns the settings for a tier, falling back to the standard tier.
func (c *Config) Settings(tier ModelTier) (TierSettings, bool) {
	if s, ok := c.Tiers[tier]; ok && s.Model != "" {
		return s, true
	}
	if s, ok := c.Tiers[TierStandard]; ok && s.Model != "" {
		return s, true
	}
	return TierSettings{}, false
}

// GetModel returns the model name for a given tier, or "" if none is configured
func (c *Config) GetModel(tier ModelTier) string {
	s, _ := c.Settings(tier)
	return s.Model
}
