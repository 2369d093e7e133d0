package docgen

import (
	"time"

	"github.com/hazyhaar/scribe/docgen/internal/provider"
)

// Config carries the docgen service settings. Zero values fall back to
// defaults().
type Config struct {
	// OutputDir receives generated markdown files.
	OutputDir string
	// DBPath is the SQLite database for types and document metadata.
	DBPath string
	// TemplatesDir optionally holds YAML template packs loaded at startup.
	TemplatesDir string

	// Vendor API keys. Providers without a key reject calls.
	OpenAIKey     string
	AnthropicKey  string
	OpenRouterKey string

	// Per-request fallbacks.
	DefaultProvider    string
	DefaultModel       string
	DefaultMaxTokens   int
	DefaultTemperature float64

	// AITimeout bounds one vendor round trip.
	AITimeout time.Duration
}

func (c *Config) defaults() {
	if c.OutputDir == "" {
		c.OutputDir = "data/output"
	}
	if c.DBPath == "" {
		c.DBPath = "db/docgen.db"
	}
	if c.DefaultProvider == "" {
		c.DefaultProvider = provider.OpenAI
	}
	if c.DefaultModel == "" {
		c.DefaultModel = "gpt-4o-mini"
	}
	if c.DefaultMaxTokens == 0 {
		c.DefaultMaxTokens = 4000
	}
	if c.DefaultTemperature == 0 {
		c.DefaultTemperature = 0.3
	}
	if c.AITimeout == 0 {
		c.AITimeout = 120 * time.Second
	}
}
