// Package provider implements the outbound AI clients for docgen.
//
// One synchronous HTTP call per generation: no retries, no streaming, a single
// bounded timeout. Vendor wire formats are implemented directly (OpenAI chat
// completions, Anthropic messages; OpenRouter speaks the OpenAI format) and
// vendor failures are mapped to the uniform error set in errors.go.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Known provider names accepted in requests.
const (
	OpenAI     = "openai"
	Anthropic  = "anthropic"
	OpenRouter = "openrouter"
)

// systemPrompt is sent with every generation regardless of provider.
const systemPrompt = "You are an expert technical writer who creates clear, comprehensive documentation. Always respond with well-structured markdown."

// Request is one text-generation call.
type Request struct {
	Provider    string
	Model       string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Usage is token accounting for one call. Estimated is true when the vendor
// response carried no usage block and the counts were computed locally.
type Usage struct {
	PromptTokens     int  `json:"prompt_tokens"`
	CompletionTokens int  `json:"completion_tokens"`
	TotalTokens      int  `json:"total_tokens"`
	Estimated        bool `json:"estimated,omitempty"`
}

// Result is the generated text plus usage.
type Result struct {
	Text  string
	Usage Usage
}

// Keys holds per-provider API keys; empty means not configured.
type Keys struct {
	OpenAI     string
	Anthropic  string
	OpenRouter string
}

// Config configures the Client. Base URLs default to the vendor endpoints and
// exist so tests can point at an httptest server.
type Config struct {
	Keys    Keys
	Timeout time.Duration
	Logger  *slog.Logger

	OpenAIBaseURL     string
	AnthropicBaseURL  string
	OpenRouterBaseURL string
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.OpenAIBaseURL == "" {
		c.OpenAIBaseURL = "https://api.openai.com/v1"
	}
	if c.AnthropicBaseURL == "" {
		c.AnthropicBaseURL = "https://api.anthropic.com/v1"
	}
	if c.OpenRouterBaseURL == "" {
		c.OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	}
}

// Client dispatches generation requests to the selected vendor.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// New creates a Client.
func New(cfg Config) *Client {
	cfg.defaults()
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: cfg.Logger,
	}
}

// Generate runs one completion against the requested provider.
func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	var (
		res *Result
		err error
	)

	switch strings.ToLower(req.Provider) {
	case OpenAI:
		res, err = c.generateOpenAI(ctx, req)
	case Anthropic:
		res, err = c.generateAnthropic(ctx, req)
	case OpenRouter:
		res, err = c.generateOpenRouter(ctx, req)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedProvider, req.Provider)
	}

	if err != nil {
		c.logger.Error("generation failed",
			"provider", req.Provider, "model", req.Model,
			"elapsed", time.Since(start), "error", err)
		return nil, err
	}

	c.logger.Info("generation complete",
		"provider", req.Provider, "model", req.Model,
		"elapsed", time.Since(start), "total_tokens", res.Usage.TotalTokens)
	return res, nil
}
