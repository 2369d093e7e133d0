package provider

import (
	"context"
	"fmt"
)

// OpenRouter attribution headers; the service shows up under this name in the
// OpenRouter dashboard.
const (
	openRouterReferer = "https://github.com/hazyhaar/scribe"
	openRouterTitle   = "scribe documentation generator"
)

// generateOpenRouter calls OpenRouter's OpenAI-compatible endpoint. Model
// names are namespaced (e.g. "anthropic/claude-3.5-sonnet",
// "openai/gpt-4o-mini") and passed through as given.
func (c *Client) generateOpenRouter(ctx context.Context, req Request) (*Result, error) {
	if c.cfg.Keys.OpenRouter == "" {
		return nil, fmt.Errorf("%w: openrouter", ErrNotConfigured)
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.Keys.OpenRouter,
		"HTTP-Referer":  openRouterReferer,
		"X-Title":       openRouterTitle,
	}
	return c.chatCompletion(ctx, OpenRouter, c.cfg.OpenRouterBaseURL, headers, req)
}
