package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes bounds vendor response bodies.
const maxResponseBytes = 10 * 1024 * 1024

// OpenAI chat-completions wire format. OpenRouter uses the same shapes.

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

func (c *Client) generateOpenAI(ctx context.Context, req Request) (*Result, error) {
	if c.cfg.Keys.OpenAI == "" {
		return nil, fmt.Errorf("%w: openai", ErrNotConfigured)
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.Keys.OpenAI,
	}
	return c.chatCompletion(ctx, OpenAI, c.cfg.OpenAIBaseURL, headers, req)
}

// chatCompletion runs one OpenAI-format chat completion call. Shared by the
// openai and openrouter providers.
func (c *Client) chatCompletion(ctx context.Context, provider, baseURL string, headers map[string]string, req Request) (*Result, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal request: %w", provider, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", provider, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrUnavailable, provider, err)
	}

	var parsed chatResponse
	// The error shape is embedded in the same body; decode before status
	// handling so the vendor message reaches the taxonomy.
	if jsonErr := json.Unmarshal(raw, &parsed); jsonErr != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("%w: %s: decode: %v", ErrUnavailable, provider, jsonErr)
	}

	if resp.StatusCode != http.StatusOK {
		message := ""
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return nil, classifyStatus(provider, resp.StatusCode, message)
	}

	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: %s: empty choices", ErrUnavailable, provider)
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	usage := Usage{}
	if parsed.Usage != nil && parsed.Usage.TotalTokens > 0 {
		usage.PromptTokens = parsed.Usage.PromptTokens
		usage.CompletionTokens = parsed.Usage.CompletionTokens
		usage.TotalTokens = parsed.Usage.TotalTokens
	} else {
		usage = estimateUsage(req.Model, req.Prompt, text)
	}

	return &Result{Text: text, Usage: usage}, nil
}
