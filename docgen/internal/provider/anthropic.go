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

// anthropicVersion pins the messages API revision.
const anthropicVersion = "2023-06-01"

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage *struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generateAnthropic(ctx context.Context, req Request) (*Result, error) {
	if c.cfg.Keys.Anthropic == "" {
		return nil, fmt.Errorf("%w: anthropic", ErrNotConfigured)
	}

	body := anthropicRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		System:      systemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AnthropicBaseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("anthropic: new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.Keys.Anthropic)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: anthropic: read body: %v", ErrUnavailable, err)
	}

	var parsed anthropicResponse
	if jsonErr := json.Unmarshal(raw, &parsed); jsonErr != nil && resp.StatusCode == http.StatusOK {
		return nil, fmt.Errorf("%w: anthropic: decode: %v", ErrUnavailable, jsonErr)
	}

	if resp.StatusCode != http.StatusOK {
		message := ""
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		return nil, classifyStatus(Anthropic, resp.StatusCode, message)
	}

	var sb strings.Builder
	for _, block := range parsed.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("%w: anthropic: empty content", ErrUnavailable)
	}

	usage := Usage{}
	if parsed.Usage != nil && parsed.Usage.InputTokens+parsed.Usage.OutputTokens > 0 {
		usage.PromptTokens = parsed.Usage.InputTokens
		usage.CompletionTokens = parsed.Usage.OutputTokens
		usage.TotalTokens = parsed.Usage.InputTokens + parsed.Usage.OutputTokens
	} else {
		usage = estimateUsage(req.Model, req.Prompt, text)
	}

	return &Result{Text: text, Usage: usage}, nil
}
