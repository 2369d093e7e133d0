package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testRequest(p string) Request {
	return Request{
		Provider:    p,
		Model:       "gpt-4o-mini",
		Prompt:      "Write about turnips.",
		MaxTokens:   100,
		Temperature: 0.3,
	}
}

func openAISuccess(t *testing.T, text string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages: %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": text}},
			},
			"usage": map[string]int{"prompt_tokens": 12, "completion_tokens": 34, "total_tokens": 46},
		})
	}
}

func TestGenerate_OpenAI(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		openAISuccess(t, "# Turnips\n\nA root vegetable.")(w, r)
	}))
	defer srv.Close()

	c := New(Config{Keys: Keys{OpenAI: "sk-test"}, OpenAIBaseURL: srv.URL})
	res, err := c.Generate(context.Background(), testRequest(OpenAI))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header: got %q", gotAuth)
	}
	if res.Text != "# Turnips\n\nA root vegetable." {
		t.Errorf("text: got %q", res.Text)
	}
	if res.Usage.TotalTokens != 46 || res.Usage.Estimated {
		t.Errorf("usage: %+v", res.Usage)
	}
}

func TestGenerate_Anthropic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-ant-test" {
			t.Errorf("x-api-key: got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("anthropic-version header missing")
		}
		var req anthropicRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.System == "" {
			t.Error("system prompt missing")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "Generated doc."}},
			"usage":   map[string]int{"input_tokens": 7, "output_tokens": 3},
		})
	}))
	defer srv.Close()

	c := New(Config{Keys: Keys{Anthropic: "sk-ant-test"}, AnthropicBaseURL: srv.URL})
	req := testRequest(Anthropic)
	req.Model = "claude-3-5-haiku-latest"
	res, err := c.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Text != "Generated doc." {
		t.Errorf("text: got %q", res.Text)
	}
	if res.Usage.PromptTokens != 7 || res.Usage.TotalTokens != 10 {
		t.Errorf("usage: %+v", res.Usage)
	}
}

func TestGenerate_OpenRouter_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("HTTP-Referer") == "" || r.Header.Get("X-Title") == "" {
			t.Error("openrouter attribution headers missing")
		}
		openAISuccess(t, "routed")(w, r)
	}))
	defer srv.Close()

	c := New(Config{Keys: Keys{OpenRouter: "sk-or-test"}, OpenRouterBaseURL: srv.URL})
	req := testRequest(OpenRouter)
	req.Model = "anthropic/claude-3.5-sonnet"
	res, err := c.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Text != "routed" {
		t.Errorf("text: got %q", res.Text)
	}
}

func TestGenerate_MissingKey(t *testing.T) {
	c := New(Config{})
	for _, p := range []string{OpenAI, Anthropic, OpenRouter} {
		_, err := c.Generate(context.Background(), testRequest(p))
		if !errors.Is(err, ErrNotConfigured) {
			t.Errorf("%s: got %v, want ErrNotConfigured", p, err)
		}
	}
}

func TestGenerate_UnsupportedProvider(t *testing.T) {
	c := New(Config{})
	_, err := c.Generate(context.Background(), testRequest("cohere"))
	if !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("got %v, want ErrUnsupportedProvider", err)
	}
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{401, `{"error":{"message":"bad key"}}`, ErrAuth},
		{403, `{"error":{"message":"forbidden"}}`, ErrAuth},
		{429, `{"error":{"message":"slow down"}}`, ErrRateLimited},
		{404, `{"error":{"message":"unknown model"}}`, ErrInvalidModel},
		{400, `{"error":{"message":"model gpt-nope does not exist"}}`, ErrInvalidModel},
		{500, `{"error":{"message":"boom"}}`, ErrUnavailable},
		{503, ``, ErrUnavailable},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(tt.body))
		}))
		c := New(Config{Keys: Keys{OpenAI: "sk-test"}, OpenAIBaseURL: srv.URL})
		_, err := c.Generate(context.Background(), testRequest(OpenAI))
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
		srv.Close()
	}
}

func TestGenerate_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	c := New(Config{Keys: Keys{OpenAI: "sk-test"}, OpenAIBaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testRequest(OpenAI))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := New(Config{Keys: Keys{OpenAI: "sk-test"}, OpenAIBaseURL: srv.URL})
	_, err := c.Generate(context.Background(), testRequest(OpenAI))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestApproxTokens(t *testing.T) {
	if got := approxTokens("abcdefgh"); got != 2 {
		t.Errorf("approxTokens(8 chars): got %d, want 2", got)
	}
	if got := approxTokens("ab"); got != 1 {
		t.Errorf("approxTokens(short): got %d, want 1", got)
	}
}
