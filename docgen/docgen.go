// Package docgen generates markdown documentation from raw content through
// templated AI prompts. Document types map an id to a prompt template;
// generation interpolates the request into the template, calls the selected
// AI provider, writes the markdown to the output directory and records the
// metadata in SQLite.
package docgen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazyhaar/scribe/docgen/internal/provider"
	"github.com/hazyhaar/scribe/docgen/internal/store"
	"github.com/hazyhaar/scribe/idgen"
)

// textGenerator is the slice of provider.Client the service uses. Tests
// substitute a fake.
type textGenerator interface {
	Generate(ctx context.Context, req provider.Request) (*provider.Result, error)
}

// Service is the documentation generator.
type Service struct {
	cfg      Config
	registry *Registry
	store    *store.Store
	ai       textGenerator
	logger   *slog.Logger
	newID    idgen.Generator
}

// Option adjusts Service construction.
type Option func(*Service)

// WithIDGenerator overrides document id generation.
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *Service) { s.newID = g }
}

// withGenerator swaps the AI client; tests only.
func withGenerator(g textGenerator) Option {
	return func(s *Service) { s.ai = g }
}

// New opens the store, loads the type registry and wires the AI client.
func New(ctx context.Context, cfg Config, logger *slog.Logger, opts ...Option) (*Service, error) {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("docgen: open store: %w", err)
	}

	reg, err := NewRegistry(ctx, st)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("docgen: load registry: %w", err)
	}
	if cfg.TemplatesDir != "" {
		if err := reg.LoadDir(cfg.TemplatesDir); err != nil {
			st.Close()
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		st.Close()
		return nil, fmt.Errorf("docgen: create output dir: %w", err)
	}

	s := &Service{
		cfg:      cfg,
		registry: reg,
		store:    st,
		logger:   logger,
		newID:    idgen.Prefixed("doc_", idgen.UUIDv7()),
		ai: provider.New(provider.Config{
			Keys: provider.Keys{
				OpenAI:     cfg.OpenAIKey,
				Anthropic:  cfg.AnthropicKey,
				OpenRouter: cfg.OpenRouterKey,
			},
			Timeout: cfg.AITimeout,
			Logger:  logger,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the store.
func (s *Service) Close() error {
	return s.store.Close()
}

// ListTypes returns every registered document type.
func (s *Service) ListTypes() []DocumentType {
	return s.registry.List()
}

// GetTemplate returns one document type with its full template.
func (s *Service) GetTemplate(id string) (DocumentType, error) {
	return s.registry.Get(id)
}

// AddType registers a custom document type. The id may shadow a built-in.
func (s *Service) AddType(ctx context.Context, t DocumentType) error {
	if err := s.registry.Add(ctx, t); err != nil {
		return err
	}
	s.logger.Info("custom type registered", "id", t.ID)
	return nil
}

// GenerateDocument runs the full pipeline: resolve the type, build the
// prompt, call the AI provider, write the markdown file and persist the
// metadata. Nothing is persisted when any step fails.
func (s *Service) GenerateDocument(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	s.applyDefaults(req)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	docType, err := s.registry.Get(req.DocType)
	if err != nil {
		return nil, err
	}

	res, err := s.ai.Generate(ctx, provider.Request{
		Provider:    req.Provider,
		Model:       req.Model,
		Prompt:      interpolate(docType.Template, req),
		MaxTokens:   req.MaxTokens,
		Temperature: *req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	id := s.newID()
	filename := fmt.Sprintf("%s_%s_%s.md", id, req.DocType, slugify(req.Title))
	path := filepath.Join(s.cfg.OutputDir, filename)
	if err := os.WriteFile(path, []byte(res.Text), 0o644); err != nil {
		return nil, fmt.Errorf("docgen: write document: %w", err)
	}

	doc := &Document{
		ID:               id,
		DocType:          req.DocType,
		Title:            req.Title,
		Filename:         filename,
		Provider:         req.Provider,
		Model:            req.Model,
		Context:          req.Context,
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		TotalTokens:      res.Usage.TotalTokens,
		EstimatedUsage:   res.Usage.Estimated,
		CreatedAt:        time.Now().Unix(),
	}
	if err := s.store.InsertDocument(ctx, toStoreDocument(doc)); err != nil {
		os.Remove(path)
		return nil, err
	}

	s.logger.Info("document generated",
		"id", id, "doc_type", req.DocType, "provider", req.Provider,
		"model", req.Model, "total_tokens", doc.TotalTokens)

	return &GenerateResult{ID: id, Filename: filename, Markdown: res.Text, Metadata: doc}, nil
}

// TransformText runs the given prompt over arbitrary text: a {content}
// placeholder in the prompt is replaced by the text, otherwise the text is
// appended after the prompt. The result is returned directly, never persisted.
func (s *Service) TransformText(ctx context.Context, req *TransformRequest) (*TransformResult, error) {
	req.Provider, req.Model, req.MaxTokens, req.Temperature =
		s.tuningDefaults(req.Provider, req.Model, req.MaxTokens, req.Temperature)
	if err := validateTransform(req); err != nil {
		return nil, err
	}

	prompt := req.Prompt
	if strings.Contains(prompt, "{content}") {
		prompt = strings.ReplaceAll(prompt, "{content}", req.Text)
	} else {
		prompt = prompt + "\n\n" + req.Text
	}

	res, err := s.ai.Generate(ctx, provider.Request{
		Provider:    req.Provider,
		Model:       req.Model,
		Prompt:      prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: *req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("text transformed",
		"provider", req.Provider, "model", req.Model, "total_tokens", res.Usage.TotalTokens)

	return &TransformResult{
		Text:             res.Text,
		PromptTokens:     res.Usage.PromptTokens,
		CompletionTokens: res.Usage.CompletionTokens,
		TotalTokens:      res.Usage.TotalTokens,
		EstimatedUsage:   res.Usage.Estimated,
	}, nil
}

// ListDocuments returns generated-document metadata, newest first. A
// non-empty docType filters by type.
func (s *Service) ListDocuments(ctx context.Context, docType string) ([]*Document, error) {
	rows, err := s.store.ListDocuments(ctx, docType)
	if err != nil {
		return nil, err
	}
	out := make([]*Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromStoreDocument(row))
	}
	return out, nil
}

// GetDocument returns one document's metadata and its markdown body.
func (s *Service) GetDocument(ctx context.Context, id string) (*DocumentContent, error) {
	row, err := s.store.GetDocument(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	body, err := os.ReadFile(filepath.Join(s.cfg.OutputDir, row.Filename))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s (file missing)", ErrDocumentNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("docgen: read document %s: %w", id, err)
	}

	return &DocumentContent{Metadata: fromStoreDocument(row), Content: string(body)}, nil
}

func (s *Service) applyDefaults(req *GenerateRequest) {
	req.Provider, req.Model, req.MaxTokens, req.Temperature =
		s.tuningDefaults(req.Provider, req.Model, req.MaxTokens, req.Temperature)
}

// tuningDefaults fills the per-request AI settings from the service config.
// A nil temperature means unset; an explicit 0 is preserved.
func (s *Service) tuningDefaults(prov, model string, maxTokens int, temp *float64) (string, string, int, *float64) {
	if prov == "" {
		prov = s.cfg.DefaultProvider
	}
	if model == "" {
		model = s.cfg.DefaultModel
	}
	if maxTokens == 0 {
		maxTokens = s.cfg.DefaultMaxTokens
	}
	if temp == nil {
		t := s.cfg.DefaultTemperature
		temp = &t
	}
	return prov, model, maxTokens, temp
}

func toStoreDocument(d *Document) *store.Document {
	return &store.Document{
		ID:               d.ID,
		DocType:          d.DocType,
		Title:            d.Title,
		Filename:         d.Filename,
		Provider:         d.Provider,
		Model:            d.Model,
		Context:          d.Context,
		PromptTokens:     d.PromptTokens,
		CompletionTokens: d.CompletionTokens,
		TotalTokens:      d.TotalTokens,
		EstimatedUsage:   d.EstimatedUsage,
		CreatedAt:        d.CreatedAt,
	}
}

func fromStoreDocument(d *store.Document) *Document {
	return &Document{
		ID:               d.ID,
		DocType:          d.DocType,
		Title:            d.Title,
		Filename:         d.Filename,
		Provider:         d.Provider,
		Model:            d.Model,
		Context:          d.Context,
		PromptTokens:     d.PromptTokens,
		CompletionTokens: d.CompletionTokens,
		TotalTokens:      d.TotalTokens,
		EstimatedUsage:   d.EstimatedUsage,
		CreatedAt:        d.CreatedAt,
	}
}

// slugify turns a title into a filename-safe fragment: spaces become
// underscores, anything outside [a-zA-Z0-9_-] is dropped, length capped.
func slugify(title string) string {
	const maxSlug = 60
	var b strings.Builder
	for _, r := range title {
		switch {
		case r == ' ' || r == '\t':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
		if b.Len() >= maxSlug {
			break
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		return "untitled"
	}
	return slug
}
