package docgen

// DocumentType is a named category of output document with its prompt template.
type DocumentType struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Template    string `json:"template"`
	Builtin     bool   `json:"builtin"`
}

// GenerateRequest carries one generation call. Provider, Model and MaxTokens
// fall back to the service defaults when empty or zero (a zero token budget is
// never valid). Temperature is a pointer so an explicit 0 is distinguishable
// from unset.
type GenerateRequest struct {
	Content     string   `json:"content"`
	DocType     string   `json:"doc_type"`
	Title       string   `json:"title"`
	Context     string   `json:"context,omitempty"`
	Provider    string   `json:"ai_provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// TransformRequest carries one free-form text transformation. The prompt may
// reference the text through a {content} placeholder; without one the text is
// appended after the prompt.
type TransformRequest struct {
	Text        string   `json:"text"`
	Prompt      string   `json:"prompt"`
	Provider    string   `json:"ai_provider,omitempty"`
	Model       string   `json:"model,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// TransformResult is the transformed text plus token accounting. Nothing is
// persisted for transformations.
type TransformResult struct {
	Text             string `json:"text"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	EstimatedUsage   bool   `json:"estimated_usage,omitempty"`
}

// Document is the metadata of one generated document. Immutable once written.
type Document struct {
	ID               string `json:"id"`
	DocType          string `json:"doc_type"`
	Title            string `json:"title"`
	Filename         string `json:"filename"`
	Provider         string `json:"ai_provider"`
	Model            string `json:"model"`
	Context          string `json:"context,omitempty"`
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	EstimatedUsage   bool   `json:"estimated_usage,omitempty"`
	CreatedAt        int64  `json:"created_at"`
}

// GenerateResult is returned by GenerateDocument: the new id, the markdown
// body, and the persisted metadata.
type GenerateResult struct {
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	Markdown string    `json:"markdown"`
	Metadata *Document `json:"metadata"`
}

// DocumentContent pairs stored metadata with the markdown body read back from
// disk.
type DocumentContent struct {
	Metadata *Document `json:"metadata"`
	Content  string    `json:"content"`
}
