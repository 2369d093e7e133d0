package store

// CustomType is a runtime-registered document type row.
type CustomType struct {
	ID          string
	Description string
	Template    string
	CreatedAt   int64
	UpdatedAt   int64
}

// Document is the metadata row for one generated document.
type Document struct {
	ID               string
	DocType          string
	Title            string
	Filename         string
	Provider         string
	Model            string
	Context          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedUsage   bool
	CreatedAt        int64
}
