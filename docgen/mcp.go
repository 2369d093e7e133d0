package docgen

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/scribe/kit"
)

// RegisterMCP registers all docgen tools on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	s.registerListTypes(srv)
	s.registerGenerate(srv)
	s.registerGetTemplate(srv)
	s.registerAddType(srv)
	s.registerTransformText(srv)
	s.registerListDocuments(srv)
	s.registerGetDocument(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func (s *Service) registerListTypes(srv *mcp.Server) {
	type req struct{}

	tool := &mcp.Tool{
		Name:        "list_document_types",
		Description: "List all available document types with their descriptions",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		return s.ListTypes(), nil
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: &req{}}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerGenerate(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "generate_documentation",
		Description: "Generate a markdown document of the given type from raw content",
		InputSchema: inputSchema(map[string]any{
			"content":     map[string]any{"type": "string", "description": "Source content to document (meeting notes, transcript, notes)"},
			"doc_type":    map[string]any{"type": "string", "description": "Document type id, e.g. sop, runbook, architecture"},
			"title":       map[string]any{"type": "string", "description": "Document title"},
			"context":     map[string]any{"type": "string", "description": "Optional extra context for the generator"},
			"ai_provider": map[string]any{"type": "string", "description": "AI provider: openai, anthropic, openrouter"},
			"model":       map[string]any{"type": "string", "description": "Model name override"},
			"max_tokens":  map[string]any{"type": "integer", "description": "Response token limit"},
			"temperature": map[string]any{"type": "number", "description": "Sampling temperature, 0 to 2"},
		}, []string{"content", "doc_type", "title"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		return s.GenerateDocument(ctx, r.(*GenerateRequest))
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p GenerateRequest
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerGetTemplate(srv *mcp.Server) {
	type req struct {
		DocType string `json:"doc_type"`
	}

	tool := &mcp.Tool{
		Name:        "get_document_template",
		Description: "Get the full prompt template for a document type",
		InputSchema: inputSchema(map[string]any{
			"doc_type": map[string]any{"type": "string", "description": "Document type id"},
		}, []string{"doc_type"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		return s.GetTemplate(r.(*req).DocType)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerAddType(srv *mcp.Server) {
	type req struct {
		ID          string `json:"doc_type"`
		Description string `json:"description"`
		Template    string `json:"template"`
	}

	tool := &mcp.Tool{
		Name:        "add_document_type",
		Description: "Register a custom document type with its prompt template",
		InputSchema: inputSchema(map[string]any{
			"doc_type":    map[string]any{"type": "string", "description": "New type id"},
			"description": map[string]any{"type": "string", "description": "Short description of the type"},
			"template":    map[string]any{"type": "string", "description": "Prompt template; may use {title}, {content}, {context}, {doc_type}"},
		}, []string{"doc_type", "description", "template"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		p := r.(*req)
		t := DocumentType{ID: p.ID, Description: p.Description, Template: p.Template}
		if err := s.AddType(ctx, t); err != nil {
			return nil, err
		}
		return t, nil
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerTransformText(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "transform_text",
		Description: "Transform arbitrary text using a provided prompt via the configured AI provider",
		InputSchema: inputSchema(map[string]any{
			"text":        map[string]any{"type": "string", "description": "The text to transform"},
			"prompt":      map[string]any{"type": "string", "description": "Prompt or template to apply to the text (may include {content})"},
			"ai_provider": map[string]any{"type": "string", "description": "AI provider: openai, anthropic, openrouter"},
			"model":       map[string]any{"type": "string", "description": "Model name override"},
			"max_tokens":  map[string]any{"type": "integer", "description": "Response token limit"},
			"temperature": map[string]any{"type": "number", "description": "Sampling temperature, 0 to 2"},
		}, []string{"text", "prompt"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		return s.TransformText(ctx, r.(*TransformRequest))
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p TransformRequest
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerListDocuments(srv *mcp.Server) {
	type req struct {
		DocType string `json:"doc_type"`
	}

	tool := &mcp.Tool{
		Name:        "list_generated_documents",
		Description: "List generated documents, newest first, optionally filtered by type",
		InputSchema: inputSchema(map[string]any{
			"doc_type": map[string]any{"type": "string", "description": "Optional document type filter"},
		}, nil),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		return s.ListDocuments(ctx, r.(*req).DocType)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if len(r.Params.Arguments) > 0 {
			if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
				return nil, err
			}
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func (s *Service) registerGetDocument(srv *mcp.Server) {
	type req struct {
		ID string `json:"document_id"`
	}

	tool := &mcp.Tool{
		Name:        "get_generated_document",
		Description: "Get a generated document's metadata and markdown content by id",
		InputSchema: inputSchema(map[string]any{
			"document_id": map[string]any{"type": "string", "description": "Document id"},
		}, []string{"document_id"}),
	}

	endpoint := func(ctx context.Context, r any) (any, error) {
		return s.GetDocument(ctx, r.(*req).ID)
	}

	decode := func(r *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var p req
		if err := json.Unmarshal(r.Params.Arguments, &p); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &p}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
