// Package tools exposes the query surface of the corpus as a fixed table
// of named tools shared by the HTTP and stdio transports.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/coolbeans/luxlex/pkg/cite"
	"github.com/coolbeans/luxlex/pkg/store"
)

// Handler executes one tool call. Params is the raw JSON argument object.
type Handler func(ctx context.Context, params json.RawMessage) (any, error)

// Tool is one entry of the dispatch table.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	handler     Handler
}

// Registry is the fixed dispatch table. It is populated once at startup
// and only read afterwards, so it is safe for concurrent use.
type Registry struct {
	db     *store.Store
	logger *zap.Logger
	tools  map[string]Tool
}

// ErrUnknownTool is returned for a call naming no registered tool.
type ErrUnknownTool struct{ Name string }

func (e ErrUnknownTool) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// NewRegistry builds the dispatch table over a store.
func NewRegistry(db *store.Store, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := &Registry{
		db:     db,
		logger: logger,
		tools:  make(map[string]Tool),
	}

	registry.register("search_legislation",
		"Full-text search over provision content", registry.handleSearch)
	registry.register("list_documents",
		"List stored legislative documents", registry.handleListDocuments)
	registry.register("get_document",
		"Fetch one document with its provisions", registry.handleGetDocument)
	registry.register("get_provision",
		"Fetch one provision by document and reference", registry.handleGetProvision)
	registry.register("get_definitions",
		"List or search defined legal terms", registry.handleGetDefinitions)
	registry.register("get_eu_references",
		"List EU cross-references for a document", registry.handleEUReferences)
	registry.register("parse_citation",
		"Parse a legal citation string into structured form", registry.handleParseCitation)
	registry.register("validate_citation",
		"Resolve a citation against the stored corpus", registry.handleValidateCitation)
	registry.register("format_citation",
		"Render a citation in full, short, or pinpoint style", registry.handleFormatCitation)

	return registry
}

func (r *Registry) register(name string, description string, handler Handler) {
	r.tools[name] = Tool{Name: name, Description: description, handler: handler}
}

// List returns the table in sorted order.
func (r *Registry) List() []Tool {
	list := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		list = append(list, tool)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// Call dispatches one tool invocation.
func (r *Registry) Call(ctx context.Context, name string, params json.RawMessage) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, ErrUnknownTool{Name: name}
	}
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	result, err := tool.handler(ctx, params)
	if err != nil {
		r.logger.Debug("tool call failed", zap.String("tool", name), zap.Error(err))
	}
	return result, err
}

func decodeParams[T any](params json.RawMessage) (T, error) {
	var decoded T
	if err := json.Unmarshal(params, &decoded); err != nil {
		var zero T
		return zero, fmt.Errorf("invalid parameters: %w", err)
	}
	return decoded, nil
}

func (r *Registry) handleSearch(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	results, err := r.db.SearchProvisions(ctx, args.Query, args.Limit)
	if err != nil {
		return nil, err
	}
	return map[string]any{"results": results, "count": len(results)}, nil
}

func (r *Registry) handleListDocuments(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
	}](params)
	if err != nil {
		return nil, err
	}
	documents, err := r.db.ListDocuments(ctx, args.Limit, args.Offset)
	if err != nil {
		return nil, err
	}
	return map[string]any{"documents": documents, "count": len(documents)}, nil
}

func (r *Registry) handleGetDocument(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		DocumentID string `json:"document_id"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.DocumentID == "" {
		return nil, fmt.Errorf("document_id is required")
	}
	document, err := r.db.GetDocument(ctx, args.DocumentID)
	if err != nil {
		return nil, err
	}
	if document == nil {
		return map[string]any{"found": false}, nil
	}
	provisions, err := r.db.ListProvisions(ctx, args.DocumentID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"found": true, "document": document, "provisions": provisions}, nil
}

func (r *Registry) handleGetProvision(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		DocumentID   string `json:"document_id"`
		ProvisionRef string `json:"provision_ref"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.DocumentID == "" || args.ProvisionRef == "" {
		return nil, fmt.Errorf("document_id and provision_ref are required")
	}
	provision, err := r.db.GetProvision(ctx, args.DocumentID, args.ProvisionRef)
	if err != nil {
		return nil, err
	}
	if provision == nil {
		return map[string]any{"found": false}, nil
	}
	return map[string]any{"found": true, "provision": provision}, nil
}

func (r *Registry) handleGetDefinitions(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		DocumentID string `json:"document_id"`
		Query      string `json:"query"`
		Limit      int    `json:"limit"`
	}](params)
	if err != nil {
		return nil, err
	}
	var definitions []store.Definition
	switch {
	case args.Query != "":
		definitions, err = r.db.SearchDefinitions(ctx, args.Query, args.Limit)
	case args.DocumentID != "":
		definitions, err = r.db.ListDefinitions(ctx, args.DocumentID)
	default:
		return nil, fmt.Errorf("document_id or query is required")
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"definitions": definitions, "count": len(definitions)}, nil
}

func (r *Registry) handleEUReferences(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		DocumentID string `json:"document_id"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.DocumentID == "" {
		return nil, fmt.Errorf("document_id is required")
	}
	references, err := r.db.ListEUReferences(ctx, args.DocumentID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"references": references, "count": len(references)}, nil
}

func (r *Registry) handleParseCitation(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		Citation string `json:"citation"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.Citation == "" {
		return nil, fmt.Errorf("citation is required")
	}
	return cite.Parse(args.Citation), nil
}

func (r *Registry) handleValidateCitation(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		Citation string `json:"citation"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.Citation == "" {
		return nil, fmt.Errorf("citation is required")
	}
	return cite.Validate(ctx, storeResolver{db: r.db}, args.Citation)
}

func (r *Registry) handleFormatCitation(ctx context.Context, params json.RawMessage) (any, error) {
	args, err := decodeParams[struct {
		Citation string `json:"citation"`
		Style    string `json:"style"`
	}](params)
	if err != nil {
		return nil, err
	}
	if args.Citation == "" {
		return nil, fmt.Errorf("citation is required")
	}
	parsed := cite.Parse(args.Citation)
	if !parsed.Valid {
		return nil, fmt.Errorf("cannot format: %s", parsed.Err)
	}
	return map[string]any{"formatted": cite.Format(parsed, args.Style)}, nil
}
