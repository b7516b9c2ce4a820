package tools

import (
	"context"

	"github.com/coolbeans/luxlex/pkg/cite"
	"github.com/coolbeans/luxlex/pkg/store"
)

// storeResolver adapts the SQLite store to the citation validator's
// read-only view.
type storeResolver struct {
	db *store.Store
}

func (r storeResolver) DocumentsByTitle(ctx context.Context, title string) ([]cite.Document, error) {
	documents, err := r.db.FindDocumentsByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	return toCiteDocuments(documents), nil
}

func (r storeResolver) DocumentsByYear(ctx context.Context, year int) ([]cite.Document, error) {
	documents, err := r.db.FindDocumentsByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	return toCiteDocuments(documents), nil
}

func (r storeResolver) DocumentByProvision(ctx context.Context, year int, candidates []string) (*cite.Document, error) {
	document, err := r.db.FindDocumentByProvision(ctx, year, candidates)
	if err != nil || document == nil {
		return nil, err
	}
	converted := toCiteDocument(*document)
	return &converted, nil
}

func (r storeResolver) ProvisionKeys(ctx context.Context, documentID string) ([]cite.ProvisionKey, error) {
	keys, err := r.db.ProvisionKeys(ctx, documentID)
	if err != nil {
		return nil, err
	}
	converted := make([]cite.ProvisionKey, 0, len(keys))
	for _, key := range keys {
		converted = append(converted, cite.ProvisionKey{Ref: key[0], Section: key[1]})
	}
	return converted, nil
}

func toCiteDocument(document store.Document) cite.Document {
	return cite.Document{
		ID:         document.ID,
		Title:      document.Title,
		Status:     document.Status,
		IssuedDate: document.IssuedDate,
	}
}

func toCiteDocuments(documents []store.Document) []cite.Document {
	converted := make([]cite.Document, 0, len(documents))
	for _, document := range documents {
		converted = append(converted, toCiteDocument(document))
	}
	return converted
}
