package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PopulateEUReferences inserts EU documents and their reference links in
// one transaction. Both inserts are insert-if-absent: re-extracting the
// same citation never creates duplicates.
func (s *Store) PopulateEUReferences(ctx context.Context, documents []EUDocument, references []EUReference) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	documentStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO eu_documents (id, type, year, number, community, short_name, title)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer documentStmt.Close()

	referenceStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO eu_references
		 (source_id, source_kind, eu_document_id, eu_article, reference_type,
		  is_primary_implementation, implementation_status, citation_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer referenceStmt.Close()

	for _, doc := range documents {
		if _, err := documentStmt.ExecContext(ctx,
			doc.ID, doc.Type, doc.Year, doc.Number, doc.Community,
			nullable(doc.ShortName), doc.Title); err != nil {
			return fmt.Errorf("insert eu document %s: %w", doc.ID, err)
		}
	}

	for _, ref := range references {
		if _, err := referenceStmt.ExecContext(ctx,
			ref.SourceID, ref.SourceKind, ref.EUDocumentID, ref.EUArticle,
			ref.ReferenceType, ref.IsPrimaryImplementation,
			nullable(ref.ImplementationStatus), nullable(ref.CitationText)); err != nil {
			return fmt.Errorf("insert eu reference %s -> %s: %w", ref.SourceID, ref.EUDocumentID, err)
		}
	}

	return tx.Commit()
}

// GetEUDocument returns one EU document by synthetic id, or nil.
func (s *Store) GetEUDocument(ctx context.Context, id string) (*EUDocument, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, type, year, number, community, COALESCE(short_name, ''), title
		 FROM eu_documents WHERE id = ?`, id)

	var doc EUDocument
	err := row.Scan(&doc.ID, &doc.Type, &doc.Year, &doc.Number,
		&doc.Community, &doc.ShortName, &doc.Title)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListEUReferences returns the EU references recorded for a source.
func (s *Store) ListEUReferences(ctx context.Context, sourceID string) ([]EUReference, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_id, source_kind, eu_document_id, eu_article, reference_type,
		        is_primary_implementation, COALESCE(implementation_status, ''),
		        COALESCE(citation_text, '')
		 FROM eu_references WHERE source_id = ? ORDER BY id`, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var references []EUReference
	for rows.Next() {
		var ref EUReference
		if err := rows.Scan(&ref.SourceID, &ref.SourceKind, &ref.EUDocumentID,
			&ref.EUArticle, &ref.ReferenceType, &ref.IsPrimaryImplementation,
			&ref.ImplementationStatus, &ref.CitationText); err != nil {
			return nil, err
		}
		references = append(references, ref)
	}
	return references, rows.Err()
}

// CountEUReferences returns the number of stored EU reference links.
func (s *Store) CountEUReferences(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM eu_references`).Scan(&count)
	return count, err
}

// RecordBuild writes one build_metadata row for a completed build.
func (s *Store) RecordBuild(ctx context.Context, record BuildRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO build_metadata (id, started_at, finished_at, documents, provisions, eu_references)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.StartedAt, record.FinishedAt,
		record.Documents, record.Provisions, record.EUReferences)
	return err
}

// LatestBuild returns the most recent build record, or nil when the store
// has never been built.
func (s *Store) LatestBuild(ctx context.Context) (*BuildRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, documents, provisions, eu_references
		 FROM build_metadata ORDER BY finished_at DESC LIMIT 1`)

	var record BuildRecord
	err := row.Scan(&record.ID, &record.StartedAt, &record.FinishedAt,
		&record.Documents, &record.Provisions, &record.EUReferences)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// FormatBuildTime renders timestamps for build_metadata rows.
func FormatBuildTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
