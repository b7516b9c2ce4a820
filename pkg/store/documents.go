package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// PopulateDocuments inserts all bundles in one transaction, so a failure
// partway through leaves the store unchanged. Constraint violations (for
// example a duplicate provision ref surviving deduplication) abort the
// batch; they indicate a pipeline invariant violation.
func (s *Store) PopulateDocuments(ctx context.Context, bundles []DocumentBundle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	documentStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (id, type, title, title_en, status, issued_date, url, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer documentStmt.Close()

	provisionStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO provisions (document_id, provision_ref, section, chapter, title, content, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer provisionStmt.Close()

	definitionStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO definitions (document_id, term, definition, provision_ref)
		 VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer definitionStmt.Close()

	for _, bundle := range bundles {
		doc := bundle.Document
		if _, err := documentStmt.ExecContext(ctx,
			doc.ID, doc.Type, doc.Title, nullable(doc.TitleEN), doc.Status,
			nullable(doc.IssuedDate), nullable(doc.URL), nullable(doc.Description)); err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
		for _, provision := range bundle.Provisions {
			if _, err := provisionStmt.ExecContext(ctx,
				doc.ID, provision.Ref, nullable(provision.Section), nullable(provision.Chapter),
				nullable(provision.Title), provision.Content, nullable(provision.Metadata)); err != nil {
				return fmt.Errorf("insert provision %s/%s: %w", doc.ID, provision.Ref, err)
			}
		}
		for _, definition := range bundle.Definitions {
			if _, err := definitionStmt.ExecContext(ctx,
				doc.ID, definition.Term, definition.Definition, nullable(definition.ProvisionRef)); err != nil {
				return fmt.Errorf("insert definition %s/%s: %w", doc.ID, definition.Term, err)
			}
		}
	}

	return tx.Commit()
}

// GetDocument returns one document by id, or nil when absent.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, type, title, COALESCE(title_en, ''), status,
		        COALESCE(issued_date, ''), COALESCE(url, ''), COALESCE(description, '')
		 FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

// GetDocumentByURL returns the document with the given canonical source
// URL, or nil. Used for remote-diff matching.
func (s *Store) GetDocumentByURL(ctx context.Context, url string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, type, title, COALESCE(title_en, ''), status,
		        COALESCE(issued_date, ''), COALESCE(url, ''), COALESCE(description, '')
		 FROM documents WHERE url = ?`, url)
	return scanDocument(row)
}

// ListDocuments returns documents ordered by issue date descending.
func (s *Store) ListDocuments(ctx context.Context, limit int, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, COALESCE(title_en, ''), status,
		        COALESCE(issued_date, ''), COALESCE(url, ''), COALESCE(description, '')
		 FROM documents ORDER BY issued_date DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// FindDocumentsByTitle returns documents whose title contains the given
// text, case-insensitively.
func (s *Store) FindDocumentsByTitle(ctx context.Context, title string) ([]Document, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(title)) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, COALESCE(title_en, ''), status,
		        COALESCE(issued_date, ''), COALESCE(url, ''), COALESCE(description, '')
		 FROM documents WHERE title LIKE ? ESCAPE '\' COLLATE NOCASE ORDER BY length(title), id`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// FindDocumentsByYear returns documents whose issued date starts with the
// year or whose title mentions it.
func (s *Store) FindDocumentsByYear(ctx context.Context, year int) ([]Document, error) {
	yearText := fmt.Sprintf("%d", year)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, title, COALESCE(title_en, ''), status,
		        COALESCE(issued_date, ''), COALESCE(url, ''), COALESCE(description, '')
		 FROM documents
		 WHERE issued_date LIKE ? OR title LIKE ?
		 ORDER BY issued_date, id`, yearText+"%", "%"+yearText+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// FindDocumentByProvision returns one document from the given year that
// stores a provision whose ref or section matches a candidate, or nil.
func (s *Store) FindDocumentByProvision(ctx context.Context, year int, candidates []string) (*Document, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(candidates)), ",")
	query := fmt.Sprintf(
		`SELECT d.id, d.type, d.title, COALESCE(d.title_en, ''), d.status,
		        COALESCE(d.issued_date, ''), COALESCE(d.url, ''), COALESCE(d.description, '')
		 FROM documents d
		 JOIN provisions p ON p.document_id = d.id
		 WHERE (d.issued_date LIKE ? OR d.title LIKE ?)
		   AND (lower(p.provision_ref) IN (%s) OR lower(COALESCE(p.section, '')) IN (%s))
		 ORDER BY d.issued_date, d.id LIMIT 1`, placeholders, placeholders)

	yearText := fmt.Sprintf("%d", year)
	args := []any{yearText + "%", "%" + yearText + "%"}
	for _, candidate := range candidates {
		args = append(args, strings.ToLower(candidate))
	}
	for _, candidate := range candidates {
		args = append(args, strings.ToLower(candidate))
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	return scanDocument(row)
}

// CountDocuments returns the number of stored documents.
func (s *Store) CountDocuments(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocumentInto(scanner rowScanner) (*Document, error) {
	var doc Document
	err := scanner.Scan(&doc.ID, &doc.Type, &doc.Title, &doc.TitleEN, &doc.Status,
		&doc.IssuedDate, &doc.URL, &doc.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func scanDocument(row *sql.Row) (*Document, error) {
	return scanDocumentInto(row)
}

func collectDocuments(rows *sql.Rows) ([]Document, error) {
	var documents []Document
	for rows.Next() {
		doc, err := scanDocumentInto(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, *doc)
	}
	return documents, rows.Err()
}

// nullable maps "" to NULL so optional columns stay NULL rather than
// empty strings.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// escapeLike escapes LIKE metacharacters in user input.
func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `%`, `\%`)
	value = strings.ReplaceAll(value, `_`, `\_`)
	return value
}
