package store

import (
	"context"
	"database/sql"
	"strings"
)

// GetProvision returns one provision by document and normalized ref,
// falling back to a section-label match. Nil when absent.
func (s *Store) GetProvision(ctx context.Context, documentID string, ref string) (*Provision, error) {
	lowered := strings.ToLower(strings.TrimSpace(ref))
	row := s.db.QueryRowContext(ctx,
		`SELECT document_id, provision_ref, COALESCE(section, ''), COALESCE(chapter, ''),
		        COALESCE(title, ''), content, COALESCE(metadata, '')
		 FROM provisions
		 WHERE document_id = ?
		   AND (lower(provision_ref) = ? OR lower(COALESCE(section, '')) = ?)
		 LIMIT 1`, documentID, lowered, lowered)

	var provision Provision
	err := row.Scan(&provision.DocumentID, &provision.Ref, &provision.Section,
		&provision.Chapter, &provision.Title, &provision.Content, &provision.Metadata)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &provision, nil
}

// ListProvisions returns all provisions of a document in insertion order.
func (s *Store) ListProvisions(ctx context.Context, documentID string) ([]Provision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, provision_ref, COALESCE(section, ''), COALESCE(chapter, ''),
		        COALESCE(title, ''), content, COALESCE(metadata, '')
		 FROM provisions WHERE document_id = ? ORDER BY id`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var provisions []Provision
	for rows.Next() {
		var provision Provision
		if err := rows.Scan(&provision.DocumentID, &provision.Ref, &provision.Section,
			&provision.Chapter, &provision.Title, &provision.Content, &provision.Metadata); err != nil {
			return nil, err
		}
		provisions = append(provisions, provision)
	}
	return provisions, rows.Err()
}

// ProvisionKeys returns the ref/section pairs of a document, the minimal
// view the citation validator needs.
func (s *Store) ProvisionKeys(ctx context.Context, documentID string) ([][2]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT provision_ref, COALESCE(section, '') FROM provisions WHERE document_id = ?`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys [][2]string
	for rows.Next() {
		var key [2]string
		if err := rows.Scan(&key[0], &key[1]); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// CountProvisions returns the number of stored provisions.
func (s *Store) CountProvisions(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM provisions`).Scan(&count)
	return count, err
}

// ListDefinitions returns the definitions of a document ordered by term.
func (s *Store) ListDefinitions(ctx context.Context, documentID string) ([]Definition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, term, definition, COALESCE(provision_ref, '')
		 FROM definitions WHERE document_id = ? ORDER BY term`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var definitions []Definition
	for rows.Next() {
		var definition Definition
		if err := rows.Scan(&definition.DocumentID, &definition.Term,
			&definition.Definition, &definition.ProvisionRef); err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
	}
	return definitions, rows.Err()
}
