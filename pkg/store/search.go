package store

import (
	"context"
	"strings"
)

// SearchProvisions runs a ranked full-text query over provision content
// and titles. Results are ordered best-first by bm25 rank; snippets mark
// matched terms with [ and ].
func (s *Store) SearchProvisions(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	match := ftsMatchQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.document_id, d.title, p.provision_ref, COALESCE(p.title, ''),
		        snippet(provisions_fts, 0, '[', ']', '…', 12),
		        bm25(provisions_fts)
		 FROM provisions_fts
		 JOIN provisions p ON p.id = provisions_fts.rowid
		 JOIN documents d ON d.id = p.document_id
		 WHERE provisions_fts MATCH ?
		 ORDER BY bm25(provisions_fts)
		 LIMIT ?`, match, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var result SearchResult
		if err := rows.Scan(&result.DocumentID, &result.DocumentTitle, &result.ProvisionRef,
			&result.Title, &result.Snippet, &result.Rank); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// SearchDefinitions runs a ranked full-text query over terms and glosses.
func (s *Store) SearchDefinitions(ctx context.Context, query string, limit int) ([]Definition, error) {
	if limit <= 0 {
		limit = 20
	}
	match := ftsMatchQuery(query)
	if match == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT def.document_id, def.term, def.definition, COALESCE(def.provision_ref, '')
		 FROM definitions_fts
		 JOIN definitions def ON def.id = definitions_fts.rowid
		 WHERE definitions_fts MATCH ?
		 ORDER BY bm25(definitions_fts)
		 LIMIT ?`, match, limit)
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

// ftsMatchQuery turns free user input into a safe FTS5 match expression:
// each token is double-quoted so query syntax characters are inert, and
// tokens are ANDed.
func ftsMatchQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.ReplaceAll(field, `"`, "")
		if field == "" {
			continue
		}
		quoted = append(quoted, `"`+field+`"`)
	}
	return strings.Join(quoted, " AND ")
}
