// Package store persists the normalized legislation corpus in SQLite:
// documents, provisions, definitions, EU documents and cross-references,
// plus an FTS5 full-text index kept consistent with the provision and
// definition tables by triggers.
//
// Build with -tags sqlite_fts5 so the FTS5 extension is compiled in.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database. All queries are parameterized; user
// input is never interpolated into SQL text.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and initializes the schema.
// Parent directories are created if they do not exist. Use ":memory:" for
// an ephemeral store.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != ":memory:" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL DEFAULT 'statute',
		title TEXT NOT NULL,
		title_en TEXT,
		status TEXT NOT NULL DEFAULT 'in_force',
		issued_date TEXT,
		url TEXT UNIQUE,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS provisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		provision_ref TEXT NOT NULL,
		section TEXT,
		chapter TEXT,
		title TEXT,
		content TEXT NOT NULL,
		metadata TEXT,
		UNIQUE(document_id, provision_ref)
	);
	CREATE INDEX IF NOT EXISTS idx_provisions_document ON provisions(document_id);

	CREATE TABLE IF NOT EXISTS definitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		term TEXT NOT NULL,
		definition TEXT NOT NULL,
		provision_ref TEXT,
		UNIQUE(document_id, term)
	);

	CREATE TABLE IF NOT EXISTS eu_documents (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		year INTEGER NOT NULL CHECK (year BETWEEN 1957 AND 2100),
		number INTEGER NOT NULL CHECK (number > 0),
		community TEXT NOT NULL,
		short_name TEXT,
		title TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS eu_references (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id TEXT NOT NULL,
		source_kind TEXT NOT NULL DEFAULT 'document',
		eu_document_id TEXT NOT NULL REFERENCES eu_documents(id),
		eu_article TEXT NOT NULL DEFAULT '',
		reference_type TEXT NOT NULL,
		is_primary_implementation INTEGER NOT NULL DEFAULT 0,
		implementation_status TEXT,
		citation_text TEXT,
		UNIQUE(source_id, eu_document_id, eu_article)
	);
	CREATE INDEX IF NOT EXISTS idx_eu_references_source ON eu_references(source_id);

	CREATE TABLE IF NOT EXISTS build_metadata (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		documents INTEGER NOT NULL,
		provisions INTEGER NOT NULL,
		eu_references INTEGER NOT NULL
	);

	CREATE VIRTUAL TABLE IF NOT EXISTS provisions_fts USING fts5(
		content, title,
		content='provisions',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS provisions_fts_insert AFTER INSERT ON provisions BEGIN
		INSERT INTO provisions_fts(rowid, content, title)
		VALUES (new.id, new.content, new.title);
	END;
	CREATE TRIGGER IF NOT EXISTS provisions_fts_delete AFTER DELETE ON provisions BEGIN
		INSERT INTO provisions_fts(provisions_fts, rowid, content, title)
		VALUES ('delete', old.id, old.content, old.title);
	END;
	CREATE TRIGGER IF NOT EXISTS provisions_fts_update AFTER UPDATE ON provisions BEGIN
		INSERT INTO provisions_fts(provisions_fts, rowid, content, title)
		VALUES ('delete', old.id, old.content, old.title);
		INSERT INTO provisions_fts(rowid, content, title)
		VALUES (new.id, new.content, new.title);
	END;

	CREATE VIRTUAL TABLE IF NOT EXISTS definitions_fts USING fts5(
		term, definition,
		content='definitions',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS definitions_fts_insert AFTER INSERT ON definitions BEGIN
		INSERT INTO definitions_fts(rowid, term, definition)
		VALUES (new.id, new.term, new.definition);
	END;
	CREATE TRIGGER IF NOT EXISTS definitions_fts_delete AFTER DELETE ON definitions BEGIN
		INSERT INTO definitions_fts(definitions_fts, rowid, term, definition)
		VALUES ('delete', old.id, old.term, old.definition);
	END;
	CREATE TRIGGER IF NOT EXISTS definitions_fts_update AFTER UPDATE ON definitions BEGIN
		INSERT INTO definitions_fts(definitions_fts, rowid, term, definition)
		VALUES ('delete', old.id, old.term, old.definition);
		INSERT INTO definitions_fts(rowid, term, definition)
		VALUES (new.id, new.term, new.definition);
	END;
	`
	_, err := db.Exec(schema)
	return err
}
