package dictionary

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a persistent dictionary backed by SQLite. The ipa column
// is indexed so the pipeline's reverse lookup does not scan the table.
type SQLiteStore struct {
	db       *sql.DB
	language string
}

// OpenSQLiteStore opens (creating if necessary) a dictionary database and
// scopes lookups to one language
func OpenSQLiteStore(path, language string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		word     TEXT NOT NULL,
		language TEXT NOT NULL,
		ipa      TEXT NOT NULL,
		PRIMARY KEY (word, language)
	);
	CREATE INDEX IF NOT EXISTS idx_entries_ipa ON entries(ipa, language);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create dictionary schema: %w", err)
	}

	return &SQLiteStore{db: db, language: language}, nil
}

// Language returns the language this store resolves for
func (s *SQLiteStore) Language() string { return s.language }

// Import copies every canonical entry of an in-memory store into the
// database inside a single transaction
func (s *SQLiteStore) Import(store *Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO entries (word, language, ipa) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range store.Entries() {
		if _, err := stmt.Exec(entry.Word, entry.Language, entry.IPA); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to import entry %q: %w", entry.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	return nil
}

// Resolve returns the canonical IPA pronunciation for a word
func (s *SQLiteStore) Resolve(word string) (string, bool) {
	var ipa string
	err := s.db.QueryRow(
		`SELECT ipa FROM entries WHERE word = ? AND language = ?`,
		word, s.language).Scan(&ipa)
	if err != nil {
		return "", false
	}
	return ipa, true
}

// ReverseResolve returns a word whose canonical IPA matches exactly. Ties
// are broken alphabetically for determinism.
func (s *SQLiteStore) ReverseResolve(ipa string) (string, bool) {
	var word string
	err := s.db.QueryRow(
		`SELECT word FROM entries WHERE ipa = ? AND language = ? ORDER BY word LIMIT 1`,
		ipa, s.language).Scan(&word)
	if err != nil {
		return "", false
	}
	return word, true
}

// Count returns the number of entries stored for this language
func (s *SQLiteStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM entries WHERE language = ?`, s.language).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return n, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
