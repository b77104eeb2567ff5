package linkboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eringen/linkboard/manifest"
)

// CardStore wraps a SQLite database holding the local manifest: one row per
// card, keyed by page and position so list order survives round-trips.
type CardStore struct {
	db *sql.DB
}

// NewCardStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewCardStore(path string) (*CardStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL allows the manifest endpoint to keep serving while an import
	// rewrites pages; the busy timeout makes writers wait instead of
	// returning SQLITE_BUSY immediately.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &CardStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *CardStore) Close() error {
	return s.db.Close()
}

func (s *CardStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS cards (
    page_key TEXT NOT NULL,
    position INTEGER NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (page_key, position)
);
`)
	return err
}

// Manifest assembles the full manifest document from the store. Page keys
// with no rows simply do not appear; an entirely empty store yields an
// empty (non-nil) manifest.
func (s *CardStore) Manifest() (manifest.Manifest, error) {
	rows, err := s.db.Query(`SELECT page_key, category, title, url FROM cards ORDER BY page_key, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := manifest.Manifest{}
	for rows.Next() {
		var key string
		var c manifest.Card
		if err := rows.Scan(&key, &c.Category, &c.Title, &c.URL); err != nil {
			return nil, err
		}
		m[key] = append(m[key], c)
	}
	return m, rows.Err()
}

// ListCards returns the stored cards for one page-key in position order,
// without default-filling. A key with no rows yields nil.
func (s *CardStore) ListCards(key string) ([]manifest.Card, error) {
	rows, err := s.db.Query(`SELECT category, title, url FROM cards WHERE page_key = ? ORDER BY position`, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []manifest.Card
	for rows.Next() {
		var c manifest.Card
		if err := rows.Scan(&c.Category, &c.Title, &c.URL); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// ReplacePage atomically swaps the card list for a page-key. Rows are the
// only storage, so replacing with an empty list removes the key entirely.
func (s *CardStore) ReplacePage(key string, cards []manifest.Card) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cards WHERE page_key = ?`, key); err != nil {
		return err
	}
	for i, c := range cards {
		if _, err := tx.Exec(`INSERT INTO cards (page_key, position, category, title, url) VALUES (?, ?, ?, ?, ?)`,
			key, i, c.Category, c.Title, c.URL); err != nil {
			return fmt.Errorf("insert card %d for %q: %w", i, key, err)
		}
	}
	return tx.Commit()
}

// DeletePage removes every card under a page-key.
func (s *CardStore) DeletePage(key string) error {
	_, err := s.db.Exec(`DELETE FROM cards WHERE page_key = ?`, key)
	return err
}

// PageKeys returns the distinct page-keys present in the store, sorted.
func (s *CardStore) PageKeys() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT page_key FROM cards ORDER BY page_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
