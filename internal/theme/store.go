package theme

import (
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const preferenceKey = "surtigo-theme"

// SQLiteStore persists preferences in a small key-value table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenStore opens (and initializes if needed) the preference database.
func OpenStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating preferences table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load returns the saved theme mode, or "" when none is saved.
func (s *SQLiteStore) Load() (Mode, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", preferenceKey).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("error loading preference: %w", err)
	}
	return Mode(value), nil
}

// Save persists the theme mode.
func (s *SQLiteStore) Save(mode Mode) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO preferences (key, value) VALUES (?, ?)", preferenceKey, string(mode))
	if err != nil {
		return fmt.Errorf("error saving preference: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
