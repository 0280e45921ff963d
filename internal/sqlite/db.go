package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	*sql.DB
}

// New opens a SQLite database at the given path.
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet.
func (db *DB) RunMigrations() error {
	migration := `
CREATE TABLE IF NOT EXISTS users (
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Activity catalog, one row per node. position preserves sibling
-- insertion order, which fixes lookup traversal order.
CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    user TEXT NOT NULL,
    parent_id TEXT,
    name TEXT NOT NULL,
    position INTEGER NOT NULL,
    FOREIGN KEY (user) REFERENCES users(name)
);
CREATE INDEX IF NOT EXISTS idx_user_activities ON activities(user);

-- Timeline entries, grouped by calendar day and ordered within it.
CREATE TABLE IF NOT EXISTS intervals (
    user TEXT NOT NULL,
    day TEXT NOT NULL,
    position INTEGER NOT NULL,
    activity_id TEXT NOT NULL,
    name TEXT NOT NULL,
    start_at TIMESTAMP NOT NULL,
    end_at TIMESTAMP,
    continuation INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user, day, position),
    FOREIGN KEY (user) REFERENCES users(name)
);
CREATE INDEX IF NOT EXISTS idx_user_intervals ON intervals(user, day);
`
	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
