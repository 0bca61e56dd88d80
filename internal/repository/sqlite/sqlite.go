package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"crewmap/internal/repository"

	_ "modernc.org/sqlite"
)

var _ repository.Repository = (*Repository)(nil)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	memory := dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")

	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if !memory {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS alliances (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		bio TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sets (
		id TEXT PRIMARY KEY,
		primary_name TEXT NOT NULL,
		names TEXT,
		status TEXT NOT NULL DEFAULT 'ACTIVE',
		territory TEXT,
		colors TEXT,
		bio TEXT,
		alliance_id TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (alliance_id) REFERENCES alliances(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS members (
		id TEXT PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		nicknames TEXT,
		status TEXT NOT NULL DEFAULT 'UNKNOWN',
		affiliation TEXT NOT NULL DEFAULT 'UNKNOWN',
		set_id TEXT,
		alliance_id TEXT,
		bio TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (set_id) REFERENCES sets(id) ON DELETE SET NULL,
		FOREIGN KEY (alliance_id) REFERENCES alliances(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS set_allies (
		set_a_id TEXT NOT NULL,
		set_b_id TEXT NOT NULL,
		PRIMARY KEY (set_a_id, set_b_id),
		CHECK (set_a_id < set_b_id),
		FOREIGN KEY (set_a_id) REFERENCES sets(id) ON DELETE CASCADE,
		FOREIGN KEY (set_b_id) REFERENCES sets(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS set_enemies (
		set_a_id TEXT NOT NULL,
		set_b_id TEXT NOT NULL,
		PRIMARY KEY (set_a_id, set_b_id),
		CHECK (set_a_id < set_b_id),
		FOREIGN KEY (set_a_id) REFERENCES sets(id) ON DELETE CASCADE,
		FOREIGN KEY (set_b_id) REFERENCES sets(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sets_alliance ON sets(alliance_id);
	CREATE INDEX IF NOT EXISTS idx_members_set ON members(set_id);
	CREATE INDEX IF NOT EXISTS idx_members_alliance ON members(alliance_id);
	`

	_, err := r.db.ExecContext(context.Background(), schema)
	return err
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
