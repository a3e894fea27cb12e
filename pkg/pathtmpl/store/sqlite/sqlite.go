package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/pathtmpl/pkg/pathtmpl/internalerr"
	"github.com/cognicore/pathtmpl/pkg/pathtmpl/store"
)

// timeFormat has a fixed width so stored timestamps sort lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS observations (
	id TEXT PRIMARY KEY,
	raw_url TEXT NOT NULL,
	template TEXT NOT NULL,
	seen_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_observations_template ON observations(template);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Record inserts an observation
func (s *sqliteStore) Record(ctx context.Context, o store.Observation) error {
	if o.ID == "" || o.RawURL == "" {
		return fmt.Errorf("%w: observation requires id and raw url", internalerr.ErrInvalidInput)
	}

	const stmt = `INSERT INTO observations (id, raw_url, template, seen_at) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt, o.ID, o.RawURL, o.Template, o.SeenAt.UTC().Format(timeFormat))
	return err
}

// Observation returns one observation by ID
func (s *sqliteStore) Observation(ctx context.Context, id string) (store.Observation, error) {
	const query = `SELECT id, raw_url, template, seen_at FROM observations WHERE id = ?`

	var (
		o      store.Observation
		seenAt string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.RawURL, &o.Template, &seenAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Observation{}, fmt.Errorf("observation %s: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Observation{}, err
	}
	if o.SeenAt, err = time.Parse(timeFormat, seenAt); err != nil {
		return store.Observation{}, fmt.Errorf("observation %s: seen_at: %w", id, err)
	}
	return o, nil
}

// Templates aggregates observations per template
func (s *sqliteStore) Templates(ctx context.Context, limit int) ([]store.TemplateStat, error) {
	if limit <= 0 {
		limit = -1
	}

	const query = `
SELECT
	o.template,
	COUNT(*),
	MIN(o.seen_at),
	MAX(o.seen_at),
	(SELECT e.raw_url FROM observations e
	 WHERE e.template = o.template
	 ORDER BY e.seen_at, e.id LIMIT 1)
FROM observations o
GROUP BY o.template
ORDER BY COUNT(*) DESC, o.template ASC
LIMIT ?
`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []store.TemplateStat
	for rows.Next() {
		var (
			st          store.TemplateStat
			first, last string
		)
		if err := rows.Scan(&st.Template, &st.Count, &first, &last, &st.Example); err != nil {
			return nil, err
		}
		if st.FirstSeen, err = time.Parse(timeFormat, first); err != nil {
			return nil, err
		}
		if st.LastSeen, err = time.Parse(timeFormat, last); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
