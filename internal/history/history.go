// Package history records batch build reports in a local SQLite database for
// post-mortem inspection. Recording is best-effort and optional: without a
// configured database path no store is opened.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"modernc.org/sqlite"

	"github.com/assetforge/assetctl/internal/logging"
	"github.com/assetforge/assetctl/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS build_results (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id     TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	bundle     TEXT NOT NULL,
	target     TEXT NOT NULL,
	archive    TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	error      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS build_results_run ON build_results (run_id);
`

// Entry is one recorded build result.
type Entry struct {
	RunID     string
	CreatedAt time.Time
	Bundle    string
	Target    string
	Archive   string
	Ok        bool
	Err       string
}

type Store struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) the history database at path.
// Statements are traced through the given logger at debug level.
func Open(ctx context.Context, path string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.NewNopLogger()
	}

	db := sqldblogger.OpenDriver(path, &sqlite.Driver{}, zerologadapter.New(log.Zerolog()))
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("open history database %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize history database %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores every result of the report under the given run id.
func (s *Store) Record(ctx context.Context, runID string, rep *report.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, res := range rep.Results {
		ok := 0
		if res.Ok {
			ok = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO build_results (run_id, created_at, bundle, target, archive, ok, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, now, res.Bundle, res.Target, res.Archive, ok, res.Err); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent returns up to limit results, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, created_at, bundle, target, archive, ok, error FROM build_results ORDER BY id DESC LIMIT ?`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ok int
		if err := rows.Scan(&e.RunID, &e.CreatedAt, &e.Bundle, &e.Target, &e.Archive, &ok, &e.Err); err != nil {
			return nil, err
		}
		e.Ok = ok == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
