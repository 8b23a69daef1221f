// Package sqlite exports an analysis report into a single SQLite
// database file, one run per export call.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/catalog-cli/internal/core/domain"
	"github.com/custodia-labs/catalog-cli/internal/core/ports/driven"
)

// Ensure Exporter implements the interface.
var _ driven.ReportExporter = (*Exporter)(nil)

// Exporter writes reports into a SQLite database. Runs accumulate:
// exporting into an existing database adds a new run row keyed by the
// report's run id.
type Exporter struct {
	path string
}

// New creates a SQLite exporter writing to the database file at path.
func New(path string) *Exporter {
	return &Exporter{path: path}
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	corpus_dir TEXT NOT NULL,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	stage TEXT NOT NULL,
	incomplete INTEGER NOT NULL,
	insufficient_data INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS files (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	path TEXT NOT NULL,
	status TEXT NOT NULL,
	fingerprint TEXT,
	diagnostic TEXT,
	PRIMARY KEY (run_id, path)
);
CREATE TABLE IF NOT EXISTS entries (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	entry_id TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	label TEXT NOT NULL,
	cluster INTEGER,
	PRIMARY KEY (run_id, entry_id)
);
CREATE TABLE IF NOT EXISTS entry_sources (
	run_id TEXT NOT NULL,
	entry_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	path TEXT NOT NULL,
	PRIMARY KEY (run_id, entry_id, position)
);
CREATE TABLE IF NOT EXISTS merges (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	merge_index INTEGER NOT NULL,
	cluster_a INTEGER NOT NULL,
	cluster_b INTEGER NOT NULL,
	distance REAL NOT NULL,
	size INTEGER NOT NULL,
	PRIMARY KEY (run_id, merge_index)
);
CREATE TABLE IF NOT EXISTS coordinates (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	entry_id TEXT NOT NULL,
	x REAL NOT NULL,
	y REAL NOT NULL,
	z REAL,
	PRIMARY KEY (run_id, entry_id)
);
`

// Export writes the report in a single transaction.
func (e *Exporter) Export(ctx context.Context, report *domain.AnalysisReport) error {
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", e.path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRun(ctx, tx, report); err != nil {
		return err
	}
	return tx.Commit()
}

// Path returns the database file path.
func (e *Exporter) Path() string {
	return e.path
}

func insertRun(ctx context.Context, tx *sql.Tx, report *domain.AnalysisReport) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, corpus_dir, started_at, finished_at, stage, incomplete, insufficient_data)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.CorpusDir, report.StartedAt, report.FinishedAt,
		string(report.Stage), report.Incomplete, report.InsufficientData)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for _, f := range report.Files {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO files (run_id, path, status, fingerprint, diagnostic)
			VALUES (?, ?, ?, ?, ?)`,
			report.RunID, f.Path, f.Status.String(), string(f.Fingerprint), f.Diagnostic)
		if err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Path, err)
		}
	}

	for _, entry := range report.Entries {
		var cluster any
		if report.Labels != nil {
			if label, ok := report.Labels[entry.ID]; ok {
				cluster = label
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (run_id, entry_id, fingerprint, label, cluster)
			VALUES (?, ?, ?, ?, ?)`,
			report.RunID, entry.ID, string(entry.Fingerprint), entry.Label(), cluster)
		if err != nil {
			return fmt.Errorf("inserting entry %s: %w", entry.ID, err)
		}

		for pos, src := range entry.Sources {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO entry_sources (run_id, entry_id, position, path)
				VALUES (?, ?, ?, ?)`,
				report.RunID, entry.ID, pos, src.Path)
			if err != nil {
				return fmt.Errorf("inserting source %s: %w", src.Path, err)
			}
		}
	}

	if report.Tree != nil {
		for i, m := range report.Tree.Merges {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO merges (run_id, merge_index, cluster_a, cluster_b, distance, size)
				VALUES (?, ?, ?, ?, ?, ?)`,
				report.RunID, i, m.A, m.B, m.Distance, m.Size)
			if err != nil {
				return fmt.Errorf("inserting merge %d: %w", i, err)
			}
		}
	}

	if p := report.Projection; p != nil && !p.Degenerate {
		for i, id := range p.EntryIDs {
			var z any
			if p.Dims == 3 {
				z = p.Coords[i][2]
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO coordinates (run_id, entry_id, x, y, z)
				VALUES (?, ?, ?, ?, ?)`,
				report.RunID, id, p.Coords[i][0], p.Coords[i][1], z)
			if err != nil {
				return fmt.Errorf("inserting coordinates for %s: %w", id, err)
			}
		}
	}

	return nil
}
