// Package linkstore persists the link metadata accumulated by traversals
// into a SQLite database, so cross-document reference reports can be queried
// after a processing run.
package linkstore

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/inful/mdgraph/internal/engine"
	mderrors "github.com/inful/mdgraph/internal/errors"
	"github.com/inful/mdgraph/internal/transform"
)

// Target kinds stored in the database.
const (
	KindUID  = "uid"
	KindFile = "file"
)

// Store is a SQLite-backed link database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates or opens a link database.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, mderrors.StorageError("open", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, mderrors.StorageError("initialize", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		target_kind TEXT NOT NULL,
		target TEXT NOT NULL,
		source_file TEXT NOT NULL,
		source_line INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_links_target ON links(target_kind, target);
	CREATE INDEX IF NOT EXISTS idx_links_run ON links(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordRun appends every accumulated link reference from one traversal
// context. Targets are written in sorted order and source locations in
// accumulation order, so a run's rows are deterministic.
func (s *Store) RecordRun(ctx context.Context, runID string, tctx *transform.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mderrors.StorageError("begin", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO links (run_id, target_kind, target, source_file, source_line) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return mderrors.StorageError("prepare", err)
	}
	defer stmt.Close()

	insert := func(kind string, sources map[string][]engine.SourceLocation) error {
		for _, target := range slices.Sorted(maps.Keys(sources)) {
			for _, loc := range sources[target] {
				if _, err := stmt.ExecContext(ctx, runID, kind, target, loc.File, loc.Line); err != nil {
					return fmt.Errorf("insert %s link %q: %w", kind, target, err)
				}
			}
		}
		return nil
	}

	if err := insert(KindUID, tctx.UIDLinkSources); err != nil {
		return mderrors.StorageError("append", err)
	}
	if err := insert(KindFile, tctx.FileLinkSources); err != nil {
		return mderrors.StorageError("append", err)
	}

	if err := tx.Commit(); err != nil {
		return mderrors.StorageError("commit", err)
	}
	return nil
}

// SourcesFor returns every recorded source location referencing a target, in
// insertion order.
func (s *Store) SourcesFor(ctx context.Context, kind, target string) ([]engine.SourceLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT source_file, source_line FROM links WHERE target_kind = ? AND target = ? ORDER BY id",
		kind, target)
	if err != nil {
		return nil, mderrors.StorageError("query", err)
	}
	defer rows.Close()

	var locs []engine.SourceLocation
	for rows.Next() {
		var loc engine.SourceLocation
		if err := rows.Scan(&loc.File, &loc.Line); err != nil {
			return nil, mderrors.StorageError("scan", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, mderrors.StorageError("query", err)
	}
	return locs, nil
}

// Targets returns the distinct referenced targets of one kind, sorted.
func (s *Store) Targets(ctx context.Context, kind string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT target FROM links WHERE target_kind = ? ORDER BY target",
		kind)
	if err != nil {
		return nil, mderrors.StorageError("query", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, mderrors.StorageError("scan", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mderrors.StorageError("query", err)
	}
	return targets, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
