// Package store persists immutable analysis results in SQLite, keyed by
// (track_id, analysis_version). Re-analysis writes a new version; rows are
// never updated in place.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/soundcrate/mixplan/analysis"
)

// ErrNotFound indicates no cached result exists for the requested key
var ErrNotFound = errors.New("analysis result not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS analysis_results (
	track_id   TEXT    NOT NULL,
	version    INTEGER NOT NULL,
	payload    TEXT    NOT NULL,
	created_at TEXT    NOT NULL,
	PRIMARY KEY (track_id, version)
);
`

// Store is the SQLite-backed analysis result cache
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the cache database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put caches one analysis result. Writing the same (track, version) twice is
// rejected; results are immutable once produced.
func (s *Store) Put(ctx context.Context, result *analysis.AnalysisResult) error {
	if result == nil {
		return errors.New("nil analysis result")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_results (track_id, version, payload, created_at) VALUES (?, ?, ?, ?)`,
		result.TrackID, result.Version, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert analysis result %s v%d: %w", result.TrackID, result.Version, err)
	}

	return nil
}

// Get retrieves the cached result for (trackID, version)
func (s *Store) Get(ctx context.Context, trackID string, version int) (*analysis.AnalysisResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM analysis_results WHERE track_id = ? AND version = ?`,
		trackID, version,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s v%d", ErrNotFound, trackID, version)
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis result: %w", err)
	}

	return unmarshalResult(payload)
}

// Latest retrieves the highest-version cached result for a track
func (s *Store) Latest(ctx context.Context, trackID string) (*analysis.AnalysisResult, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM analysis_results WHERE track_id = ? ORDER BY version DESC LIMIT 1`,
		trackID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, trackID)
	}
	if err != nil {
		return nil, fmt.Errorf("query analysis result: %w", err)
	}

	return unmarshalResult(payload)
}

// Delete removes every cached version for a track. Missing tracks are not an
// error.
func (s *Store) Delete(ctx context.Context, trackID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM analysis_results WHERE track_id = ?`, trackID); err != nil {
		return fmt.Errorf("delete analysis results for %s: %w", trackID, err)
	}
	return nil
}

// TrackIDs lists every track with at least one cached result, sorted
func (s *Store) TrackIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT track_id FROM analysis_results ORDER BY track_id`)
	if err != nil {
		return nil, fmt.Errorf("list track ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan track id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func unmarshalResult(payload string) (*analysis.AnalysisResult, error) {
	var result analysis.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis result: %w", err)
	}
	return &result, nil
}
