// Package reportstore persists synchronization runs and their reports to
// sqlite, so a match's output can be queried later without re-running the
// pipeline.
package reportstore

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/skillcorner/event-sync/internal/eventsync/report"
)

//go:embed schema.sql
var schemaSQL string

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a sqlite database holding synchronization runs.
type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and brings
// its schema up to date via migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	s := &Store{DB: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	return nil
}

func (s *Store) migrateUp() error {
	sourceFS, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to sub migrations fs: %w", err)
	}
	sourceDriver, err := iofs.New(sourceFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver: %w", err)
	}
	dbDriver, err := sqlite.WithInstance(s.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// boolToInt is the sqlite-friendly representation of a Go bool.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// SaveRun persists a completed sync run's per-event and per-event-type
// reports, and returns the generated run id.
func (s *Store) SaveRun(matchID, eventProvider string, startedAtUnixNanos, finishedAtUnixNanos int64, rep report.Report) (string, error) {
	runID := uuid.NewString()

	tx, err := s.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO sync_run (run_id, match_id, event_provider, started_at_unix_nanos, finished_at_unix_nanos)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, matchID, eventProvider, startedAtUnixNanos, finishedAtUnixNanos,
	); err != nil {
		return "", fmt.Errorf("insert sync_run: %w", err)
	}

	eventStmt, err := tx.Prepare(
		`INSERT INTO sync_event (
			run_id, event_id, event_type_name, period, frame, player_id, provider_player_id,
			team_id, provider_team_id, is_matched, is_player_detected,
			has_provider_player_id_attached, frame_tracking_data_available, is_matched_applicable
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("prepare sync_event insert: %w", err)
	}
	defer eventStmt.Close()

	for _, e := range rep.Events {
		if _, err := eventStmt.Exec(
			runID, e.EventID, e.EventTypeName, e.Period, e.Frame, e.PlayerID, e.ProviderPlayerID,
			e.TeamID, e.ProviderTeamID, boolToInt(e.IsMatched), boolToInt(e.IsPlayerDetected),
			boolToInt(e.HasProviderPlayerIDAttached), boolToInt(e.FrameTrackingDataAvailable),
			boolToInt(e.IsMatchedApplicable),
		); err != nil {
			return "", fmt.Errorf("insert sync_event %s: %w", e.EventID, err)
		}
	}

	aggStmt, err := tx.Prepare(
		`INSERT INTO sync_event_type_aggregate (
			run_id, event_type_name, nb_events, is_matched, pct_is_matched,
			is_matched_is_player_detected, is_not_matched, is_not_matched_is_player_detected,
			is_not_matched_has_provider_player_id_attached, is_not_matched_frame_tracking_data_available,
			is_matched_applicable
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("prepare sync_event_type_aggregate insert: %w", err)
	}
	defer aggStmt.Close()

	for _, a := range rep.ByEventType {
		if _, err := aggStmt.Exec(
			runID, a.EventTypeName, a.NbEvents, a.IsMatched, a.PctIsMatched,
			a.IsMatchedIsPlayerDetected, a.IsNotMatched, a.IsNotMatchedIsPlayerDetected,
			a.IsNotMatchedHasProviderPlayerIDAttached, a.IsNotMatchedFrameTrackingDataAvailable,
			boolToInt(a.IsMatchedApplicable),
		); err != nil {
			return "", fmt.Errorf("insert sync_event_type_aggregate %s: %w", a.EventTypeName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit sync run: %w", err)
	}
	return runID, nil
}

// EventTypeAggregate fetches the per-event-type aggregate for a prior run.
func (s *Store) EventTypeAggregate(runID string) ([]report.EventTypeAggregate, error) {
	rows, err := s.Query(
		`SELECT event_type_name, nb_events, is_matched, pct_is_matched, is_matched_is_player_detected,
		        is_not_matched, is_not_matched_is_player_detected,
		        is_not_matched_has_provider_player_id_attached, is_not_matched_frame_tracking_data_available,
		        is_matched_applicable
		 FROM sync_event_type_aggregate WHERE run_id = ? ORDER BY event_type_name`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []report.EventTypeAggregate
	for rows.Next() {
		var a report.EventTypeAggregate
		var matchedApplicable int
		if err := rows.Scan(
			&a.EventTypeName, &a.NbEvents, &a.IsMatched, &a.PctIsMatched, &a.IsMatchedIsPlayerDetected,
			&a.IsNotMatched, &a.IsNotMatchedIsPlayerDetected,
			&a.IsNotMatchedHasProviderPlayerIDAttached, &a.IsNotMatchedFrameTrackingDataAvailable,
			&matchedApplicable,
		); err != nil {
			return nil, err
		}
		a.IsMatchedApplicable = matchedApplicable != 0
		out = append(out, a)
	}
	return out, rows.Err()
}

// compile-time reminder that schema.sql must stay in sync with migrations.
var _ = schemaSQL
