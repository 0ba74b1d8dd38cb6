package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/plx/internal/models"
	"github.com/desertthunder/plx/internal/shared"
)

// DefaultHistoryLimit is how many runs history lists when no limit is given.
const DefaultHistoryLimit = 20

// ReportRepository stores finished conversions and the entries they left behind.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository with the given database connection
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SaveRun inserts run and its entries in one transaction. Missing IDs are generated.
func (r *ReportRepository) SaveRun(ctx context.Context, run *models.Run) error {
	if run.ID == "" {
		run.ID = shared.GenerateID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO runs (id, source_kind, source, playlist_title, destination_id, total, written, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		run.ID,
		string(run.SourceKind),
		run.Source,
		run.PlaylistTitle,
		run.DestinationID,
		run.Total,
		run.Written,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO run_entries (id, run_id, kind, query, origin_id, track_name, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for i := range run.Entries {
		e := &run.Entries[i]
		if e.ID == "" {
			e.ID = shared.GenerateID()
		}
		e.RunID = run.ID
		if _, err := stmt.ExecContext(ctx, e.ID, e.RunID, string(e.Kind), e.Query, e.OriginID, e.TrackName, e.Position); err != nil {
			return fmt.Errorf("failed to insert run entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first, without their entries.
// A limit of zero or less uses [DefaultHistoryLimit].
func (r *ReportRepository) ListRuns(ctx context.Context, limit int) ([]*models.Run, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
		SELECT id, source_kind, source, playlist_title, destination_id, total, written, created_at
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun retrieves a run by ID with its entries in source order.
func (r *ReportRepository) GetRun(ctx context.Context, id string) (*models.Run, error) {
	query := `
		SELECT id, source_kind, source, playlist_title, destination_id, total, written, created_at
		FROM runs
		WHERE id = ?
	`
	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	if run.Entries, err = r.entries(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

func (r *ReportRepository) entries(ctx context.Context, runID string) ([]models.RunEntry, error) {
	query := `
		SELECT id, run_id, kind, query, origin_id, track_name, position
		FROM run_entries
		WHERE run_id = ?
		ORDER BY position, kind
	`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run entries: %w", err)
	}
	defer rows.Close()

	var entries []models.RunEntry
	for rows.Next() {
		var (
			e    models.RunEntry
			kind string
		)
		if err := rows.Scan(&e.ID, &e.RunID, &kind, &e.Query, &e.OriginID, &e.TrackName, &e.Position); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		e.Kind = models.EntryKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate run entries: %w", err)
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRun scans a row from either [sql.Row] or [sql.Rows] into a [models.Run].
// [sql.ErrNoRows] is returned unwrapped.
func scanRun(row scanner) (*models.Run, error) {
	var (
		run  models.Run
		kind string
	)
	err := row.Scan(&run.ID, &kind, &run.Source, &run.PlaylistTitle, &run.DestinationID, &run.Total, &run.Written, &run.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	run.SourceKind = models.SourceKind(kind)
	return &run, nil
}
