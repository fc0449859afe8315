package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/mocut/animation"
	"github.com/katalvlaran/mocut/costmatrix"
	"github.com/katalvlaran/mocut/timeline"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements Store on a single SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	cfg    Config
	logger zerolog.Logger
}

// Config holds SQLite store configuration.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Logger receives debug events; the zero value discards them.
	Logger zerolog.Logger
}

// NewSQLiteStore validates cfg and applies pool defaults. No connection is
// opened until Init.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 8
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 2
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}

	return &SQLiteStore{
		cfg:    cfg,
		logger: cfg.Logger.With().Str("component", "store").Str("path", cfg.Path).Logger(),
	}, nil
}

// Init opens the database with foreign keys, WAL and a busy timeout.
func (s *SQLiteStore) Init(ctx context.Context) error {
	dsn := "file:" + (&url.URL{Path: s.cfg.Path}).EscapedPath() +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	s.logger.Debug().Msg("database opened")

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil

	return err
}

// Migrate applies the embedded migrations.
func (s *SQLiteStore) Migrate(_ context.Context) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	s.logger.Debug().Msg("migrations applied")

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	return s.db.PingContext(ctx)
}

// SaveMatrix stores every computed entry of req.Matrix under a new run id
// in one transaction.
func (s *SQLiteStore) SaveMatrix(ctx context.Context, req SaveRequest) (Run, error) {
	if s.db == nil {
		return Run{}, ErrNotInitialized
	}
	if req.Matrix == nil {
		return Run{}, ErrNilMatrix
	}

	anim := req.Matrix.Animation()
	records := req.Matrix.Records()
	run := Run{
		ID:        uuid.NewString(),
		Animation: req.Animation,
		Operation: req.Operation,
		StartTime: int(anim.Timeline.Start),
		EndTime:   int(anim.Timeline.End),
		Windows:   len(records),
		CreatedAt: time.Now().UTC(),
	}
	if run.Animation == "" {
		run.Animation = anim.Name
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, animation, operation, start_time, end_time, windows, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Animation, run.Operation, run.StartTime, run.EndTime, run.Windows, run.CreatedAt.UnixNano())
	if err != nil {
		return Run{}, fmt.Errorf("failed to create run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries (run_id, i, j, error, idx) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("failed to prepare entries: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err = stmt.ExecContext(ctx, run.ID, int(r.Window.Start), int(r.Window.End), r.Error, r.Index); err != nil {
			return Run{}, fmt.Errorf("failed to insert entry %v: %w", r.Window, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Debug().Str("run", run.ID).Int("windows", run.Windows).Msg("cost matrix saved")

	return run, nil
}

// GetRun retrieves a run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, error) {
	if s.db == nil {
		return Run{}, ErrNotInitialized
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, animation, operation, start_time, end_time, windows, created_at
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// LoadMatrix rebuilds the matrix of run runID over anim. Entries not stored
// stay pending.
func (s *SQLiteStore) LoadMatrix(ctx context.Context, runID string, anim *animation.Animation, op costmatrix.Operation, opts ...costmatrix.Option) (*costmatrix.CostMatrix, error) {
	if anim == nil {
		return nil, costmatrix.ErrNilAnimation
	}
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	want := timeline.Timeline{Start: timeline.Time(run.StartTime), End: timeline.Time(run.EndTime)}
	if want != anim.Timeline {
		return nil, fmt.Errorf("%w: run %s covers %v, animation %q covers %v", ErrTimelineMismatch, run.ID, want, anim.Name, anim.Timeline)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT i, j, error, idx FROM entries WHERE run_id = ? ORDER BY i, j`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	records := make([]costmatrix.Record, 0, run.Windows)
	for rows.Next() {
		var (
			i, j, idx int
			value     float64
		)
		if err := rows.Scan(&i, &j, &value, &idx); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		records = append(records, costmatrix.Record{
			Window: timeline.Timeline{Start: timeline.Time(i), End: timeline.Time(j)},
			Error:  value,
			Index:  idx,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return costmatrix.FromRecords(records, anim, op, opts...)
}

// ListRuns returns runs newest first, all of them when animName is empty.
func (s *SQLiteStore) ListRuns(ctx context.Context, animName string) ([]Run, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	query := `
		SELECT id, animation, operation, start_time, end_time, windows, created_at
		FROM runs
	`
	var args []any
	if animName != "" {
		query += " WHERE animation = ?"
		args = append(args, animName)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun removes a run and its entries.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM entries WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		created int64
	)
	if err := sc.Scan(&run.ID, &run.Animation, &run.Operation, &run.StartTime, &run.EndTime, &run.Windows, &created); err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.Unix(0, created).UTC()

	return run, nil
}
