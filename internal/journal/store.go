package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"higalfetch/internal/config"
	"higalfetch/internal/survey"
)

// Store manages request persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// Open initializes or connects to the journal database under the log
// directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.LogDir, "journal.db"))
}

// OpenPath opens the journal database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewRequest inserts a pending record for a search request and assigns
// it a request ID.
func (s *Store) NewRequest(ctx context.Context, req survey.SearchRequest) (*Record, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	bands := make([]string, 0, len(req.Bands))
	for _, band := range req.Bands {
		bands = append(bands, band.Short())
	}

	requestID := uuid.NewString()
	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO fetch_requests (
            request_id, target, frame, lon, lat, radius_arcmin, bands,
            status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		requestID,
		req.Target,
		string(req.Center.Frame),
		req.Center.Lon,
		req.Center.Lat,
		req.Radius.Arcmin(),
		strings.Join(bands, ","),
		StatusPending,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// SetStatus advances a record's lifecycle status.
func (s *Store) SetStatus(ctx context.Context, id int64, status Status) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown status %q", status)
	}
	return s.update(ctx,
		"UPDATE fetch_requests SET status = ?, updated_at = ? WHERE id = ?",
		status, nowStamp(), id,
	)
}

// MarkFailed sets the failed status together with its reason.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) error {
	return s.update(ctx,
		"UPDATE fetch_requests SET status = ?, error_message = ?, updated_at = ? WHERE id = ?",
		StatusFailed, message, nowStamp(), id,
	)
}

// MarkMigrated sets the migrated status and records the files that
// landed in the data directory. Partial band failures are kept in the
// error column without failing the record.
func (s *Store) MarkMigrated(ctx context.Context, id int64, movedFiles []string, warning string) error {
	return s.update(ctx,
		"UPDATE fetch_requests SET status = ?, moved_files = ?, error_message = ?, updated_at = ? WHERE id = ?",
		StatusMigrated, strings.Join(movedFiles, ","), warning, nowStamp(), id,
	)
}

func (s *Store) update(ctx context.Context, query string, args ...any) error {
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("request %v not found", args[len(args)-1])
	}
	return nil
}

const selectColumns = `id, request_id, target, frame, lon, lat, radius_arcmin,
    bands, status, error_message, moved_files, created_at, updated_at`

// GetByID fetches a record by its row ID.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+selectColumns+" FROM fetch_requests WHERE id = ?", id)
	return scanRecord(row)
}

// GetByRequestID fetches a record by its assigned request ID.
func (s *Store) GetByRequestID(ctx context.Context, requestID string) (*Record, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		"SELECT "+selectColumns+" FROM fetch_requests WHERE request_id = ?", requestID)
	return scanRecord(row)
}

// List returns the most recent records, newest first. A non-positive
// limit returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	query := "SELECT " + selectColumns + " FROM fetch_requests ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		record             Record
		status             string
		createdAt, updated string
	)
	err := row.Scan(
		&record.ID,
		&record.RequestID,
		&record.Target,
		&record.Frame,
		&record.Lon,
		&record.Lat,
		&record.RadiusArcmin,
		&record.Bands,
		&status,
		&record.ErrorMessage,
		&record.MovedFiles,
		&createdAt,
		&updated,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan request: %w", err)
	}

	record.Status = Status(status)
	if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &record, nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
