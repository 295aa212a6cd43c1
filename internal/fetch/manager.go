package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"higalfetch/internal/browser"
	"higalfetch/internal/config"
	"higalfetch/internal/download"
	"higalfetch/internal/journal"
	"higalfetch/internal/logging"
	"higalfetch/internal/migrate"
	"higalfetch/internal/readiness"
	"higalfetch/internal/requestform"
	"higalfetch/internal/services"
	"higalfetch/internal/survey"
)

// Options selects optional behavior for one run.
type Options struct {
	// Submit actually submits the form; false fills it and stops, for
	// inspecting a request without hitting the archive.
	Submit bool
	// Migrate moves finished files to the data directory afterwards.
	Migrate bool
	// Pattern selects the files to migrate. Empty means every FITS file.
	Pattern string
}

// DefaultPattern matches the survey cutouts the service produces.
const DefaultPattern = "*.fits"

// Outcome collects what one run accomplished.
type Outcome struct {
	Record    *journal.Record
	Downloads download.Report
	Migration migrate.Result
}

// Manager coordinates a fetch run against one browser session.
type Manager struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *journal.Store
	catalog survey.Catalog

	lockPath string
	lock     *flock.Flock
}

// New constructs a manager with initialized dependencies.
func New(cfg *config.Config, store *journal.Store, logger *slog.Logger) (*Manager, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("fetch manager requires config and journal store")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "higalfetch.lock")
	return &Manager{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "fetch"),
		store:    store,
		catalog:  survey.DefaultCatalog(),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// LockPath returns the single-instance lock file location.
func (m *Manager) LockPath() string {
	return m.lockPath
}

func (m *Manager) acquireLock() (func(), error) {
	ok, err := m.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another higalfetch run is already using the download directory")
	}
	return func() {
		if err := m.lock.Unlock(); err != nil {
			m.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}, nil
}

// Fetch executes a search request on the given session.
func (m *Manager) Fetch(ctx context.Context, sess browser.Session, req survey.SearchRequest, opts Options) (*Outcome, error) {
	if sess == nil {
		return nil, errors.New("fetch requires a browser session")
	}

	release, err := m.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	record, err := m.store.NewRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("journal request: %w", err)
	}
	ctx = services.WithRequestID(ctx, record.RequestID)
	if req.Target != "" {
		ctx = services.WithTarget(ctx, req.Target)
	}
	logger := m.logger.With(
		logging.String(logging.FieldRequestID, record.RequestID),
	)
	outcome := &Outcome{Record: record}

	form := requestform.New(sess, m.cfg.Service.URL, logger)
	if err := form.Open(ctx); err != nil {
		return outcome, m.fail(ctx, record, err)
	}
	if err := form.Fill(ctx, req); err != nil {
		return outcome, m.fail(ctx, record, err)
	}

	if !opts.Submit {
		logger.Info("submission skipped, form left filled for inspection")
		return m.refresh(ctx, outcome)
	}

	if err := form.Submit(ctx); err != nil {
		return outcome, m.fail(ctx, record, err)
	}
	if err := m.store.SetStatus(ctx, record.ID, journal.StatusSubmitted); err != nil {
		return outcome, err
	}

	if err := readiness.ResultPage(ctx, sess, readiness.ResultMarker, m.cfg.ResultPageTimeout(), m.cfg.PollInterval()); err != nil {
		return outcome, m.fail(ctx, record, err)
	}

	report, err := download.Trigger(ctx, sess, m.catalog, req.Bands, m.cfg.ControlTimeout(), m.cfg.PollInterval(), logger)
	outcome.Downloads = report
	if err != nil {
		return outcome, m.fail(ctx, record, err)
	}
	if len(report.Triggered()) == 0 {
		return outcome, m.fail(ctx, record, fmt.Errorf("no band downloads could be triggered: %w", report.Err()))
	}
	if err := m.store.SetStatus(ctx, record.ID, journal.StatusDownloading); err != nil {
		return outcome, err
	}

	if !opts.Migrate {
		logger.Info("migration skipped, downloads remain in the browser directory",
			logging.String("dir", m.cfg.Paths.DownloadDir))
		return m.refresh(ctx, outcome)
	}

	settle := func(ctx context.Context) error {
		return readiness.WindowsSettled(ctx, sess, m.cfg.SettleGrace(), m.cfg.SettleTimeout(), m.cfg.PollInterval())
	}
	result, err := m.runMigration(ctx, opts.Pattern, settle)
	outcome.Migration = result
	if err != nil {
		return outcome, m.fail(ctx, record, err)
	}

	warning := combineWarnings(report.Err(), result.Err())
	if err := m.store.MarkMigrated(ctx, record.ID, result.Moved, warning); err != nil {
		return outcome, err
	}
	return m.refresh(ctx, outcome)
}

// MigrateDownloads moves already-downloaded files without a browser
// session, for recovering from an interrupted run.
func (m *Manager) MigrateDownloads(ctx context.Context, pattern string) (migrate.Result, error) {
	release, err := m.acquireLock()
	if err != nil {
		return migrate.Result{}, err
	}
	defer release()
	return m.runMigration(ctx, pattern, nil)
}

func (m *Manager) runMigration(ctx context.Context, pattern string, settle func(context.Context) error) (migrate.Result, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	return migrate.Run(ctx, migrate.Options{
		SourceDir:         m.cfg.Paths.DownloadDir,
		DestDir:           m.cfg.Paths.DataDir,
		Pattern:           pattern,
		PartialSuffix:     m.cfg.Browser.PartialSuffix,
		Settle:            settle,
		CompletionTimeout: m.cfg.CompletionTimeout(),
		Interval:          m.cfg.PollInterval(),
		Logger:            m.logger,
	})
}

func (m *Manager) fail(ctx context.Context, record *journal.Record, cause error) error {
	if err := m.store.MarkFailed(ctx, record.ID, cause.Error()); err != nil {
		m.logger.Warn("failed to journal error", logging.Error(err))
	}
	return cause
}

func (m *Manager) refresh(ctx context.Context, outcome *Outcome) (*Outcome, error) {
	record, err := m.store.GetByID(ctx, outcome.Record.ID)
	if err != nil {
		return outcome, err
	}
	if record != nil {
		outcome.Record = record
	}
	return outcome, nil
}

func combineWarnings(errs ...error) string {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			parts = append(parts, err.Error())
		}
	}
	return strings.Join(parts, "; ")
}
