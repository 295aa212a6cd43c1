package fetch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"higalfetch/internal/download"
	"higalfetch/internal/fetch"
	"higalfetch/internal/journal"
	"higalfetch/internal/logging"
	"higalfetch/internal/requestform"
	"higalfetch/internal/services"
	"higalfetch/internal/survey"
	"higalfetch/internal/testsupport"
)

func newManager(t *testing.T) (*fetch.Manager, *journal.Store, *testsupport.FakeSession, string, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	mgr, err := fetch.New(cfg, store, logging.NewNop())
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	sess := testsupport.NewFakeSession()
	sess.AddElement(requestform.FrameGalacticControl)
	sess.AddElement(requestform.FrameFK5Control)
	sess.AddElement(requestform.CoordinateInput)
	sess.AddElement(requestform.RadiusInput)
	return mgr, store, sess, cfg.Paths.DownloadDir, cfg.Paths.DataDir
}

func sampleRequest(t *testing.T, bands ...survey.Band) survey.SearchRequest {
	t.Helper()
	req, err := survey.NewSearchRequest(
		"W43",
		survey.Coordinates{Frame: survey.FrameGalactic, Lon: 30.75, Lat: -0.06},
		survey.Angle(20),
		bands,
	)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	return req
}

// serveResults simulates the archive: once the form is submitted, the
// page location flips to the result URL and the download controls appear.
func serveResults(sess *testsupport.FakeSession, bands ...survey.Band) {
	catalog := survey.DefaultCatalog()
	go func() {
		for {
			if len(sess.XPathClicks()) > 0 {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		time.Sleep(20 * time.Millisecond)
		sess.SetURL("http://tools.asdc.asi.it/HiGALSearch?sid=1")
		sess.AddElement(download.ControlID)
		for _, band := range bands {
			id, _ := catalog.FormID(band)
			sess.AddElement(download.AnchorID(id))
		}
	}()
}

func TestFetchEndToEnd(t *testing.T) {
	mgr, _, sess, downloadDir, dataDir := newManager(t)
	serveResults(sess, survey.BandBlue, survey.BandRed)

	// One file finished, one still writing when migration starts.
	testsupport.WriteFile(t, filepath.Join(downloadDir, "map_354_blue.fits"), 64)
	testsupport.WriteFile(t, filepath.Join(downloadDir, "map_354_red.fits"), 64)
	marker := filepath.Join(downloadDir, "map_354_red.fits.part")
	testsupport.WriteFile(t, marker, 1)
	go func() {
		time.Sleep(60 * time.Millisecond)
		_ = os.Remove(marker)
	}()

	outcome, err := mgr.Fetch(context.Background(), sess, sampleRequest(t, survey.BandBlue, survey.BandRed), fetch.Options{
		Submit:  true,
		Migrate: true,
		Pattern: "*354*.fits",
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if outcome.Record.Status != journal.StatusMigrated {
		t.Fatalf("status = %q (error %q)", outcome.Record.Status, outcome.Record.ErrorMessage)
	}
	if got := len(outcome.Downloads.Triggered()); got != 2 {
		t.Fatalf("expected 2 triggered bands, got %d", got)
	}
	if len(outcome.Migration.Moved) != 2 || len(outcome.Migration.Failed) != 0 {
		t.Fatalf("migration = %+v", outcome.Migration)
	}
	for _, name := range []string{"map_354_blue.fits", "map_354_red.fits"} {
		if _, err := os.Stat(filepath.Join(dataDir, name)); err != nil {
			t.Fatalf("%s missing from data dir: %v", name, err)
		}
	}
	if got := outcome.Record.MovedFileList(); len(got) != 2 {
		t.Fatalf("journal moved files = %v", got)
	}
	if got := sess.Filled(requestform.CoordinateInput); got != "30.75 -0.06" {
		t.Fatalf("coordinates filled = %q", got)
	}
}

func TestFetchDryRunLeavesFormUnsubmitted(t *testing.T) {
	mgr, _, sess, _, _ := newManager(t)

	outcome, err := mgr.Fetch(context.Background(), sess, sampleRequest(t, survey.BandBlue), fetch.Options{
		Submit: false,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if outcome.Record.Status != journal.StatusPending {
		t.Fatalf("status = %q", outcome.Record.Status)
	}
	if len(sess.XPathClicks()) != 0 {
		t.Fatalf("form should not be submitted, got %v", sess.XPathClicks())
	}
	if got := sess.Filled(requestform.RadiusInput); got == "" {
		t.Fatal("radius should be filled for inspection")
	}
}

func TestFetchRecordsResultPageTimeout(t *testing.T) {
	mgr, store, sess, _, _ := newManager(t)
	// No result page ever appears.

	outcome, err := mgr.Fetch(context.Background(), sess, sampleRequest(t, survey.BandBlue), fetch.Options{
		Submit: true,
	})
	if !errors.Is(err, services.ErrNavigation) {
		t.Fatalf("expected navigation failure, got %v", err)
	}

	record, getErr := store.GetByID(context.Background(), outcome.Record.ID)
	if getErr != nil {
		t.Fatalf("GetByID: %v", getErr)
	}
	if record.Status != journal.StatusFailed || record.ErrorMessage == "" {
		t.Fatalf("record = %+v", record)
	}
}

func TestFetchSkipMigrationKeepsDownloadingStatus(t *testing.T) {
	mgr, _, sess, downloadDir, _ := newManager(t)
	serveResults(sess, survey.BandBlue)
	testsupport.WriteFile(t, filepath.Join(downloadDir, "map.fits"), 16)

	outcome, err := mgr.Fetch(context.Background(), sess, sampleRequest(t, survey.BandBlue), fetch.Options{
		Submit:  true,
		Migrate: false,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if outcome.Record.Status != journal.StatusDownloading {
		t.Fatalf("status = %q", outcome.Record.Status)
	}
	if _, err := os.Stat(filepath.Join(downloadDir, "map.fits")); err != nil {
		t.Fatalf("download should stay in place: %v", err)
	}
}

func TestFetchPartialBandFailureStillMigrates(t *testing.T) {
	mgr, _, sess, downloadDir, _ := newManager(t)
	// Only blue's trigger anchor appears; red is requested too.
	serveResults(sess, survey.BandBlue)
	testsupport.WriteFile(t, filepath.Join(downloadDir, "map_354_blue.fits"), 16)

	outcome, err := mgr.Fetch(context.Background(), sess, sampleRequest(t, survey.BandBlue, survey.BandRed), fetch.Options{
		Submit:  true,
		Migrate: true,
	})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if outcome.Record.Status != journal.StatusMigrated {
		t.Fatalf("status = %q", outcome.Record.Status)
	}
	if !strings.Contains(outcome.Record.ErrorMessage, "RED") {
		t.Fatalf("warning should name the failed band: %q", outcome.Record.ErrorMessage)
	}
	if len(outcome.Migration.Moved) != 1 {
		t.Fatalf("moved = %v", outcome.Migration.Moved)
	}
}

func TestFetchRejectsConcurrentRuns(t *testing.T) {
	mgr, _, sess, _, _ := newManager(t)

	other := flock.New(mgr.LockPath())
	ok, err := other.TryLock()
	if err != nil || !ok {
		t.Fatalf("take lock: ok=%v err=%v", ok, err)
	}
	defer func() { _ = other.Unlock() }()

	if _, err := mgr.Fetch(context.Background(), sess, sampleRequest(t, survey.BandBlue), fetch.Options{Submit: true}); err == nil {
		t.Fatal("expected lock contention error")
	}
	if _, err := mgr.MigrateDownloads(context.Background(), ""); err == nil {
		t.Fatal("expected lock contention error for migration")
	}
}

func TestMigrateDownloadsWithoutSession(t *testing.T) {
	mgr, _, _, downloadDir, dataDir := newManager(t)
	testsupport.WriteFile(t, filepath.Join(downloadDir, "leftover.fits"), 16)

	result, err := mgr.MigrateDownloads(context.Background(), "")
	if err != nil {
		t.Fatalf("MigrateDownloads: %v", err)
	}
	if len(result.Moved) != 1 {
		t.Fatalf("moved = %v", result.Moved)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "leftover.fits")); err != nil {
		t.Fatalf("file missing from data dir: %v", err)
	}
}
