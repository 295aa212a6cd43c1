package download_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"higalfetch/internal/download"
	"higalfetch/internal/logging"
	"higalfetch/internal/services"
	"higalfetch/internal/survey"
	"higalfetch/internal/testsupport"
)

func resultPageElements(sess *testsupport.FakeSession, catalog survey.Catalog, bands ...survey.Band) {
	sess.AddElement(download.ControlID)
	for _, band := range bands {
		id, _ := catalog.FormID(band)
		sess.AddElement(download.AnchorID(id))
	}
}

func TestTriggerActivatesEveryRequestedBand(t *testing.T) {
	catalog := survey.DefaultCatalog()
	sess := testsupport.NewFakeSession()
	resultPageElements(sess, catalog, catalog.Bands()...)

	report, err := download.Trigger(context.Background(), sess, catalog, nil, time.Second, 5*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if got := len(report.Triggered()); got != 5 {
		t.Fatalf("expected 5 triggered bands, got %d", got)
	}
	if report.Err() != nil {
		t.Fatalf("unexpected report error: %v", report.Err())
	}
	if got := len(sess.SiblingClicks()); got != 5 {
		t.Fatalf("expected 5 control activations, got %d", got)
	}
}

func TestTriggerWaitsForControls(t *testing.T) {
	catalog := survey.DefaultCatalog()
	sess := testsupport.NewFakeSession()
	go func() {
		time.Sleep(30 * time.Millisecond)
		resultPageElements(sess, catalog, survey.BandBlue)
	}()

	report, err := download.Trigger(context.Background(), sess, catalog, []survey.Band{survey.BandBlue}, time.Second, 5*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	if got := report.Triggered(); len(got) != 1 || got[0] != survey.BandBlue {
		t.Fatalf("triggered = %v", got)
	}
}

func TestTriggerAbandonsBatchWhenControlsNeverAppear(t *testing.T) {
	catalog := survey.DefaultCatalog()
	sess := testsupport.NewFakeSession()

	report, err := download.Trigger(context.Background(), sess, catalog, nil, 40*time.Millisecond, 5*time.Millisecond, logging.NewNop())
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	for _, want := range []string{download.ControlID, "40ms"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err.Error(), want)
		}
	}
	if len(report.Results) != 0 {
		t.Fatalf("no bands should be attempted, got %v", report.Results)
	}
	if len(sess.SiblingClicks()) != 0 {
		t.Fatalf("no controls should be activated, got %v", sess.SiblingClicks())
	}
}

func TestTriggerReportsPerBandFailuresWithoutAborting(t *testing.T) {
	catalog := survey.DefaultCatalog()
	sess := testsupport.NewFakeSession()
	// PSW's anchor is missing; the other bands are fine.
	resultPageElements(sess, catalog, survey.BandBlue, survey.BandRed, survey.BandPMW, survey.BandPLW)

	report, err := download.Trigger(context.Background(), sess, catalog, nil, time.Second, 5*time.Millisecond, logging.NewNop())
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Band != survey.BandPSW {
		t.Fatalf("failed = %v", failed)
	}
	if !errors.Is(failed[0].Err, services.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", failed[0].Err)
	}
	if got := len(report.Triggered()); got != 4 {
		t.Fatalf("expected 4 triggered bands, got %d", got)
	}
	if report.Err() == nil || !strings.Contains(report.Err().Error(), "PSW") {
		t.Fatalf("report error should name the band: %v", report.Err())
	}
}
