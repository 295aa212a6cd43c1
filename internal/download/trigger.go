package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"higalfetch/internal/browser"
	"higalfetch/internal/logging"
	"higalfetch/internal/poll"
	"higalfetch/internal/services"
	"higalfetch/internal/survey"
)

// ControlID is the DOM id every per-band download control carries on
// the result page.
const ControlID = "mapDownload"

// AnchorID returns the id of the band's hide-image checkbox, the stable
// anchor next to which the band's download control lives.
func AnchorID(formID int) string {
	return fmt.Sprintf("ckHideImg_%d", formID)
}

// BandResult records the outcome of one band's activation.
type BandResult struct {
	Band survey.Band
	Err  error
}

// Report collects per-band outcomes of a trigger batch.
type Report struct {
	Results []BandResult
}

// Triggered returns the bands whose control was activated.
func (r Report) Triggered() []survey.Band {
	bands := make([]survey.Band, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err == nil {
			bands = append(bands, res.Band)
		}
	}
	return bands
}

// Failed returns the per-band failures.
func (r Report) Failed() []BandResult {
	failed := make([]BandResult, 0)
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err summarizes the failures, or nil when every band was triggered.
func (r Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	names := make([]string, 0, len(failed))
	for _, res := range failed {
		names = append(names, res.Band.Short())
	}
	return fmt.Errorf("%d of %d bands failed to trigger: %s", len(failed), len(r.Results), strings.Join(names, ", "))
}

// Trigger waits for the download controls to appear, then activates one
// control per requested band. The returned error is non-nil only when
// the whole batch is abandoned (controls never appeared); per-band
// failures live in the report.
func Trigger(ctx context.Context, sess browser.Session, catalog survey.Catalog, bands []survey.Band, timeout, interval time.Duration, logger *slog.Logger) (Report, error) {
	logger = logging.WithComponent(logger, "download")
	if len(bands) == 0 {
		bands = catalog.Bands()
	}

	logger.Info("waiting for the download controls to show up", logging.String("control", ControlID))
	err := poll.Until(ctx, timeout, interval, func(ctx context.Context) (bool, error) {
		return sess.HasElement(ctx, ControlID)
	})
	if err != nil {
		if errors.Is(err, poll.ErrTimeout) {
			return Report{}, services.Wrap(
				services.ErrTimeout,
				"download",
				"wait for controls",
				fmt.Sprintf("no %q element within %s", ControlID, timeout),
				err,
			)
		}
		return Report{}, services.Wrap(services.ErrExternalTool, "download", "wait for controls", "probe result page", err)
	}

	report := Report{Results: make([]BandResult, 0, len(bands))}
	for _, band := range bands {
		res := BandResult{Band: band}
		if err := triggerBand(ctx, sess, catalog, band); err != nil {
			res.Err = err
			logger.Warn("band download not triggered",
				logging.String(logging.FieldBand, band.Short()),
				logging.Error(err),
			)
		} else {
			logger.Info("band download triggered", logging.String(logging.FieldBand, band.Short()))
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

func triggerBand(ctx context.Context, sess browser.Session, catalog survey.Catalog, band survey.Band) error {
	formID, err := catalog.FormID(band)
	if err != nil {
		return err
	}
	anchor := AnchorID(formID)
	if err := sess.ClickSibling(ctx, anchor, ControlID); err != nil {
		return services.Wrap(services.ErrNotFound, "download", "activate control", "band "+band.Short()+" via #"+anchor, err)
	}
	return nil
}
