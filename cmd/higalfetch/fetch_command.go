package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"higalfetch/internal/browser"
	"higalfetch/internal/config"
	"higalfetch/internal/fetch"
	"higalfetch/internal/journal"
	"higalfetch/internal/logging"
	"higalfetch/internal/survey"
)

func newFetchCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		frameFlag   string
		lonFlag     float64
		latFlag     float64
		radiusFlag  string
		bandFlags   []string
		targetFlag  string
		patternFlag string
		noSubmit    bool
		noMigrate   bool
		showBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Search the archive and download band images for a sky position",
		Example: `  higalfetch fetch --lon 30.75 --lat -0.06 --radius 20
  higalfetch fetch --frame fk5 --lon 281.0 --lat -1.9 --radius 0.4deg --bands blue,red`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withManager(func(cfg *config.Config, mgr *fetch.Manager, store *journal.Store, logger *slog.Logger) error {
				req, err := buildRequest(logger, frameFlag, lonFlag, latFlag, radiusFlag, bandFlags, targetFlag)
				if err != nil {
					return err
				}

				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				sess, err := browser.NewRodSession(browser.Options{
					DownloadDir: cfg.Paths.DownloadDir,
					Binary:      cfg.Browser.Binary,
					Headless:    cfg.Browser.Headless && !showBrowser,
				})
				if err != nil {
					return fmt.Errorf("launch browser: %w", err)
				}
				defer func() {
					if err := sess.Close(); err != nil {
						logger.Warn("close browser", logging.Error(err))
					}
				}()

				outcome, err := mgr.Fetch(ctx, sess, req, fetch.Options{
					Submit:  !noSubmit,
					Migrate: !noMigrate,
					Pattern: patternFlag,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Request %s finished with status %s\n", outcome.Record.RequestID, outcome.Record.Status)
				for _, path := range outcome.Migration.Moved {
					fmt.Fprintf(out, "  %s\n", path)
				}
				if warning := outcome.Record.ErrorMessage; warning != "" {
					fmt.Fprintf(out, "Warnings: %s\n", warning)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&frameFlag, "frame", string(survey.FrameGalactic), "Coordinate frame: galactic or fk5")
	cmd.Flags().Float64Var(&lonFlag, "lon", 0, "Longitude in degrees (l for galactic, RA for fk5)")
	cmd.Flags().Float64Var(&latFlag, "lat", 0, "Latitude in degrees (b for galactic, Dec for fk5)")
	cmd.Flags().StringVar(&radiusFlag, "radius", "", "Search radius, e.g. 20, 0.4deg, 1200arcsec")
	cmd.Flags().StringSliceVar(&bandFlags, "bands", nil, "Bands to download (blue,red,psw,pmw,plw); default all")
	cmd.Flags().StringVar(&targetFlag, "target", "", "Optional label for the journal, e.g. a source name")
	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob for files to migrate (default *.fits)")
	cmd.Flags().BoolVar(&noSubmit, "no-submit", false, "Fill the form but do not submit it")
	cmd.Flags().BoolVar(&noMigrate, "no-migrate", false, "Leave downloads in the browser directory")
	cmd.Flags().BoolVar(&showBrowser, "show-browser", false, "Run the browser with a visible window")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("radius")

	return cmd
}

func buildRequest(logger *slog.Logger, frameName string, lon, lat float64, radiusValue string, bandNames []string, target string) (survey.SearchRequest, error) {
	frame, err := survey.ParseFrame(frameName)
	if err != nil {
		return survey.SearchRequest{}, err
	}
	center, err := survey.NewCoordinates(frame, lon, lat)
	if err != nil {
		return survey.SearchRequest{}, err
	}
	radius, assumed, err := survey.ParseAngle(radiusValue)
	if err != nil {
		return survey.SearchRequest{}, err
	}
	if assumed {
		logger.Warn("radius given without a unit, assuming arcminutes",
			logging.String("radius", radius.String()))
	}
	bands, err := survey.ParseBands(bandNames)
	if err != nil {
		return survey.SearchRequest{}, err
	}
	return survey.NewSearchRequest(target, center, radius, bands)
}
