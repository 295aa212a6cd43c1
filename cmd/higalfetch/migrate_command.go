package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"higalfetch/internal/config"
	"higalfetch/internal/fetch"
	"higalfetch/internal/journal"
)

func newMigrateCommand(cmdCtx *commandContext) *cobra.Command {
	var patternFlag string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move finished downloads into the data directory",
		Long: `Move finished downloads into the data directory.

Useful after an interrupted run: files still carrying the browser's
partial marker are waited on, everything else matching the pattern is
moved immediately.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withManager(func(cfg *config.Config, mgr *fetch.Manager, store *journal.Store, logger *slog.Logger) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()

				result, err := mgr.MigrateDownloads(ctx, patternFlag)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(result.Moved) == 0 && len(result.Failed) == 0 {
					fmt.Fprintln(out, "Nothing to migrate")
					return nil
				}
				for _, path := range result.Moved {
					fmt.Fprintf(out, "moved %s\n", path)
				}
				for _, failure := range result.Failed {
					fmt.Fprintf(out, "failed %s: %v\n", failure.Path, failure.Err)
				}
				return result.Err()
			})
		},
	}

	cmd.Flags().StringVar(&patternFlag, "pattern", "", "Glob for files to migrate (default *.fits)")
	return cmd
}
