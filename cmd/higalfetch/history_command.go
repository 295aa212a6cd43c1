package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"higalfetch/internal/config"
	"higalfetch/internal/fetch"
	"higalfetch/internal/journal"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past fetch requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withManager(func(cfg *config.Config, mgr *fetch.Manager, store *journal.Store, logger *slog.Logger) error {
				records, err := store.List(cmd.Context(), limitFlag)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No requests recorded yet")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.RequestID[:8],
						record.CreatedAt.Local().Format("2006-01-02 15:04"),
						describePosition(record),
						strings.Join(record.BandList(), " "),
						string(record.Status),
						strconv.Itoa(len(record.MovedFileList())),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Request", "When", "Position", "Bands", "Status", "Files"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of requests to show (0 for all)")
	return cmd
}

func describePosition(record *journal.Record) string {
	pos := fmt.Sprintf("%s %g %g r=%g'", record.Frame, record.Lon, record.Lat, record.RadiusArcmin)
	if record.Target != "" {
		return record.Target + " (" + pos + ")"
	}
	return pos
}
