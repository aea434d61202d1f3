package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"expensewise/internal/log"
	"expensewise/internal/services"
	"expensewise/internal/sheets"
	"expensewise/internal/sheets/csvfile"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import expenses from a CSV file",
		Long: `Import expenses from a CSV file with a header row.

Date, Category and Amount columns are required. Category accepts the
label ("Food & Dining") or the key ("food"). Rows carrying the ID of an
existing expense update it in place.

Examples:
  ewctl import ~/Downloads/expenses.csv
  ewctl import --quiet data/expenses.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	cmd.Flags().BoolP("quiet", "q", false, "Hide the progress bar")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	path := args[0]

	return withApp(cmd, func(ctx context.Context, a *app) error {
		rows, err := csvfile.New(path).ReadRows(ctx)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		slog.Info("Importing expenses",
			"file", path, log.FieldOperation, log.OpImport, log.FieldCount, len(rows))

		rep := importRows(ctx, cmd, a.svc.Import, rows, quiet)
		return printReport(cmd.OutOrStdout(), rep)
	})
}

// importRows stores rows through the import service, drawing a progress
// bar on stderr unless quiet.
func importRows(ctx context.Context, cmd *cobra.Command, svc *services.ImportService, rows []sheets.ExpenseRow, quiet bool) services.ImportReport {
	if quiet || len(rows) == 0 {
		return svc.ImportRows(ctx, rows, nil)
	}

	w := cmd.ErrOrStderr()
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing expenses"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return svc.ImportRows(ctx, rows, func() {
		_ = bar.Add(1)
	})
}

func printReport(w io.Writer, rep services.ImportReport) error {
	if _, err := fmt.Fprintf(w, "Imported %d, skipped %d, failed %d\n", rep.Imported, rep.Skipped, rep.Failed); err != nil {
		return err
	}
	for _, e := range rep.Errors {
		if _, err := fmt.Fprintf(w, "  %v\n", e); err != nil {
			return err
		}
	}
	if rep.Failed > 0 {
		return fmt.Errorf("%d rows could not be stored", rep.Failed)
	}
	return nil
}
