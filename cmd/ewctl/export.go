package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"expensewise/internal/core"
	"expensewise/internal/log"
	"expensewise/internal/services"
	"expensewise/internal/sheets/csvfile"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export expenses to a CSV file",
		Long: `Export expenses to a CSV file, newest first. The file is replaced.

Examples:
  ewctl export expenses.csv
  ewctl export --filter "Work trips" trips.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	cmd.Flags().StringP("filter", "f", "", "Saved filter to apply, by name or id")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, _ := cmd.Flags().GetString("filter")
	path := args[0]

	return withApp(cmd, func(ctx context.Context, a *app) error {
		var criteria *core.FilterCriteria
		if filter != "" {
			f, err := findFilter(ctx, a.svc.Filters, filter)
			if err != nil {
				return err
			}
			criteria = &f.Filters
		}

		n, err := a.svc.Import.Export(ctx, csvfile.New(path), criteria)
		if err != nil {
			return err
		}
		slog.Info("Exported expenses",
			"file", path, log.FieldOperation, log.OpExport, log.FieldCount, n)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d expenses to %s\n", n, path)
		return err
	})
}

// findFilter resolves a saved filter by id, then by case-insensitive name.
func findFilter(ctx context.Context, svc *services.FilterService, ref string) (core.SavedFilter, error) {
	all, err := svc.List(ctx)
	if err != nil {
		return core.SavedFilter{}, err
	}
	for _, f := range all {
		if f.ID == ref {
			return f, nil
		}
	}
	for _, f := range all {
		if strings.EqualFold(f.Name, ref) {
			return f, nil
		}
	}
	return core.SavedFilter{}, fmt.Errorf("saved filter %q: %w", ref, core.ErrNotFound)
}
