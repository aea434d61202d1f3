package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"expensewise/internal/cli"
	"expensewise/internal/log"
)

func sheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Sync expenses with the spreadsheet mirror",
		Long: `Sync expenses with Google Sheets when GOOGLE_SPREADSHEET_ID is set,
or with a local CSV mirror otherwise.`,
	}
	cmd.PersistentFlags().String("csv", cli.DefaultCSVPath, "CSV mirror used when Google Sheets is not configured")

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Replace the sheet with every stored expense",
		Args:  cobra.NoArgs,
		RunE:  runSheetsPush,
	})
	pull := &cobra.Command{
		Use:   "pull",
		Short: "Import every sheet row into the store",
		Args:  cobra.NoArgs,
		RunE:  runSheetsPull,
	}
	pull.Flags().BoolP("quiet", "q", false, "Hide the progress bar")
	cmd.AddCommand(pull)
	return cmd
}

func runSheetsPush(cmd *cobra.Command, _ []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	return withApp(cmd, func(ctx context.Context, a *app) error {
		sheet, err := a.env.OpenSheet(ctx, csvPath)
		if err != nil {
			return err
		}
		n, err := a.svc.Import.Export(ctx, sheet, nil)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d expenses\n", n)
		return err
	})
}

func runSheetsPull(cmd *cobra.Command, _ []string) error {
	csvPath, _ := cmd.Flags().GetString("csv")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return withApp(cmd, func(ctx context.Context, a *app) error {
		sheet, err := a.env.OpenSheet(ctx, csvPath)
		if err != nil {
			return err
		}
		rows, err := sheet.ReadRows(ctx)
		if err != nil {
			return fmt.Errorf("read sheet: %w", err)
		}
		slog.Info("Pulling sheet rows", log.FieldOperation, log.OpImport, log.FieldCount, len(rows))
		return printReport(cmd.OutOrStdout(), importRows(ctx, cmd, a.svc.Import, rows, quiet))
	})
}
