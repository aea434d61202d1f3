package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"expensewise/internal/analytics"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard summary for a period",
		Long: `Print total spending, top categories and the monthly budget gauge.

Periods: 7days, 14days, 30days (the current month, default).`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}
	cmd.Flags().StringP("period", "p", string(analytics.PeriodMonth), "Period preset (7days, 14days, 30days)")
	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("period")
	period, err := analytics.ParsePeriod(raw)
	if err != nil {
		return err
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		view, err := a.svc.Analytics.Dashboard(ctx, period)
		if err != nil {
			return err
		}
		return printDashboard(cmd, view)
	})
}

func printDashboard(cmd *cobra.Command, v analytics.DashboardView) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", v.Greeting)
	fmt.Fprintf(tw, "Period\t%s to %s\n", v.Range.Start, v.Range.End)
	fmt.Fprintf(tw, "Total\t%s%s\n", v.Currency, v.Total.StringFixed(2))
	if b := v.Budget; b != nil {
		fmt.Fprintf(tw, "Budget\t%s%s of %s%s (%s%%, %s)\n",
			v.Currency, b.Spent.StringFixed(2), v.Currency, b.Budget.StringFixed(2),
			b.Percentage.StringFixed(1), b.Tier)
	}
	if len(v.TopCategories) > 0 {
		fmt.Fprintln(tw, "\nTop categories")
		for _, c := range v.TopCategories {
			fmt.Fprintf(tw, "  %s\t%s%s\n", c.Label, v.Currency, c.Amount.StringFixed(2))
		}
	}
	return tw.Flush()
}
