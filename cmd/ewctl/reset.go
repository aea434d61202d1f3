package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("refusing to delete all data without --yes")

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every expense, subscription, loan, budget, filter and the profile",
		Args:  cobra.NoArgs,
		RunE:  runReset,
	}
	cmd.Flags().Bool("yes", false, "Confirm deleting all data")
	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		return errResetNotConfirmed
	}
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.svc.Reset.ClearAll(ctx); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "All data deleted")
		return err
	})
}
