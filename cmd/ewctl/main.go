// Command ewctl manages an expensewise store from the terminal: bulk
// import and export, summaries, resets and spreadsheet sync.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expensewise/internal/cli"
	"expensewise/internal/log"
	"expensewise/internal/services"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ewctl",
		Short: "Manage expensewise data from the terminal",
		Long: `ewctl works directly against the configured store (DATA_BACKEND).

Settings come from the environment and an optional .env file, the same
ones read by the expensewise server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(importCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(summaryCmd())
	root.AddCommand(resetCmd())
	root.AddCommand(sheetsCmd())
	return root
}

// app is what a subcommand runs against.
type app struct {
	env *cli.Env
	svc *services.Services
}

// withApp bootstraps the environment, opens the store and runs fn. Writes
// are announced on the change queue when AMQP is configured and reachable.
// Everything is closed when fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	env, err := cli.Bootstrap(log.ComponentCLI)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, cleanup, err := env.OpenStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			env.Logger.Warn("Failed to close store", "error", err)
		}
	}()

	pub, err := env.NewAMQPClient(env.Config.AMQPQueue)
	if err != nil {
		env.Logger.Warn("Change publishing disabled", "error", err)
		pub = nil
	}
	if pub != nil {
		defer pub.Close()
	}

	return fn(ctx, &app{env: env, svc: services.New(cli.ServiceDeps(store, pub))})
}

func main() {
	ctx, cancel := cli.SignalContext()
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
