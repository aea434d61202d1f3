// Package cli provides the bootstrap shared by cmd/expensewise,
// cmd/expensewise-worker and cmd/ewctl.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"expensewise/internal/amqp"
	"expensewise/internal/backend"
	"expensewise/internal/config"
	"expensewise/internal/log"
	"expensewise/internal/services"
	"expensewise/internal/sheets"
	"expensewise/internal/sheets/csvfile"
	gsheet "expensewise/internal/sheets/google"
	"expensewise/internal/storage"
)

// DefaultCSVPath is the local mirror used when no spreadsheet is configured.
const DefaultCSVPath = "data/expenses.csv"

// Env is the runtime every binary starts from.
type Env struct {
	Config *config.Config
	Logger *log.Logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Bootstrap loads .env and the environment, validates the configuration and
// installs the process logger as the slog default.
func Bootstrap(component string) (*Env, error) {
	LoadEnvFile()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logCfg, err := log.ConfigFrom(cfg.LogLevel, cfg.LogFormat, component)
	if err != nil {
		return nil, err
	}
	logger := log.New(logCfg)
	log.SetDefault(logger)
	return &Env{Config: cfg, Logger: logger}, nil
}

// MustBootstrap is Bootstrap for main functions: it exits on failure.
func MustBootstrap(component string) *Env {
	env, err := Bootstrap(component)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return env
}

// OpenStore opens the configured entity store.
func (e *Env) OpenStore(ctx context.Context) (*storage.Store, backend.CleanupFunc, error) {
	bcfg, err := backend.FromAppConfig(e.Config)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(e.Logger.WithComponent(log.ComponentBackend).Slog()).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, nil, err
	}
	return res.Store, res.Cleanup, nil
}

// NewAMQPClient connects a client bound to queue. It returns nil without
// error when AMQP_URL is unset.
func (e *Env) NewAMQPClient(queue string) (*amqp.Client, error) {
	if e.Config.AMQPURL == "" {
		return nil, nil
	}
	c, err := amqp.NewClient(e.Config.AMQPURL, e.Config.AMQPExchange, queue)
	if err != nil {
		return nil, fmt.Errorf("connect amqp queue %s: %w", queue, err)
	}
	e.Logger.Info("Initialized AMQP client", "exchange", e.Config.AMQPExchange, "queue", queue)
	return c, nil
}

// ServiceDeps builds service dependencies, leaving Publisher unset when
// there is no client so the interface stays nil.
func ServiceDeps(store *storage.Store, pub *amqp.Client) services.Deps {
	d := services.Deps{Store: store}
	if pub != nil {
		d.Publisher = pub
	}
	return d
}

// Sheet is a spreadsheet supporting every row operation.
type Sheet interface {
	sheets.RowReader
	sheets.RowWriter
	sheets.RowUpserter
}

// OpenSheet returns the Google Sheets mirror when a spreadsheet id is
// configured and a local CSV file at csvPath otherwise.
func (e *Env) OpenSheet(ctx context.Context, csvPath string) (Sheet, error) {
	if e.Config.SheetsEnabled() {
		c, err := gsheet.New(ctx, e.Config.GoogleSpreadsheetID, e.Config.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize google sheets: %w", err)
		}
		e.Logger.Info("Google Sheets mirror enabled", "spreadsheet_id", e.Config.GoogleSpreadsheetID, "sheet", e.Config.GoogleSheetName)
		return c, nil
	}
	if csvPath == "" {
		csvPath = DefaultCSVPath
	}
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, fmt.Errorf("create csv directory: %w", err)
	}
	e.Logger.Info("Using local CSV mirror", "path", csvPath)
	return csvfile.New(csvPath), nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
