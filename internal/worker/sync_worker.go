// Package worker holds the consumers run by the background worker: the
// sync worker mirrors expense changes into a spreadsheet and the reminder
// worker turns renewal reminders into notifications.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"expensewise/internal/amqp"
	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/log"
	"expensewise/internal/sheets"
	"expensewise/internal/storage"
)

func workerLog() *slog.Logger { return log.ForComponent(log.ComponentWorker) }

// SyncWorker applies expense change messages to a spreadsheet.
type SyncWorker struct {
	rows   sheets.RowUpserter
	writer sheets.RowWriter
	store  *storage.Store
}

// NewSyncWorker creates a sync worker. writer and store are optional;
// without them clear messages and the startup resync are skipped.
func NewSyncWorker(rows sheets.RowUpserter, writer sheets.RowWriter, store *storage.Store) *SyncWorker {
	return &SyncWorker{rows: rows, writer: writer, store: store}
}

// HandleChange processes a single change message from AMQP. Changes to
// other namespaces are acknowledged and ignored.
func (w *SyncWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	if msg.Namespace != string(storage.Expenses) {
		workerLog().DebugContext(ctx, "Ignoring change outside expenses",
			"namespace", msg.Namespace, "op", msg.Op)
		return nil
	}

	workerLog().InfoContext(ctx, "Processing change message",
		"id", msg.ID,
		"op", msg.Op,
		"timestamp", msg.Timestamp)

	switch msg.Op {
	case amqp.OpPut:
		return w.handlePut(ctx, msg)
	case amqp.OpDelete:
		if msg.ID == "" {
			return fmt.Errorf("%w: delete without id", amqp.ErrMalformed)
		}
		if err := w.rows.DeleteRow(ctx, msg.ID); err != nil {
			return fmt.Errorf("delete row %s: %w", msg.ID, err)
		}
		workerLog().InfoContext(ctx, "Deleted expense row", "id", msg.ID)
		return nil
	case amqp.OpClear:
		if w.writer == nil {
			workerLog().WarnContext(ctx, "No row writer configured, skipping clear")
			return nil
		}
		if err := w.writer.WriteRows(ctx, nil); err != nil {
			return fmt.Errorf("clear sheet: %w", err)
		}
		workerLog().InfoContext(ctx, "Cleared expense sheet")
		return nil
	default:
		return fmt.Errorf("%w: unknown op %q", amqp.ErrMalformed, msg.Op)
	}
}

func (w *SyncWorker) handlePut(ctx context.Context, msg *amqp.ChangeMessage) error {
	var e core.Expense
	switch {
	case len(msg.Payload) > 0:
		if err := json.Unmarshal(msg.Payload, &e); err != nil {
			return fmt.Errorf("%w: decode expense: %v", amqp.ErrMalformed, err)
		}
	case w.store != nil:
		// Older producers only sent the id.
		stored, err := w.store.Expenses.GetByID(ctx, msg.ID)
		if err != nil {
			return fmt.Errorf("get expense %s: %w", msg.ID, err)
		}
		e = stored
	default:
		return fmt.Errorf("%w: put without payload", amqp.ErrMalformed)
	}
	if e.ID == "" {
		e.ID = msg.ID
	}

	row := sheets.FromExpense(e)
	if err := w.rows.UpsertRow(ctx, row); err != nil {
		return fmt.Errorf("upsert row %s: %w", e.ID, err)
	}

	workerLog().InfoContext(ctx, "Successfully synced expense",
		log.FieldOperation, log.OpSync,
		"id", e.ID,
		"date", row.Date,
		"category", row.Category,
		"amount", row.Amount)
	return nil
}

// StartupSync rewrites the whole sheet from the store. This recovers from
// missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSync(ctx context.Context) error {
	if w.store == nil || w.writer == nil {
		workerLog().InfoContext(ctx, "Startup sync skipped, store or writer not configured")
		return nil
	}

	expenses, err := w.store.Expenses.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list expenses for startup sync: %w", err)
	}
	analytics.SortByDateDesc(expenses)

	rows := make([]sheets.ExpenseRow, len(expenses))
	for i, e := range expenses {
		rows[i] = sheets.FromExpense(e)
	}
	if err := w.writer.WriteRows(ctx, rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}

	workerLog().InfoContext(ctx, "Startup sync completed",
		log.FieldOperation, log.OpSync, log.FieldCount, len(rows))
	return nil
}
