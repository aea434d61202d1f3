// Package sheets maps expenses to spreadsheet rows and defines the ports
// the spreadsheet adapters (CSV file, Google Sheets, memory) implement.
package sheets

import "context"

// Ports for outbound adapters.
type (
	// RowReader reads every expense row of a sheet.
	RowReader interface {
		ReadRows(ctx context.Context) ([]ExpenseRow, error)
	}

	// RowWriter replaces the content of a sheet with rows, header included.
	RowWriter interface {
		WriteRows(ctx context.Context, rows []ExpenseRow) error
	}

	// RowUpserter keeps a sheet in sync one expense at a time, keyed by
	// the ID column.
	RowUpserter interface {
		UpsertRow(ctx context.Context, row ExpenseRow) error
		DeleteRow(ctx context.Context, id string) error
	}
)
