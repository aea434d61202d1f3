// Package google mirrors expenses into a Google Sheets spreadsheet. Rows
// are keyed by the ID column; the ID to line index is cached for a short
// time so a burst of upserts does not re-read the sheet on every call.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"expensewise/internal/log"
	"expensewise/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

func sheetsLog() *slog.Logger { return log.ForComponent(log.ComponentSheets) }

const (
	defaultSheetName = "Expenses"
	defaultCacheTTL  = 2 * time.Minute
)

// table is the cell-level surface of one sheet. Lines are 1-based and
// include the header line.
type table interface {
	readAll(ctx context.Context) ([][]string, error)
	writeRow(ctx context.Context, line int, values []string) error
	appendRow(ctx context.Context, values []string) error
	replaceAll(ctx context.Context, values [][]string) error
	deleteRow(ctx context.Context, line int) error
}

// Client implements the sheets ports over a single sheet.
type Client struct {
	tbl table

	mu                 sync.Mutex
	rowIndex           map[string]int
	hasHeader          bool
	cacheExpiresAt     time.Time
	cacheValidDuration time.Duration
}

var (
	_ sheets.RowReader   = (*Client)(nil)
	_ sheets.RowWriter   = (*Client)(nil)
	_ sheets.RowUpserter = (*Client)(nil)
)

// New connects to spreadsheetID using service account credentials from
// the environment. sheetName defaults to "Expenses".
func New(ctx context.Context, spreadsheetID, sheetName string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = defaultSheetName
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return newClient(&sheetTable{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}), nil
}

func newClient(tbl table) *Client {
	return &Client{tbl: tbl, cacheValidDuration: defaultCacheTTL}
}

// newSheetsService initializes a Sheets service using service account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	sheetsLog().InfoContext(ctx, "Google Sheets service created", "credentials_size", len(credentialsJSON))
	return svc, nil
}

func (c *Client) ReadRows(ctx context.Context) ([]sheets.ExpenseRow, error) {
	values, err := c.tbl.readAll(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := sheets.ParseTable(values)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.storeIndex(len(values) > 0, rows)
	c.mu.Unlock()
	return rows, nil
}

func (c *Client) WriteRows(ctx context.Context, rows []sheets.ExpenseRow) error {
	defer c.InvalidateRowCache()
	return c.tbl.replaceAll(ctx, sheets.Table(rows))
}

// UpsertRow overwrites the line holding row.ID, or appends it.
func (c *Client) UpsertRow(ctx context.Context, row sheets.ExpenseRow) error {
	if strings.TrimSpace(row.ID) == "" {
		return errors.New("row id is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureIndex(ctx); err != nil {
		return err
	}
	if line, ok := c.rowIndex[row.ID]; ok {
		if err := c.tbl.writeRow(ctx, line, row.Record()); err != nil {
			c.invalidate()
			return err
		}
		return nil
	}

	if !c.hasHeader {
		if err := c.tbl.appendRow(ctx, sheets.Header); err != nil {
			c.invalidate()
			return err
		}
		c.hasHeader = true
	}
	if err := c.tbl.appendRow(ctx, row.Record()); err != nil {
		c.invalidate()
		return err
	}
	// Appends land after the last non-empty line, which may not be
	// max(index)+1 if someone edited the sheet by hand.
	c.invalidate()
	return nil
}

// DeleteRow removes the line holding id. Unknown ids are ignored.
func (c *Client) DeleteRow(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureIndex(ctx); err != nil {
		return err
	}
	line, ok := c.rowIndex[id]
	if !ok {
		return nil
	}
	defer c.invalidate()
	return c.tbl.deleteRow(ctx, line)
}

// InvalidateRowCache forces the next write to re-read the sheet.
func (c *Client) InvalidateRowCache() {
	c.mu.Lock()
	c.invalidate()
	c.mu.Unlock()
}

func (c *Client) invalidate() {
	c.rowIndex = nil
	c.cacheExpiresAt = time.Time{}
}

func (c *Client) ensureIndex(ctx context.Context) error {
	if c.rowIndex != nil && time.Now().Before(c.cacheExpiresAt) {
		return nil
	}
	values, err := c.tbl.readAll(ctx)
	if err != nil {
		return err
	}
	rows, err := sheets.ParseTable(values)
	if err != nil {
		return err
	}
	c.storeIndex(len(values) > 0, rows)
	return nil
}

func (c *Client) storeIndex(hasHeader bool, rows []sheets.ExpenseRow) {
	idx := make(map[string]int, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		if _, dup := idx[r.ID]; !dup {
			idx[r.ID] = r.Line
		}
	}
	c.rowIndex = idx
	c.hasHeader = hasHeader
	c.cacheExpiresAt = time.Now().Add(c.cacheValidDuration)
}

// sheetTable talks to the Sheets API.
type sheetTable struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string

	mu      sync.Mutex
	sheetID *int64
}

func (t *sheetTable) columns() string {
	return fmt.Sprintf("%s!A:%c", t.sheetName, 'A'+len(sheets.Header)-1)
}

func (t *sheetTable) readAll(ctx context.Context) ([][]string, error) {
	rng := t.columns()
	resp, err := t.svc.Spreadsheets.Values.Get(t.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	return out, nil
}

func (t *sheetTable) writeRow(ctx context.Context, line int, values []string) error {
	rng := fmt.Sprintf("%s!A%d", t.sheetName, line)
	vr := &gsheet.ValueRange{Values: [][]any{toCells(values)}}
	_, err := t.svc.Spreadsheets.Values.Update(t.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", rng, err)
	}
	return nil
}

func (t *sheetTable) appendRow(ctx context.Context, values []string) error {
	rng := t.columns()
	vr := &gsheet.ValueRange{Values: [][]any{toCells(values)}}
	_, err := t.svc.Spreadsheets.Values.Append(t.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	return nil
}

func (t *sheetTable) replaceAll(ctx context.Context, values [][]string) error {
	rng := t.columns()
	if _, err := t.svc.Spreadsheets.Values.Clear(t.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", rng, err)
	}
	cells := make([][]any, len(values))
	for i, row := range values {
		cells[i] = toCells(row)
	}
	start := fmt.Sprintf("%s!A1", t.sheetName)
	_, err := t.svc.Spreadsheets.Values.Update(t.spreadsheetID, start, &gsheet.ValueRange{Values: cells}).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %s: %w", start, err)
	}
	return nil
}

func (t *sheetTable) deleteRow(ctx context.Context, line int) error {
	id, err := t.resolveSheetID(ctx)
	if err != nil {
		return err
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			DeleteDimension: &gsheet.DeleteDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: int64(line - 1),
					EndIndex:   int64(line),
				},
			},
		}},
	}
	if _, err := t.svc.Spreadsheets.BatchUpdate(t.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete line %d of %s: %w", line, t.sheetName, err)
	}
	return nil
}

func (t *sheetTable) resolveSheetID(ctx context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sheetID != nil {
		return *t.sheetID, nil
	}
	ss, err := t.svc.Spreadsheets.Get(t.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet: %w", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == t.sheetName {
			id := s.Properties.SheetId
			t.sheetID = &id
			return id, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", t.sheetName)
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toCells(in []string) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
