// README: Google Sheets order ledger: sequential numbering, one row per item, cyclic row colors.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"mawad/internal/config"
	"mawad/internal/modules/agent"
	"mawad/internal/modules/chat"
)

var ErrUnavailable = errors.New("sheets: writer not configured")

const (
	statusNew    = "جديد"
	rowColumns   = 11
	timeLayout   = "2006-01-02_150405"
	preferredTab = "Sheet1"
)

// rowColors cycles by order number so all rows of one order share a shade.
var rowColors = []*sheets.Color{
	{Red: 0.85, Green: 0.92, Blue: 0.95},
	{Red: 0.95, Green: 0.85, Blue: 0.85},
	{Red: 0.85, Green: 0.95, Blue: 0.85},
	{Red: 0.95, Green: 0.95, Blue: 0.85},
	{Red: 0.92, Green: 0.85, Blue: 0.95},
	{Red: 0.95, Green: 0.9, Blue: 0.85},
}

type Writer struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetID       int64
	sheetName     string
}

// NewWriter connects to the configured spreadsheet. An empty spreadsheet ID
// yields a nil writer whose SaveOrder reports ErrUnavailable; the chat flow
// then degrades instead of crashing at startup.
func NewWriter(ctx context.Context, cfg config.SheetsConfig) (*Writer, error) {
	if cfg.SpreadsheetID == "" {
		log.Println("sheets: no spreadsheet configured, order persistence disabled")
		return nil, nil
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	} else {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: open spreadsheet: %w", err)
	}
	if len(meta.Sheets) == 0 {
		return nil, errors.New("sheets: spreadsheet has no sheets")
	}
	props := meta.Sheets[0].Properties
	for _, s := range meta.Sheets {
		if s.Properties.Title == preferredTab {
			props = s.Properties
			break
		}
	}

	log.Printf("sheets: connected to spreadsheet %s (tab %q)", cfg.SpreadsheetID, props.Title)
	return &Writer{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheetID:       props.SheetId,
		sheetName:     props.Title,
	}, nil
}

// SaveOrder appends one row per line item under the next sequential order
// number and paints the new rows with that order's cycle color. The color
// step is best effort; a formatting failure does not fail the save.
func (w *Writer) SaveOrder(ctx context.Context, order *chat.ExtractedOrder, summary string, ident agent.Identity) (int64, error) {
	if w == nil || w.svc == nil {
		return 0, ErrUnavailable
	}

	col, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.sheetName+"!A:A").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: read order column: %w", err)
	}
	num := nextOrderNumber(col.Values)
	startRow := len(col.Values) + 1

	rows := orderRows(order, summary, ident, num, time.Now().Format(timeLayout))
	_, err = w.svc.Spreadsheets.Values.Append(w.spreadsheetID, w.sheetName,
		&sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: append rows: %w", err)
	}

	if err := w.colorRows(ctx, num, startRow, startRow+len(rows)-1); err != nil {
		log.Printf("sheets: could not color rows %d-%d: %v", startRow, startRow+len(rows)-1, err)
	}

	log.Printf("sheets: saved order #%d for %s (%d rows)", num, ident.Name, len(rows))
	return num, nil
}

func (w *Writer) colorRows(ctx context.Context, orderNum int64, startRow, endRow int) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          w.sheetID,
					StartRowIndex:    int64(startRow - 1),
					EndRowIndex:      int64(endRow),
					StartColumnIndex: 0,
					EndColumnIndex:   rowColumns,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						BackgroundColor: orderColor(orderNum),
					},
				},
				Fields: "userEnteredFormat.backgroundColor",
			},
		}},
	}
	_, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, req).Context(ctx).Do()
	return err
}

// nextOrderNumber scans column A, skipping the header row and any cell that
// is not a plain integer, and returns max+1 (1 for an empty ledger).
func nextOrderNumber(column [][]interface{}) int64 {
	var max int64
	found := false
	for i, row := range column {
		if i == 0 || len(row) == 0 {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(fmt.Sprint(row[0])), 10, 64)
		if err != nil {
			continue
		}
		if !found || n > max {
			max = n
			found = true
		}
	}
	if !found {
		return 1
	}
	return max + 1
}

func orderColor(orderNum int64) *sheets.Color {
	return rowColors[orderNum%int64(len(rowColors))]
}

func orderRows(order *chat.ExtractedOrder, summary string, ident agent.Identity, num int64, timestamp string) [][]interface{} {
	rows := make([][]interface{}, 0, len(order.Items))
	for _, it := range order.Items {
		rows = append(rows, []interface{}{
			num, timestamp, ident.Name, ident.Phone,
			it.Category, itemDescription(it), it.Qty, it.Unit,
			summary, statusNew, order.Address,
		})
	}
	return rows
}

// itemDescription joins the product name with whichever specs are present.
func itemDescription(it chat.LineItem) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{it.Item, it.Spec1, it.Spec2, it.Spec3} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
