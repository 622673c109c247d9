package ingest

import (
	"strings"

	"github.com/rowanfields/pricelens/internal/model"
)

// returnTokens are the document-type markers that flag a line as a
// return/refund. Matched case-insensitively against the return column.
var returnTokens = map[string]bool{
	"return":      true,
	"returns":     true,
	"refund":      true,
	"credit":      true,
	"credit note": true,
	"cn":          true,
}

// ParseInvoiceRows converts raw records into invoice rows. The header is
// resolved once against the alias table; every column, recognized or not,
// is preserved in order as a passthrough display column.
//
// Row indices are assigned from the record position so they stay stable
// no matter how the host later filters or sorts the view.
func ParseInvoiceRows(header []string, records [][]string) []model.InvoiceRow {
	fields := ResolveHeader(header)

	rows := make([]model.InvoiceRow, 0, len(records))
	for i, record := range records {
		row := model.InvoiceRow{
			Index:        i,
			ItemCode:     fields.Cell(record, FieldItemCode),
			Quantity:     coerceInt(fields.Cell(record, FieldQuantity)),
			RecordedCost: coerceDecimal(fields.Cell(record, FieldRecordedCost)),
			Date:         coerceDate(fields.Cell(record, FieldDate)),
			Columns:      passthroughColumns(header, record),
		}
		row.IsReturn = row.Quantity < 0 || isReturnMark(fields.Cell(record, FieldReturnMark))
		rows = append(rows, row)
	}
	return rows
}

func isReturnMark(s string) bool {
	return returnTokens[strings.ToLower(strings.TrimSpace(s))]
}

func passthroughColumns(header []string, record []string) []model.Column {
	cols := make([]model.Column, 0, len(record))
	for i, value := range record {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		cols = append(cols, model.Column{Name: name, Value: value})
	}
	return cols
}
