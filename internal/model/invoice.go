package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column is a passthrough display column from the source dataset. Order is
// preserved so the host can render the original file faithfully.
type Column struct {
	Name  string
	Value string
}

// InvoiceRow is one line of a purchase invoice as ingested. Index is the
// row's original position in the dataset and stays stable across any
// filtering or sorting the host applies.
type InvoiceRow struct {
	Date         *time.Time // line-level document date, when the file has one
	ItemCode     string
	Columns      []Column
	Index        int
	Quantity     int // signed; negative marks a refund line
	RecordedCost decimal.Decimal
	IsReturn     bool
}

// PurchasedQty is the absolute purchased unit count.
func (r InvoiceRow) PurchasedQty() int {
	if r.Quantity < 0 {
		return -r.Quantity
	}
	return r.Quantity
}

// Inert reports whether the row is excluded from enrichment and
// classification entirely.
func (r InvoiceRow) Inert() bool {
	return r.Quantity == 0 || strings.TrimSpace(r.ItemCode) == ""
}
