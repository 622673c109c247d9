// Package model defines the core domain models used throughout the application.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogEntry is one raw price-catalog line as ingested from a source file.
// Numeric fields that could not be parsed arrive as zero; dates that could
// not be parsed arrive as nil.
type CatalogEntry struct {
	PeriodStart         *time.Time
	PeriodEnd           *time.Time
	PromoPrice          *decimal.Decimal
	ItemCode            string
	ProductCode         string
	ProductName         string
	Remark              string
	StandardPrice       decimal.Decimal
	StandardPriceTaxAdj decimal.Decimal
}

// Period is a date range during which an item's standard and promotional
// unit prices are fixed.
type Period struct {
	Start         time.Time
	End           *time.Time // nil means open-ended
	Remark        string
	StandardPrice decimal.Decimal
	PromoPrice    decimal.Decimal
}

// Covers reports whether the period is active on the given date.
func (p Period) Covers(date time.Time) bool {
	if date.Before(p.Start) {
		return false
	}
	if p.End != nil && date.After(*p.End) {
		return false
	}
	return true
}

// Label renders the period's date range for traces and display.
func (p Period) Label() string {
	const layout = "2006-01-02"
	if p.End == nil {
		return p.Start.Format(layout) + "..open"
	}
	return p.Start.Format(layout) + ".." + p.End.Format(layout)
}
