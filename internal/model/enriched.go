package model

import "github.com/shopspring/decimal"

// MatchCategory is the classification outcome of an invoice row.
type MatchCategory string

// Match category constants.
const (
	CategoryPassed   MatchCategory = "passed"
	CategoryNotFound MatchCategory = "not-found"
	CategoryNoPeriod MatchCategory = "no-period"
	CategoryLowMatch MatchCategory = "low-match"
)

// EnrichedRow is an invoice row plus everything the engine derived for it.
// Derived fields are rebuilt on every recompute; only the embedded raw row
// and the override map are durable.
type EnrichedRow struct {
	InvoiceRow
	MatchedPeriod     *Period
	Trace             []string
	StdQty            int
	PromoQty          int
	ConfidencePercent int
	ComputedCost      decimal.Decimal
	CostDifference    decimal.Decimal
	Category          MatchCategory
	Scorable          bool
}

// Classified reports whether the row participates in classification.
// Inert rows never do.
func (r EnrichedRow) Classified() bool {
	return r.Category != ""
}
