package catalog

import (
	"time"

	"github.com/rowanfields/pricelens/internal/model"
)

// LookupStatus is the outcome of a period lookup.
type LookupStatus int

// Lookup outcomes.
const (
	// StatusFound means a single active period was resolved.
	StatusFound LookupStatus = iota
	// StatusNoPeriod means the item exists but no period covers the date.
	StatusNoPeriod
	// StatusNotFound means the item code is absent from the catalog.
	StatusNotFound
)

// FindPeriod resolves the active price period for an item code on the
// reference date. When a malformed catalog produces overlapping periods,
// the period with the latest start date not exceeding the reference date
// wins.
func FindPeriod(idx Index, itemCode string, ref time.Time) (model.Period, LookupStatus) {
	periods, ok := idx[itemCode]
	if !ok {
		return model.Period{}, StatusNotFound
	}

	// Periods are sorted ascending by start, so the last covering period
	// is the one with the latest start date.
	best := -1
	for i, p := range periods {
		if p.Covers(ref) {
			best = i
		}
	}
	if best == -1 {
		return model.Period{}, StatusNoPeriod
	}
	return periods[best], StatusFound
}
