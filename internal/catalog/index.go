// Package catalog organizes raw price-catalog entries into per-item price
// histories and resolves the active period for a reference date.
package catalog

import (
	"sort"
	"strings"

	"github.com/rowanfields/pricelens/internal/model"
)

// Index maps an item code to its price periods, sorted ascending by start
// date.
type Index map[string][]model.Period

// BuildIndex groups raw catalog entries by item code and sorts each item's
// periods by start date. Input order does not matter.
//
// Entries without a parseable start date register the item code but
// contribute no usable period: lookups against such an item report
// "no period" rather than "not found". Entries without a promo price fall
// back to the standard price for the promotional leg.
func BuildIndex(entries []model.CatalogEntry) Index {
	idx := make(Index)
	for _, e := range entries {
		code := strings.TrimSpace(e.ItemCode)
		if code == "" {
			continue
		}
		if _, ok := idx[code]; !ok {
			idx[code] = nil
		}
		if e.PeriodStart == nil {
			continue
		}
		promo := e.StandardPrice
		if e.PromoPrice != nil {
			promo = *e.PromoPrice
		}
		idx[code] = append(idx[code], model.Period{
			Start:         *e.PeriodStart,
			End:           e.PeriodEnd,
			StandardPrice: e.StandardPrice,
			PromoPrice:    promo,
			Remark:        e.Remark,
		})
	}

	for code := range idx {
		periods := idx[code]
		sort.SliceStable(periods, func(i, j int) bool {
			return periods[i].Start.Before(periods[j].Start)
		})
	}

	return idx
}
