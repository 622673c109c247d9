// Package engine implements the invoice-to-price-catalog reconciliation
// engine: quantity-split allocation, confidence scoring, the override
// cascade, and issue classification.
package engine

import (
	"github.com/shopspring/decimal"
)

// Allocation is the integer split of a purchased quantity between
// standard-priced and promo-priced units, with the cost that split
// recomputes to.
type Allocation struct {
	ComputedCost decimal.Decimal
	StdQty       int
	PromoQty     int
}

// Allocate searches every split of qty between the standard and promo
// legs and returns the one whose recomputed cost is closest to the
// recorded line total. The search space is exactly qty+1 candidates, so
// an exhaustive scan is both correct and cheap for invoice-sized
// quantities.
//
// Ties keep the most-standard split: when the two prices are identical
// every candidate costs the same, and the whole quantity lands on the
// standard leg.
func Allocate(qty int, recorded, stdPrice, promoPrice decimal.Decimal) Allocation {
	best := Allocation{
		StdQty:       qty,
		PromoQty:     0,
		ComputedCost: stdPrice.Mul(decimal.NewFromInt(int64(qty))),
	}
	bestDiff := best.ComputedCost.Sub(recorded).Abs()

	for std := qty - 1; std >= 0; std-- {
		cost := splitCost(std, qty-std, stdPrice, promoPrice)
		diff := cost.Sub(recorded).Abs()
		if diff.LessThan(bestDiff) {
			best = Allocation{StdQty: std, PromoQty: qty - std, ComputedCost: cost}
			bestDiff = diff
		}
	}

	return best
}

// splitCost recomputes the line total for an explicit split. The override
// cascade reuses it so manual corrections flow through the identical
// formula as the automatic search.
func splitCost(stdQty, promoQty int, stdPrice, promoPrice decimal.Decimal) decimal.Decimal {
	return stdPrice.Mul(decimal.NewFromInt(int64(stdQty))).
		Add(promoPrice.Mul(decimal.NewFromInt(int64(promoQty))))
}
