package engine

import (
	"fmt"
	"sort"

	"github.com/rowanfields/pricelens/internal/model"
)

// Session is the durable review state the engine computes from: the
// reviewer's row overrides, the bulk-accepted item codes, and the
// confidence threshold. It is a plain value with no behavior of its own;
// every mutation is followed by a full Recompute.
type Session struct {
	Overrides map[int]model.RowOverride
	Accepted  map[string]bool
	Threshold float64
}

// NewSession returns an empty session with the given threshold. The
// threshold is clamped into the usable range.
func NewSession(threshold float64) Session {
	return Session{
		Overrides: make(map[int]model.RowOverride),
		Accepted:  make(map[string]bool),
		Threshold: ClampThreshold(threshold),
	}
}

// Accept marks an item code as bulk-accepted: its rows classify as passed
// without any change to their underlying data.
func (s *Session) Accept(itemCode string) {
	if s.Accepted == nil {
		s.Accepted = make(map[string]bool)
	}
	s.Accepted[itemCode] = true
}

// Unaccept removes an item code from the bulk-accept set.
func (s *Session) Unaccept(itemCode string) {
	delete(s.Accepted, itemCode)
}

// ClearOverride removes the override for a row. Removing every override
// from a row reproduces the automatic enrichment exactly.
func (s *Session) ClearOverride(rowIndex int) {
	delete(s.Overrides, rowIndex)
}

// AcceptedCodes returns the bulk-accepted item codes in sorted order.
func (s Session) AcceptedCodes() []string {
	codes := make([]string, 0, len(s.Accepted))
	for code := range s.Accepted {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// QuantityConflictError reports an override whose quantities do not form
// a valid split: each leg must be non-negative and together they cannot
// exceed the row's purchased quantity. The override is rejected outright,
// never clamped: the attempted and maximum values are surfaced so the
// host can drive a correction dialog.
type QuantityConflictError struct {
	RowIndex int
	StdQty   int
	PromoQty int
	Max      int
}

// Attempted is the combined quantity the reviewer tried to apply.
func (e *QuantityConflictError) Attempted() int {
	return e.StdQty + e.PromoQty
}

func (e *QuantityConflictError) Error() string {
	if e.StdQty < 0 || e.PromoQty < 0 {
		return fmt.Sprintf("row %d: override quantities std=%d promo=%d cannot be negative",
			e.RowIndex, e.StdQty, e.PromoQty)
	}
	return fmt.Sprintf("row %d: override quantities total %d, exceeding the purchased quantity %d",
		e.RowIndex, e.Attempted(), e.Max)
}
