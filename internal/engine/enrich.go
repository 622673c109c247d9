package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rowanfields/pricelens/internal/catalog"
	"github.com/rowanfields/pricelens/internal/common"
	"github.com/rowanfields/pricelens/internal/model"
)

// Engine reconciles an invoice dataset against a price catalog. It holds
// only the two raw inputs; everything else is derived per recompute, so
// identical inputs always produce identical output.
type Engine struct {
	progress func(done, total int)
	index    catalog.Index
	rows     []model.InvoiceRow
	refDate  time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithReferenceDate sets the document-level date used for period lookup
// on rows that carry no date of their own.
func WithReferenceDate(t time.Time) Option {
	return func(e *Engine) { e.refDate = t }
}

// WithProgress installs a callback invoked after each row is enriched.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Engine) { e.progress = fn }
}

// New builds an engine over a dataset and a raw catalog.
func New(rows []model.InvoiceRow, entries []model.CatalogEntry, opts ...Option) *Engine {
	e := &Engine{
		rows:  rows,
		index: catalog.BuildIndex(entries),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Totals are the dataset-wide aggregates recomputed alongside the rows.
// They cover classified rows only.
type Totals struct {
	RecordedCost   decimal.Decimal
	ComputedCost   decimal.Decimal
	CostDifference decimal.Decimal
	StdUnits       int
	PromoUnits     int
}

// View is the full enriched output of one recompute: rows in input order,
// the classification summary, aggregate totals, and any overrides that no
// longer fit their row (stale after a catalog change) and were bypassed.
type View struct {
	Rows      []model.EnrichedRow
	Conflicts []QuantityConflictError
	Summary   model.Summary
	Totals    Totals
}

// Recompute derives the enriched view for a session. It is a pure
// function of (dataset, catalog, session): every session mutation is
// expected to be followed by a fresh call rather than a partial update.
func (e *Engine) Recompute(s Session) View {
	view := View{
		Rows: make([]model.EnrichedRow, 0, len(e.rows)),
		Totals: Totals{
			RecordedCost:   decimal.Zero,
			ComputedCost:   decimal.Zero,
			CostDifference: decimal.Zero,
		},
	}
	threshold := ClampThreshold(s.Threshold)

	for i, row := range e.rows {
		enriched, conflict := e.deriveRow(row, s.Overrides[row.Index], threshold, s.Accepted)
		if conflict != nil {
			view.Conflicts = append(view.Conflicts, *conflict)
		}
		if enriched.Classified() {
			view.Totals.RecordedCost = view.Totals.RecordedCost.Add(enriched.RecordedCost)
			view.Totals.ComputedCost = view.Totals.ComputedCost.Add(enriched.ComputedCost)
			view.Totals.CostDifference = view.Totals.CostDifference.Add(enriched.CostDifference)
			view.Totals.StdUnits += enriched.StdQty
			view.Totals.PromoUnits += enriched.PromoQty
		}
		view.Rows = append(view.Rows, enriched)
		if e.progress != nil {
			e.progress(i+1, len(e.rows))
		}
	}

	view.Summary = BuildSummary(view.Rows, s.AcceptedCodes())
	return view
}

// ApplyOverride validates a reviewer correction against the row's current
// derivation and stores it in the session. A rejected override never
// enters the session, so the conservation invariant holds for all stored
// state. An empty override clears any existing one.
func (e *Engine) ApplyOverride(s *Session, rowIndex int, ov model.RowOverride) error {
	var row *model.InvoiceRow
	for i := range e.rows {
		if e.rows[i].Index == rowIndex {
			row = &e.rows[i]
			break
		}
	}
	if row == nil {
		return fmt.Errorf("%w: row %d", common.ErrRowNotFound, rowIndex)
	}

	if ov.Empty() {
		s.ClearOverride(rowIndex)
		return nil
	}

	_, conflict := e.deriveRow(*row, ov, ClampThreshold(s.Threshold), s.Accepted)
	if conflict != nil {
		return conflict
	}

	if s.Overrides == nil {
		s.Overrides = make(map[int]model.RowOverride)
	}
	s.Overrides[rowIndex] = ov
	return nil
}

// deriveRow is the single derivation path for both automatic enrichment
// and the override cascade. Overridden fields substitute into the same
// formulas; everything downstream of the substitution is identical, so
// clearing an override reproduces the automatic result exactly.
func (e *Engine) deriveRow(row model.InvoiceRow, ov model.RowOverride, threshold float64, accepted map[string]bool) (model.EnrichedRow, *QuantityConflictError) {
	enriched := model.EnrichedRow{InvoiceRow: row}

	if row.Inert() {
		enriched.Trace = append(enriched.Trace, "inert row: zero quantity or blank item code")
		return enriched, nil
	}

	ref := e.refDate
	if row.Date != nil {
		ref = *row.Date
	}

	period, status := catalog.FindPeriod(e.index, row.ItemCode, ref)
	switch status {
	case catalog.StatusNotFound:
		enriched.Category = model.CategoryNotFound
		enriched.Trace = append(enriched.Trace,
			fmt.Sprintf("item %s not present in price catalog", row.ItemCode))
		return e.applyAcceptance(enriched, accepted), nil
	case catalog.StatusNoPeriod:
		enriched.Category = model.CategoryNoPeriod
		enriched.Trace = append(enriched.Trace,
			fmt.Sprintf("no price period for item %s covers %s", row.ItemCode, ref.Format("2006-01-02")))
		return e.applyAcceptance(enriched, accepted), nil
	case catalog.StatusFound:
	}

	enriched.MatchedPeriod = &period
	enriched.Trace = append(enriched.Trace,
		fmt.Sprintf("matched period %s: std=%s promo=%s",
			period.Label(), period.StandardPrice.String(), period.PromoPrice.String()))

	stdPrice, promoPrice := e.effectivePrices(&enriched, period, ov)

	qty := row.PurchasedQty()
	auto := Allocate(qty, row.RecordedCost, stdPrice, promoPrice)
	enriched.Trace = append(enriched.Trace,
		fmt.Sprintf("allocated std=%d promo=%d computed=%s",
			auto.StdQty, auto.PromoQty, auto.ComputedCost.String()))

	stdQty, promoQty := auto.StdQty, auto.PromoQty
	if ov.StandardQty != nil {
		stdQty = *ov.StandardQty
	}
	if ov.PromoQty != nil {
		promoQty = *ov.PromoQty
	}

	var conflict *QuantityConflictError
	if stdQty < 0 || promoQty < 0 || stdQty+promoQty > qty {
		// The override does not form a valid split for this row. Fall
		// back to the automatic split and surface the conflict; clamping
		// here would misrepresent the reviewer's correction.
		conflict = &QuantityConflictError{RowIndex: row.Index, StdQty: stdQty, PromoQty: promoQty, Max: qty}
		enriched.Trace = append(enriched.Trace,
			fmt.Sprintf("override rejected: invalid split std=%d promo=%d (max %d)", stdQty, promoQty, qty))
		stdQty, promoQty = auto.StdQty, auto.PromoQty
	} else if stdQty != auto.StdQty || promoQty != auto.PromoQty {
		enriched.Trace = append(enriched.Trace,
			fmt.Sprintf("override applied: std=%d promo=%d", stdQty, promoQty))
	}

	enriched.StdQty = stdQty
	enriched.PromoQty = promoQty
	enriched.ComputedCost = splitCost(stdQty, promoQty, stdPrice, promoPrice)
	enriched.CostDifference = enriched.ComputedCost.Sub(row.RecordedCost)

	// Single-unit and return lines cannot meaningfully split, so they are
	// accepted without cost matching.
	if qty == 1 || row.IsReturn {
		reason := "single-unit line"
		if row.IsReturn {
			reason = "return line"
		}
		enriched.Category = model.CategoryPassed
		enriched.ConfidencePercent = 100
		enriched.Scorable = true
		enriched.Trace = append(enriched.Trace, reason+": accepted without cost matching")
		return enriched, conflict
	}

	score := ScoreCost(enriched.ComputedCost, row.RecordedCost)
	if !score.Scorable {
		enriched.Category = model.CategoryNoPeriod
		enriched.Trace = append(enriched.Trace,
			"recorded cost is zero: confidence undefined, routed to no-period")
		return e.applyAcceptance(enriched, accepted), conflict
	}

	enriched.ConfidencePercent = score.Percent
	enriched.Scorable = true
	enriched.Trace = append(enriched.Trace,
		fmt.Sprintf("confidence %d%% against threshold %.0f%%", score.Percent, threshold*100))

	if score.Acceptable(threshold) {
		enriched.Category = model.CategoryPassed
	} else {
		enriched.Category = model.CategoryLowMatch
	}
	return e.applyAcceptance(enriched, accepted), conflict
}

// applyAcceptance forces bulk-accepted item codes into the passed
// category. Acceptance is a review decision, not a data correction: the
// confidence and computed cost stay exactly as derived.
func (e *Engine) applyAcceptance(enriched model.EnrichedRow, accepted map[string]bool) model.EnrichedRow {
	if enriched.Category != model.CategoryPassed && accepted[enriched.ItemCode] {
		enriched.Category = model.CategoryPassed
		enriched.Trace = append(enriched.Trace, "item bulk-accepted by reviewer")
	}
	return enriched
}

// effectivePrices resolves the per-unit prices for both legs, applying
// reviewer price overrides where they parse. An unparseable override
// degrades to the period price rather than failing the row.
func (e *Engine) effectivePrices(enriched *model.EnrichedRow, period model.Period, ov model.RowOverride) (stdPrice, promoPrice decimal.Decimal) {
	stdPrice, promoPrice = period.StandardPrice, period.PromoPrice

	if ov.StandardPrice != "" {
		if p, err := decimal.NewFromString(ov.StandardPrice); err == nil {
			stdPrice = p
			enriched.Trace = append(enriched.Trace, "standard price overridden to "+p.String())
		} else {
			enriched.Trace = append(enriched.Trace,
				"standard price override unparseable, using period price")
		}
	}
	if ov.PromoPrice != "" {
		if p, err := decimal.NewFromString(ov.PromoPrice); err == nil {
			promoPrice = p
			enriched.Trace = append(enriched.Trace, "promo price overridden to "+p.String())
		} else {
			enriched.Trace = append(enriched.Trace,
				"promo price override unparseable, using period price")
		}
	}
	return stdPrice, promoPrice
}
