package model

// RowOverride holds a reviewer's corrections for a single invoice row,
// keyed by the row's original index. Every field is optional: absent
// fields fall back to the automatic allocation, so an override never has
// to restate values the engine already derived.
//
// Prices are carried as the literal strings the reviewer typed. They are
// parsed at recompute time with the same tolerance as catalog prices, so
// a garbled price degrades to the period price instead of failing.
type RowOverride struct {
	StandardQty   *int
	PromoQty      *int
	StandardPrice string
	PromoPrice    string
}

// Empty reports whether the override carries no corrections at all.
func (o RowOverride) Empty() bool {
	return o.StandardQty == nil && o.PromoQty == nil &&
		o.StandardPrice == "" && o.PromoPrice == ""
}
