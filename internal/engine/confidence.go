package engine

import (
	"github.com/shopspring/decimal"
)

// Threshold bounds. The classifier never evaluates confidence below 80%,
// so caller-supplied thresholds are clamped into this range.
const (
	MinThreshold = 0.80
	MaxThreshold = 1.00
)

// ClampThreshold forces a caller-supplied threshold into the usable range.
func ClampThreshold(t float64) float64 {
	if t < MinThreshold {
		return MinThreshold
	}
	if t > MaxThreshold {
		return MaxThreshold
	}
	return t
}

// Score is the result of comparing a recomputed cost against the invoice's
// recorded cost.
type Score struct {
	// Raw is the confidence as a fraction in [0, 1].
	Raw decimal.Decimal
	// Percent is Raw rounded to the nearest whole percent for display.
	Percent int
	// Scorable is false when the recorded cost is zero: division by a
	// zero ground truth is never performed.
	Scorable bool
}

// ScoreCost converts the discrepancy between a computed and a recorded
// cost into a confidence score: max(0, 1 - |computed - recorded| / recorded).
func ScoreCost(computed, recorded decimal.Decimal) Score {
	if recorded.IsZero() {
		return Score{Scorable: false}
	}

	ratio := computed.Sub(recorded).Abs().Div(recorded.Abs())
	raw := decimal.NewFromInt(1).Sub(ratio)
	if raw.IsNegative() {
		raw = decimal.Zero
	}

	percent := int(raw.Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	return Score{Raw: raw, Percent: percent, Scorable: true}
}

// Acceptable reports whether the score passes the given threshold. The
// comparison uses the unrounded fraction so display rounding can never
// flip a pass/fail decision.
func (s Score) Acceptable(threshold float64) bool {
	if !s.Scorable {
		return false
	}
	return s.Raw.GreaterThanOrEqual(decimal.NewFromFloat(ClampThreshold(threshold)))
}
