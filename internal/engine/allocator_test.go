package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAllocate(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name         string
		recorded     string
		stdPrice     string
		promoPrice   string
		wantComputed string
		qty          int
		wantStd      int
		wantPromo    int
	}{
		{
			name:         "exact split found",
			qty:          10,
			recorded:     "820",
			stdPrice:     "100",
			promoPrice:   "80",
			wantStd:      1,
			wantPromo:    9,
			wantComputed: "820",
		},
		{
			name:         "all standard when recorded matches full standard price",
			qty:          5,
			recorded:     "500",
			stdPrice:     "100",
			promoPrice:   "80",
			wantStd:      5,
			wantPromo:    0,
			wantComputed: "500",
		},
		{
			name:         "all promo when recorded matches full promo price",
			qty:          5,
			recorded:     "400",
			stdPrice:     "100",
			promoPrice:   "80",
			wantStd:      0,
			wantPromo:    5,
			wantComputed: "400",
		},
		{
			name:         "identical prices keep the standard allocation",
			qty:          7,
			recorded:     "700",
			stdPrice:     "100",
			promoPrice:   "100",
			wantStd:      7,
			wantPromo:    0,
			wantComputed: "700",
		},
		{
			name:         "nearest split when no exact match exists",
			qty:          3,
			recorded:     "275",
			stdPrice:     "100",
			promoPrice:   "80",
			wantStd:      2,
			wantPromo:    1,
			wantComputed: "280",
		},
		{
			name:         "fractional prices",
			qty:          4,
			recorded:     "37.80",
			stdPrice:     "9.99",
			promoPrice:   "8.95",
			wantStd:      2,
			wantPromo:    2,
			wantComputed: "37.88",
		},
		{
			name:         "single unit allocates to standard",
			qty:          1,
			recorded:     "80",
			stdPrice:     "100",
			promoPrice:   "80",
			wantStd:      0,
			wantPromo:    1,
			wantComputed: "80",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allocate(tt.qty, d(tt.recorded), d(tt.stdPrice), d(tt.promoPrice))

			assert.Equal(t, tt.wantStd, got.StdQty)
			assert.Equal(t, tt.wantPromo, got.PromoQty)
			assert.True(t, d(tt.wantComputed).Equal(got.ComputedCost),
				"computed cost = %s, want %s", got.ComputedCost, tt.wantComputed)
			assert.Equal(t, tt.qty, got.StdQty+got.PromoQty)
		})
	}
}

func TestAllocateZeroQuantity(t *testing.T) {
	got := Allocate(0, decimal.NewFromInt(50), decimal.NewFromInt(100), decimal.NewFromInt(80))

	assert.Equal(t, 0, got.StdQty)
	assert.Equal(t, 0, got.PromoQty)
	assert.True(t, got.ComputedCost.IsZero())
}
