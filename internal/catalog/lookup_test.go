package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanfields/pricelens/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFindPeriod(t *testing.T) {
	idx := BuildIndex([]model.CatalogEntry{
		{
			ItemCode:      "A100",
			StandardPrice: decimal.RequireFromString("100"),
			PeriodStart:   datePtr(2024, 1, 1),
			PeriodEnd:     datePtr(2024, 3, 31),
		},
		{
			ItemCode:      "A100",
			StandardPrice: decimal.RequireFromString("110"),
			PeriodStart:   datePtr(2024, 4, 1),
		},
	})

	tests := []struct {
		ref        time.Time
		name       string
		wantStd    string
		wantStatus LookupStatus
		itemCode   string
	}{
		{
			name:       "inside first period",
			itemCode:   "A100",
			ref:        date(2024, 2, 15),
			wantStatus: StatusFound,
			wantStd:    "100",
		},
		{
			name:       "boundary dates are inclusive",
			itemCode:   "A100",
			ref:        date(2024, 3, 31),
			wantStatus: StatusFound,
			wantStd:    "100",
		},
		{
			name:       "open-ended period covers far future",
			itemCode:   "A100",
			ref:        date(2030, 1, 1),
			wantStatus: StatusFound,
			wantStd:    "110",
		},
		{
			name:       "before all periods",
			itemCode:   "A100",
			ref:        date(2023, 6, 1),
			wantStatus: StatusNoPeriod,
		},
		{
			name:       "unknown item code",
			itemCode:   "ZZZ9",
			ref:        date(2024, 2, 15),
			wantStatus: StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, status := FindPeriod(idx, tt.itemCode, tt.ref)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantStatus == StatusFound {
				assert.True(t, period.StandardPrice.Equal(decimal.RequireFromString(tt.wantStd)))
			}
		})
	}
}

func TestFindPeriodOverlapPrefersLatestStart(t *testing.T) {
	// Malformed catalog: both periods cover the reference date.
	idx := BuildIndex([]model.CatalogEntry{
		{
			ItemCode:      "A100",
			StandardPrice: decimal.RequireFromString("100"),
			PeriodStart:   datePtr(2024, 1, 1),
			PeriodEnd:     datePtr(2024, 12, 31),
		},
		{
			ItemCode:      "A100",
			StandardPrice: decimal.RequireFromString("90"),
			PeriodStart:   datePtr(2024, 6, 1),
			PeriodEnd:     datePtr(2024, 8, 31),
		},
	})

	period, status := FindPeriod(idx, "A100", date(2024, 7, 1))

	require.Equal(t, StatusFound, status)
	assert.True(t, period.StandardPrice.Equal(decimal.RequireFromString("90")),
		"the period with the latest start date not exceeding the reference date wins")
}

func TestFindPeriodNoUsablePeriods(t *testing.T) {
	// The item is registered but every entry lacked a start date.
	idx := BuildIndex([]model.CatalogEntry{
		{ItemCode: "D400", StandardPrice: decimal.RequireFromString("10")},
	})

	_, status := FindPeriod(idx, "D400", date(2024, 2, 15))
	assert.Equal(t, StatusNoPeriod, status)
}
