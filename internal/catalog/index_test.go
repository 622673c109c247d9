package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanfields/pricelens/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestBuildIndexGroupsAndSorts(t *testing.T) {
	// Unsorted input: the later period appears first.
	entries := []model.CatalogEntry{
		{
			ItemCode:      "A100",
			StandardPrice: decimal.RequireFromString("110"),
			PeriodStart:   datePtr(2024, 4, 1),
		},
		{
			ItemCode:      "A100",
			StandardPrice: decimal.RequireFromString("100"),
			PromoPrice:    decPtr("80"),
			PeriodStart:   datePtr(2024, 1, 1),
			PeriodEnd:     datePtr(2024, 3, 31),
		},
		{
			ItemCode:      "B200",
			StandardPrice: decimal.RequireFromString("50"),
			PeriodStart:   datePtr(2024, 1, 1),
		},
	}

	idx := BuildIndex(entries)

	require.Len(t, idx, 2)
	require.Len(t, idx["A100"], 2)
	assert.True(t, idx["A100"][0].Start.Before(idx["A100"][1].Start))
	assert.True(t, idx["A100"][0].PromoPrice.Equal(decimal.RequireFromString("80")))
}

func TestBuildIndexPromoDefaultsToStandard(t *testing.T) {
	entries := []model.CatalogEntry{
		{
			ItemCode:      "C300",
			StandardPrice: decimal.RequireFromString("25"),
			PeriodStart:   datePtr(2024, 1, 1),
		},
	}

	idx := BuildIndex(entries)
	require.Len(t, idx["C300"], 1)
	assert.True(t, idx["C300"][0].PromoPrice.Equal(decimal.RequireFromString("25")))
}

func TestBuildIndexMalformedEntries(t *testing.T) {
	entries := []model.CatalogEntry{
		// No start date: registers the item but yields no usable period.
		{ItemCode: "D400", StandardPrice: decimal.RequireFromString("10")},
		// Blank item code: dropped entirely.
		{ItemCode: "  ", StandardPrice: decimal.RequireFromString("10"), PeriodStart: datePtr(2024, 1, 1)},
	}

	idx := BuildIndex(entries)

	require.Len(t, idx, 1)
	periods, ok := idx["D400"]
	assert.True(t, ok)
	assert.Empty(t, periods)
}
