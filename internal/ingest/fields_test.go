package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHeader(t *testing.T) {
	tests := []struct {
		want   map[Field]int
		name   string
		header []string
	}{
		{
			name:   "canonical names",
			header: []string{"Item Code", "Quantity", "Total Cost Excl Tax"},
			want:   map[Field]int{FieldItemCode: 0, FieldQuantity: 1, FieldRecordedCost: 2},
		},
		{
			name:   "case and underscore variants",
			header: []string{"ITEM_CODE", "qty", "line_total"},
			want:   map[Field]int{FieldItemCode: 0, FieldQuantity: 1, FieldRecordedCost: 2},
		},
		{
			name:   "known typo",
			header: []string{"Item No", "Quanity", "Net Amount"},
			want:   map[Field]int{FieldItemCode: 0, FieldQuantity: 1, FieldRecordedCost: 2},
		},
		{
			name:   "surrounding whitespace",
			header: []string{"  item code  ", " qty "},
			want:   map[Field]int{FieldItemCode: 0, FieldQuantity: 1},
		},
		{
			name:   "unrecognized columns are ignored",
			header: []string{"mystery", "Item Code", "whatever"},
			want:   map[Field]int{FieldItemCode: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveHeader(tt.header)
			for field, idx := range tt.want {
				assert.Equal(t, idx, got[field], "field %s", field)
			}
		})
	}
}

func TestResolveHeaderPrefersItemCodeOverProductCode(t *testing.T) {
	got := ResolveHeader([]string{"Product Code", "Item Code"})
	assert.Equal(t, 1, got[FieldItemCode])
	assert.Equal(t, 0, got[FieldProductCode])
}

func TestHeaderMapCell(t *testing.T) {
	m := HeaderMap{FieldItemCode: 0, FieldQuantity: 5}

	assert.Equal(t, "A100", m.Cell([]string{" A100 "}, FieldItemCode))
	// Short record and unresolved field both read as blank.
	assert.Equal(t, "", m.Cell([]string{"A100"}, FieldQuantity))
	assert.Equal(t, "", m.Cell([]string{"A100"}, FieldRemark))
}
