// Package ingest turns inconsistently-headed tabular source files into the
// typed invoice and catalog records the engine consumes. Header matching
// is declarative: each logical field lists the spellings seen in the wild
// and resolution happens once per file, never inside business logic.
package ingest

import "strings"

// Field identifies a logical column the engine needs from a source file.
type Field string

// Logical fields for invoice datasets and price catalogs.
const (
	FieldItemCode     Field = "itemCode"
	FieldQuantity     Field = "quantity"
	FieldRecordedCost Field = "recordedCost"
	FieldDate         Field = "date"
	FieldReturnMark   Field = "returnMark"

	FieldProductCode    Field = "productCode"
	FieldProductName    Field = "productName"
	FieldStandardPrice  Field = "standardPrice"
	FieldStandardTaxAdj Field = "standardPriceTaxAdjusted"
	FieldPromoPrice     Field = "promoPrice"
	FieldPeriodStart    Field = "periodStart"
	FieldPeriodEnd      Field = "periodEnd"
	FieldRemark         Field = "remark"
)

// aliases maps each logical field to the header spellings source files use
// for it. Matching is case-insensitive after trimming and after stripping
// spaces, underscores, dots and hyphens; known typos are listed verbatim.
var aliases = map[Field][]string{
	FieldItemCode:     {"item code", "itemcode", "item cd", "item no", "itemno", "jan", "jan code", "code"},
	FieldQuantity:     {"quantity", "qty", "qnty", "quanity", "units", "count"},
	FieldRecordedCost: {"total cost excl tax", "total cost", "cost excl tax", "line total", "total ex tax", "amount excl tax", "net amount", "cost total"},
	FieldDate:         {"date", "invoice date", "document date", "delivery date"},
	FieldReturnMark:   {"return", "return flag", "doc type", "document type", "slip type"},

	FieldProductCode:    {"product code", "productcode", "product cd", "sku"},
	FieldProductName:    {"product name", "productname", "name", "description", "item name"},
	FieldStandardPrice:  {"standard price", "std price", "regular price", "list price", "price"},
	FieldStandardTaxAdj: {"standard price tax", "std price incl tax", "price incl tax", "tax adjusted price", "taxed price"},
	FieldPromoPrice:     {"promo price", "promotion price", "promotional price", "sale price", "special price"},
	FieldPeriodStart:    {"period start", "start date", "valid from", "from", "apply start"},
	FieldPeriodEnd:      {"period end", "end date", "valid to", "to", "apply end"},
	FieldRemark:         {"remark", "remarks", "note", "notes", "comment"},
}

// HeaderMap maps resolved logical fields to column positions in one file.
type HeaderMap map[Field]int

// ResolveHeader matches a header row against the alias table. Fields with
// no matching column are simply absent from the result; every consumer
// treats a missing column the same as a blank cell.
func ResolveHeader(header []string) HeaderMap {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	resolved := make(HeaderMap)
	for field, names := range aliases {
		for _, name := range names {
			want := normalizeHeader(name)
			for i, have := range normalized {
				if have == want {
					if _, taken := resolved[field]; !taken {
						resolved[field] = i
					}
					break
				}
			}
			if _, ok := resolved[field]; ok {
				break
			}
		}
	}
	return resolved
}

// Cell returns the named field's raw cell from a record, or "" when the
// column is absent or the record is short.
func (m HeaderMap) Cell(record []string, field Field) string {
	idx, ok := m[field]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "\ufeff")
	replacer := strings.NewReplacer(" ", "", "_", "", ".", "", "-", "")
	return replacer.Replace(s)
}
