package ingest

import (
	"github.com/rowanfields/pricelens/internal/model"
)

// ParseCatalogEntries converts raw records into catalog entries. No
// validation happens beyond coercion: a malformed entry simply becomes
// unusable for period lookup and the affected rows classify accordingly.
func ParseCatalogEntries(header []string, records [][]string) []model.CatalogEntry {
	fields := ResolveHeader(header)

	entries := make([]model.CatalogEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, model.CatalogEntry{
			ItemCode:            fields.Cell(record, FieldItemCode),
			ProductCode:         fields.Cell(record, FieldProductCode),
			ProductName:         fields.Cell(record, FieldProductName),
			Remark:              fields.Cell(record, FieldRemark),
			StandardPrice:       coerceDecimal(fields.Cell(record, FieldStandardPrice)),
			StandardPriceTaxAdj: coerceDecimal(fields.Cell(record, FieldStandardTaxAdj)),
			PromoPrice:          coerceOptionalDecimal(fields.Cell(record, FieldPromoPrice)),
			PeriodStart:         coerceDate(fields.Cell(record, FieldPeriodStart)),
			PeriodEnd:           coerceDate(fields.Cell(record, FieldPeriodEnd)),
		})
	}
	return entries
}
