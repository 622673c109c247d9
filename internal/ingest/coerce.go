package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Source files carry garbled numerics and dates; coercion never errors.
// A value that cannot be parsed becomes zero (numerics) or absent (dates),
// and the affected row degrades through classification instead.

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"20060102",
}

// coerceDecimal parses a money or numeric cell, tolerating thousands
// separators and currency noise. Unparseable input coerces to zero.
func coerceDecimal(s string) decimal.Decimal {
	s = cleanNumeric(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// coerceOptionalDecimal is coerceDecimal with absence preserved: a blank
// or garbled cell returns nil so the caller can apply its own default.
func coerceOptionalDecimal(s string) *decimal.Decimal {
	s = cleanNumeric(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// coerceInt parses a signed integer cell; unparseable input coerces to zero.
func coerceInt(s string) int {
	d := coerceDecimal(s)
	return int(d.IntPart())
}

// coerceDate tries the known layouts; unparseable input coerces to absent.
func coerceDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer(",", "", "¥", "", "$", "", "€", "", " ", "")
	return replacer.Replace(s)
}
