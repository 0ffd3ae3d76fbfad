// Package format turns raw numeric and date values into display strings.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// InvalidDate is returned for malformed date input.
	InvalidDate = "Invalid Date"
	// EmptyDate is returned for empty date input.
	EmptyDate = "N/A"
)

// Currency renders an amount as the symbol followed by the amount fixed to
// exactly two decimals with en-US digit grouping. The sign stays with the
// number: Currency(-1234.5, "$") is "$-1,234.50".
func Currency(amount decimal.Decimal, symbol string) string {
	return symbol + group(amount.StringFixed(2))
}

// PlainCurrency renders without grouping separators, still fixed to two
// decimals.
func PlainCurrency(amount decimal.Decimal, symbol string) string {
	return symbol + amount.StringFixed(2)
}

// group inserts a comma every three digits left of the decimal point.
// Input is the output of StringFixed: an optional minus sign, digits, a
// point and two fraction digits.
func group(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	wrote := false
	if lead > 0 {
		b.WriteString(intPart[:lead])
		wrote = true
	}
	for i := lead; i < len(intPart); i += 3 {
		if wrote {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
		wrote = true
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Date renders an ISO YYYY-MM-DD string in long form, e.g.
// "April 30, 2025". The components are parsed directly so no time-zone
// conversion can shift the calendar day. Empty input renders as N/A,
// malformed input as the invalid-date sentinel; it never panics.
func Date(iso string) string {
	if iso == "" {
		return EmptyDate
	}
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return InvalidDate
	}
	return t.Format("January 2, 2006")
}
