// Package format renders numbers for display with thousands separators.
package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// Number formats v with comma grouping and the given number of decimal
// places, e.g. Number(1234567.5, 2) == "1,234,567.50".
func Number(v float64, decimals int) string {
	return printer.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Amount formats a monetary value with two decimal places.
func Amount(v float64) string {
	return Number(v, 2)
}
