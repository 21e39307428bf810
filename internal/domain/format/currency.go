// Package format renders numeric values for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

// Currency formats v as an en-US amount with two decimals and thousands
// grouping, e.g. 1234.5 -> "$1,234.50". Negative amounts keep the sign in
// front of the symbol unless they round to zero. The result is for display only.
func Currency(v float64) string {
	// message.Printer is not safe for concurrent use.
	p := message.NewPrinter(language.AmericanEnglish)
	amount := p.Sprintf("%.2f", math.Abs(v))
	if v < 0 && amount != "0.00" {
		return "-" + CurrencySymbol + amount
	}
	return CurrencySymbol + amount
}
