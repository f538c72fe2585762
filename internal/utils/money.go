package utils

import "fmt"

// CurrencySymbol prefixes every amount on rendered documents. The PDF core
// fonts are cp1252, which has no rupee glyph.
const CurrencySymbol = "Rs."

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
