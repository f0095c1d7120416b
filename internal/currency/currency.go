// Package currency formats amounts for display in the primary (USD) and
// secondary (EUR) currencies.
package currency

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// EURRate is the fixed number of euros per US dollar used for the secondary display.
const EURRate = 0.93

// eurFormatter renders euros the way the en-DE locale does: "1.148,09 €".
var eurFormatter = money.NewFormatter(2, ",", ".", "€", "1 $")

// USD formats an amount as US dollars, e.g. "$1,234.50".
func USD(amount float64) string {
	cur := money.GetCurrency(money.USD)
	return cur.Formatter().Format(minorUnits(decimal.NewFromFloat(amount), cur.Fraction))
}

// EUR converts an amount from dollars at EURRate and formats it as euros.
func EUR(amount float64) string {
	converted := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(EURRate))
	return eurFormatter.Format(minorUnits(converted, eurFormatter.Fraction))
}

// Pair returns both representations, the secondary one in parentheses.
func Pair(amount float64) string {
	return USD(amount) + " (" + EUR(amount) + ")"
}

// minorUnits rounds half away from zero to the currency fraction and shifts
// the value into minor units (cents).
func minorUnits(v decimal.Decimal, fraction int) int64 {
	return v.Round(int32(fraction)).Shift(int32(fraction)).IntPart()
}
