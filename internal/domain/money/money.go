// Package money provides exact decimal amounts and the fixed-point
// (numerator, denominator) representation GnuCash stores them in.
//
// Amounts are never floats: matching compares exact decimal values, so
// a ledger split of -42.50 only ever equals an external amount of
// exactly -42.50.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Denominated is a ledger fixed-point value: Num/Denom in the smallest
// unit of some scale (a commodity fraction or an account SCU).
type Denominated struct {
	Num   int64
	Denom int64
}

// FromDenominated converts a ledger fixed-point pair to an exact
// decimal. A zero denominator is a data-integrity error in the ledger
// file, not something to paper over.
func FromDenominated(d Denominated) (decimal.Decimal, error) {
	if d.Denom == 0 {
		return decimal.Decimal{}, fmt.Errorf("money: zero denominator for value %d", d.Num)
	}
	return decimal.NewFromInt(d.Num).Div(decimal.NewFromInt(d.Denom)), nil
}

// Denominate converts an exact decimal into a fixed-point pair at the
// given scale, rounding to the nearest smallest unit.
func Denominate(amount decimal.Decimal, denom int64) Denominated {
	num := amount.Mul(decimal.NewFromInt(denom)).Round(0).IntPart()
	return Denominated{Num: num, Denom: denom}
}

// Equal reports exact decimal equality. Scale differences are ignored
// (10.0 equals 10.00) but value differences, however small, are not.
func Equal(a, b decimal.Decimal) bool {
	return a.Equal(b)
}
