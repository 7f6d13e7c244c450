package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNegativePrice is returned when any tier is below zero.
var ErrNegativePrice = errors.New("prices cannot be negative")

// Pricing holds the per-person price for each party size.
type Pricing struct {
	Individual decimal.Decimal
	Group2     decimal.Decimal // per person, party of 2
	Group3     decimal.Decimal // per person, party of 3
}

// Validate checks that no tier is negative.
// PRE: Pricing struct is populated
// POST: Returns nil if every tier is >= 0
func (p *Pricing) Validate() error {
	for _, v := range []decimal.Decimal{p.Individual, p.Group2, p.Group3} {
		if v.IsNegative() {
			return ErrNegativePrice
		}
	}
	return nil
}

// PerPerson returns the per-person price for a party of n, zero outside 1..3.
func (p Pricing) PerPerson(n int) decimal.Decimal {
	switch n {
	case 1:
		return p.Individual
	case 2:
		return p.Group2
	case 3:
		return p.Group3
	default:
		return decimal.Zero
	}
}

// PriceForPartySize returns the total booking price for a party of n.
// PRE: none
// POST: 1 -> Individual, 2 -> 2*Group2, 3 -> 3*Group3, otherwise 0
func (p Pricing) PriceForPartySize(n int) decimal.Decimal {
	return p.PerPerson(n).Mul(decimal.NewFromInt(int64(n)))
}
