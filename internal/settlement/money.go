package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// Cents is an amount of money in minor units.
type Cents int64

// ToCents rounds d to money precision (half away from zero) and returns it
// in minor units.
func ToCents(d decimal.Decimal) Cents {
	return Cents(d.Round(domain.MoneyScale).Shift(domain.MoneyScale).IntPart())
}

// Decimal returns c as a decimal with exactly two fractional digits.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -domain.MoneyScale)
}

// Abs returns the magnitude of c.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(domain.MoneyScale)
}
