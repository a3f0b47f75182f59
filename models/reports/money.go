package reports

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Money is a decimal that always serializes with exactly two fractional
// digits. Aggregates default to zero, never null.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

func ZeroMoney() Money {
	return Money{decimal.Zero}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.StringFixed(2))), nil
}

func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}
