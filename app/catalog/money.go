package catalog

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Money formats prices for display, e.g. "UAH 1,500.00".
type Money struct {
	ac accounting.Accounting
}

func NewMoney(symbol string) *Money {
	return &Money{ac: accounting.Accounting{
		Symbol:         symbol,
		Precision:      2,
		Thousand:       ",",
		Decimal:        ".",
		Format:         "%s %v",
		FormatNegative: "%s -%v",
		FormatZero:     "%s %v",
	}}
}

func (m *Money) Format(amount decimal.Decimal) string {
	return m.ac.FormatMoney(amount.InexactFloat64())
}
