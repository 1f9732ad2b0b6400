package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type (
	// PriceRecord - last price entered for a scanned code.
	PriceRecord struct {
		Code  string          `json:"code"`
		Price decimal.Decimal `json:"price"`
	}
)

// Currency renders the price with a dollar sign and two fractional digits.
func (p PriceRecord) Currency() string {
	return "$" + p.Price.StringFixed(2)
}

func (p PriceRecord) String() string {
	return fmt.Sprintf("%s — %s", p.Code, p.Currency())
}
