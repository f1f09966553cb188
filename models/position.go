package models

import (
	"github.com/shopspring/decimal"
)

// hundred is the factor for expressing relative profit in percent.
var hundred = decimal.NewFromInt(100)

// Position is a single security holding inside a portfolio account.
type Position struct {
	ID     string
	Name   string `validate:"required"`
	ISIN   string
	Market string
	// Type is the instrument type as reported by the application, e.g.
	// "share" or "bond".
	Type          string
	Quantity      decimal.Decimal
	Price         decimal.Decimal
	PurchasePrice decimal.Decimal
	// Currency is the currency of Price.
	Currency string `validate:"required,iso4217"`
}

// MarketValue is the current value of the holding: quantity times price.
func (p Position) MarketValue() decimal.Decimal {
	return p.Quantity.Mul(p.Price)
}

// AbsoluteProfit is the signed profit or loss against the purchase price.
func (p Position) AbsoluteProfit() decimal.Decimal {
	return p.Price.Sub(p.PurchasePrice).Mul(p.Quantity)
}

// RelativeProfit is the profit in percent of the purchase value. It returns
// zero when the holding has no cost basis.
func (p Position) RelativeProfit() decimal.Decimal {
	cost := p.PurchasePrice.Mul(p.Quantity)
	if cost.IsZero() {
		return decimal.Zero
	}
	return p.AbsoluteProfit().Div(cost).Mul(hundred)
}
