package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a single account known to the finance application.
// Backends return accounts as immutable snapshots; a fresh copy is produced
// per query.
type Account struct {
	ID            string `validate:"required"`
	Name          string `validate:"required"`
	AccountNumber string `validate:"required"`
	Currency      string `validate:"required,iso4217"`
	Balance       decimal.Decimal
	// IsPortfolio marks accounts that hold securities positions instead of
	// a plain cash balance.
	IsPortfolio bool
}

// FormattedBalance renders the balance with its currency code, e.g.
// "2534.50 EUR".
func (a Account) FormattedBalance() string {
	return a.Balance.StringFixed(2) + " " + a.Currency
}
