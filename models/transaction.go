package models

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// tagPattern matches inline tag markers of the form "<tag:groceries>" that
// the finance application embeds in transaction comments.
var tagPattern = regexp.MustCompile(`<tag:([^<>]+)>`)

// Transaction is a single booking on an account. All fields are write-once
// at construction except Checkmark, which is flipped through the backend's
// SetCheckmark operation.
type Transaction struct {
	ID            string `validate:"required"`
	AccountNumber string `validate:"required"`
	Amount        decimal.Decimal
	Currency      string `validate:"required,iso4217"`
	Name          string `validate:"required"` // payee or counterparty
	Purpose       string
	BookingDate   time.Time
	ValueDate     time.Time
	// Booked is set once the institution has finalized the transaction.
	Booked bool
	// Checkmark is set once the user of this library has acknowledged the
	// transaction. The only mutable field in the model.
	Checkmark bool
	Category  string
	Comment   string
	Tags      []string
}

// FormattedAmount renders the signed amount with its currency code, e.g.
// "-100.00 EUR".
func (t Transaction) FormattedAmount() string {
	return t.Amount.StringFixed(2) + " " + t.Currency
}

// CommentTags extracts inline "<tag:...>" markers from the comment, in
// order of appearance. It complements the explicit Tags field for data
// sources that only support free-text comments.
func (t Transaction) CommentTags() []string {
	matches := tagPattern.FindAllStringSubmatch(t.Comment, -1)
	if len(matches) == 0 {
		return nil
	}
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	return tags
}
