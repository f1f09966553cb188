package ports

import (
	"context"
	"time"

	"github.com/finscript/money/models"
)

// TransactionFilter narrows the result of GetTransactions. A nil field
// means "no constraint"; Booked and Checked are exact matches when set.
type TransactionFilter struct {
	// AgeDays keeps transactions whose booking date is at most this many
	// calendar days before now. Zero means "booked today".
	AgeDays *int
	Booked  *bool
	Checked *bool
}

// Matches reports whether a transaction passes the filter, with the age
// bound anchored at now. Age compares calendar days, so an AgeDays of zero
// keeps only transactions booked on the same day as now. Both backend
// implementations share this logic so they cannot drift apart.
func (f TransactionFilter) Matches(tx models.Transaction, now time.Time) bool {
	if f.AgeDays != nil {
		cutoff := dateOnly(now).AddDate(0, 0, -*f.AgeDays)
		if dateOnly(tx.BookingDate).Before(cutoff) {
			return false
		}
	}
	if f.Booked != nil && tx.Booked != *f.Booked {
		return false
	}
	if f.Checked != nil && tx.Checkmark != *f.Checked {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Int returns a pointer to v, for building filter literals.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for building filter literals.
func Bool(v bool) *bool { return &v }

// Backend answers account, transaction, position and category queries,
// either from the live finance application or from mock data. Both
// implementations report lookup failures as apperrors.ErrNotFound so
// callers cannot tell them apart by error shape.
type Backend interface {
	// GetAccounts returns every account in source order.
	GetAccounts(ctx context.Context) ([]models.Account, error)

	// GetTransactions returns the transactions of one account in source
	// order, narrowed by filter. It fails with apperrors.ErrNotFound when
	// the account number is unknown.
	GetTransactions(ctx context.Context, accountNumber string, filter TransactionFilter) ([]models.Transaction, error)

	// GetPositions returns the holdings of a portfolio account in source
	// order. It fails with apperrors.ErrNotFound for unknown or
	// non-portfolio accounts.
	GetPositions(ctx context.Context, accountNumber string) ([]models.Position, error)

	// GetCategories returns the category tree in source order.
	GetCategories(ctx context.Context) ([]models.Category, error)

	// SetCheckmark marks a transaction as checked or unchecked. It is
	// idempotent and fails with apperrors.ErrNotFound when the transaction
	// id is unknown. The only mutating operation of the contract.
	SetCheckmark(ctx context.Context, transactionID string, value bool) error
}
