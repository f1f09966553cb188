// Package mock implements the backend contract over an in-memory dataset,
// so scripts and their tests can run without the finance application
// present.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/finscript/money/apperrors"
	"github.com/finscript/money/models"
	"github.com/finscript/money/ports"
)

// Dataset is the in-memory structure a mock Backend serves from.
// Transactions and Positions are keyed by account number; slice order is
// insertion order and is preserved by every query.
type Dataset struct {
	Accounts     []models.Account
	Transactions map[string][]models.Transaction
	Positions    map[string][]models.Position
	Categories   []models.Category
}

// clone deep-copies the dataset so a Backend owns its data and mutations
// through SetCheckmark never leak into the source structure.
func (d Dataset) clone() Dataset {
	out := Dataset{
		Accounts:     append([]models.Account(nil), d.Accounts...),
		Transactions: make(map[string][]models.Transaction, len(d.Transactions)),
		Positions:    make(map[string][]models.Position, len(d.Positions)),
		Categories:   append([]models.Category(nil), d.Categories...),
	}
	for number, txs := range d.Transactions {
		out.Transactions[number] = append([]models.Transaction(nil), txs...)
	}
	for number, positions := range d.Positions {
		out.Positions[number] = append([]models.Position(nil), positions...)
	}
	return out
}

// Backend serves Dataset contents through the ports.Backend contract. It is
// intended for single-threaded test execution.
type Backend struct {
	data Dataset
	now  func() time.Time
}

var _ ports.Backend = (*Backend)(nil)

// Option configures a mock Backend.
type Option func(*Backend)

// WithClock replaces the wall clock used by the age filter, so tests can
// pin "now".
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// New builds a Backend over its own copy of ds.
func New(ds Dataset, opts ...Option) *Backend {
	b := &Backend{
		data: ds.clone(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetAccounts returns every account in source order.
func (b *Backend) GetAccounts(ctx context.Context) ([]models.Account, error) {
	return append([]models.Account(nil), b.data.Accounts...), nil
}

// GetTransactions returns the transactions of one account in insertion
// order, narrowed by filter.
func (b *Backend) GetTransactions(ctx context.Context, accountNumber string, filter ports.TransactionFilter) ([]models.Transaction, error) {
	if _, err := b.findAccount(accountNumber); err != nil {
		return nil, err
	}
	var out []models.Transaction
	now := b.now()
	for _, tx := range b.data.Transactions[accountNumber] {
		if !filter.Matches(tx, now) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// GetPositions returns the holdings of a portfolio account in insertion
// order.
func (b *Backend) GetPositions(ctx context.Context, accountNumber string) ([]models.Position, error) {
	account, err := b.findAccount(accountNumber)
	if err != nil {
		return nil, err
	}
	if !account.IsPortfolio {
		return nil, fmt.Errorf("account %q is not a portfolio: %w", accountNumber, apperrors.ErrNotFound)
	}
	return append([]models.Position(nil), b.data.Positions[accountNumber]...), nil
}

// GetCategories returns the category tree in source order.
func (b *Backend) GetCategories(ctx context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), b.data.Categories...), nil
}

// SetCheckmark flips the checked flag of a single transaction. Setting the
// same value twice is a no-op.
func (b *Backend) SetCheckmark(ctx context.Context, transactionID string, value bool) error {
	for number, txs := range b.data.Transactions {
		for i := range txs {
			if txs[i].ID == transactionID {
				b.data.Transactions[number][i].Checkmark = value
				return nil
			}
		}
	}
	return fmt.Errorf("transaction %q: %w", transactionID, apperrors.ErrNotFound)
}

func (b *Backend) findAccount(accountNumber string) (models.Account, error) {
	for _, account := range b.data.Accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return models.Account{}, fmt.Errorf("account %q: %w", accountNumber, apperrors.ErrNotFound)
}
