package mock

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/finscript/money/apperrors"
	"github.com/finscript/money/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Builder accumulates mock data and verifies referential integrity as
// entries are added, so broken test data fails at build time instead of
// surfacing as confusing query results later. Add calls are fluent; the
// first violation is remembered and reported by Build.
type Builder struct {
	ds         Dataset
	accounts   map[string]models.Account // by account number
	categories map[string]models.Category
	err        error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		ds: Dataset{
			Transactions: make(map[string][]models.Transaction),
			Positions:    make(map[string][]models.Position),
		},
		accounts:   make(map[string]models.Account),
		categories: make(map[string]models.Category),
	}
}

// AddAccount registers an account. A blank ID is filled with a fresh UUID.
func (b *Builder) AddAccount(account models.Account) *Builder {
	if b.err != nil {
		return b
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if _, exists := b.accounts[account.AccountNumber]; exists {
		b.err = fmt.Errorf("account %q registered twice: %w", account.AccountNumber, apperrors.ErrValidation)
		return b
	}
	b.accounts[account.AccountNumber] = account
	b.ds.Accounts = append(b.ds.Accounts, account)
	return b
}

// AddTransaction appends a transaction to an account. The account number
// must have been registered via AddAccount before.
func (b *Builder) AddTransaction(accountNumber string, tx models.Transaction) *Builder {
	if b.err != nil {
		return b
	}
	if _, exists := b.accounts[accountNumber]; !exists {
		b.err = fmt.Errorf("transaction %q references unregistered account %q: %w", tx.Name, accountNumber, apperrors.ErrValidation)
		return b
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.AccountNumber = accountNumber
	if tx.Currency == "" {
		tx.Currency = b.accounts[accountNumber].Currency
	}
	b.ds.Transactions[accountNumber] = append(b.ds.Transactions[accountNumber], tx)
	return b
}

// AddPosition appends a holding to a portfolio account. The account must be
// registered and flagged as a portfolio.
func (b *Builder) AddPosition(accountNumber string, position models.Position) *Builder {
	if b.err != nil {
		return b
	}
	account, exists := b.accounts[accountNumber]
	if !exists {
		b.err = fmt.Errorf("position %q references unregistered account %q: %w", position.Name, accountNumber, apperrors.ErrValidation)
		return b
	}
	if !account.IsPortfolio {
		b.err = fmt.Errorf("position %q references non-portfolio account %q: %w", position.Name, accountNumber, apperrors.ErrValidation)
		return b
	}
	if position.ID == "" {
		position.ID = "pos_" + position.ISIN
	}
	b.ds.Positions[accountNumber] = append(b.ds.Positions[accountNumber], position)
	return b
}

// AddCategory registers a category. Parents must be registered before their
// children, which also keeps the tree acyclic by construction.
func (b *Builder) AddCategory(category models.Category) *Builder {
	if b.err != nil {
		return b
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if _, exists := b.categories[category.ID]; exists {
		b.err = fmt.Errorf("category %q registered twice: %w", category.ID, apperrors.ErrValidation)
		return b
	}
	if category.ParentID != "" {
		if _, exists := b.categories[category.ParentID]; !exists {
			b.err = fmt.Errorf("category %q references unregistered parent %q: %w", category.Name, category.ParentID, apperrors.ErrValidation)
			return b
		}
	}
	b.categories[category.ID] = category
	b.ds.Categories = append(b.ds.Categories, category)
	return b
}

// Err returns the first violation recorded so far, or nil.
func (b *Builder) Err() error {
	return b.err
}

// Build validates the accumulated data and returns the finished dataset.
// It fails with apperrors.ErrValidation before any backend is constructed.
func (b *Builder) Build() (Dataset, error) {
	if b.err != nil {
		return Dataset{}, b.err
	}
	for _, account := range b.ds.Accounts {
		if err := validate.Struct(account); err != nil {
			return Dataset{}, fmt.Errorf("account %q: %v: %w", account.AccountNumber, err, apperrors.ErrValidation)
		}
	}
	for number, txs := range b.ds.Transactions {
		for _, tx := range txs {
			if err := validate.Struct(tx); err != nil {
				return Dataset{}, fmt.Errorf("transaction %q on account %q: %v: %w", tx.ID, number, err, apperrors.ErrValidation)
			}
		}
	}
	for number, positions := range b.ds.Positions {
		for _, position := range positions {
			if err := validate.Struct(position); err != nil {
				return Dataset{}, fmt.Errorf("position %q on account %q: %v: %w", position.Name, number, err, apperrors.ErrValidation)
			}
		}
	}
	for _, category := range b.ds.Categories {
		if err := validate.Struct(category); err != nil {
			return Dataset{}, fmt.Errorf("category %q: %v: %w", category.ID, err, apperrors.ErrValidation)
		}
	}
	if err := b.checkCategoryCycles(); err != nil {
		return Dataset{}, err
	}
	return b.ds.clone(), nil
}

// Backend converts the completed builder into a ready mock backend.
func (b *Builder) Backend(opts ...Option) (*Backend, error) {
	ds, err := b.Build()
	if err != nil {
		return nil, err
	}
	return New(ds, opts...), nil
}

// checkCategoryCycles walks every parent chain. AddCategory already forces
// parents to exist first, so this only trips on hand-assembled datasets.
func (b *Builder) checkCategoryCycles() error {
	for _, category := range b.ds.Categories {
		seen := map[string]bool{category.ID: true}
		current := category
		for current.ParentID != "" {
			parent, exists := b.categories[current.ParentID]
			if !exists {
				return fmt.Errorf("category %q references unregistered parent %q: %w", current.Name, current.ParentID, apperrors.ErrValidation)
			}
			if seen[parent.ID] {
				return fmt.Errorf("category %q is part of a cycle: %w", category.Name, apperrors.ErrValidation)
			}
			seen[parent.ID] = true
			current = parent
		}
	}
	return nil
}
