// Package moneymoney implements the backend contract against a running
// MoneyMoney.app instance. Queries are AppleScript export commands issued
// through osascript; responses are plist documents.
package moneymoney

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"howett.net/plist"

	"github.com/finscript/money/apperrors"
	"github.com/finscript/money/models"
	"github.com/finscript/money/ports"
)

// DefaultScriptTimeout bounds a single osascript invocation.
const DefaultScriptTimeout = 60 * time.Second

// defaultWindowDays is the export window used when no age filter is given.
// MoneyMoney requires an explicit date range on transaction exports.
const defaultWindowDays = 3650

// Backend talks to the MoneyMoney application through AppleScript.
type Backend struct {
	runner  Runner
	now     func() time.Time
	logger  *slog.Logger
	timeout time.Duration
}

var _ ports.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

// WithRunner replaces the osascript transport, mainly for tests.
func WithRunner(r Runner) Option {
	return func(b *Backend) {
		b.runner = r
	}
}

// WithClock replaces the wall clock used to anchor age filters.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

// WithLogger sets the logger used for query logging.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// WithTimeout bounds each osascript invocation. Ignored when WithRunner is
// also given.
func WithTimeout(d time.Duration) Option {
	return func(b *Backend) {
		b.timeout = d
	}
}

// New builds a Backend. Without options it shells out to osascript with the
// default timeout and logs through slog.Default.
func New(opts ...Option) *Backend {
	b := &Backend{
		now:     time.Now,
		logger:  slog.Default(),
		timeout: DefaultScriptTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.runner == nil {
		b.runner = osascriptRunner{timeout: b.timeout}
	}
	return b
}

// plist record shapes as exported by MoneyMoney.

type accountExport struct {
	UUID          string          `plist:"uuid"`
	Name          string          `plist:"name"`
	AccountNumber string          `plist:"accountNumber"`
	Currency      string          `plist:"currency"`
	Balance       [][]interface{} `plist:"balance"`
	Portfolio     bool            `plist:"portfolio"`
}

type transactionsExport struct {
	Transactions []transactionExport `plist:"transactions"`
}

type transactionExport struct {
	ID          uint64    `plist:"id"`
	Amount      float64   `plist:"amount"`
	Currency    string    `plist:"currency"`
	Name        string    `plist:"name"`
	Purpose     string    `plist:"purpose"`
	BookingDate time.Time `plist:"bookingDate"`
	ValueDate   time.Time `plist:"valueDate"`
	Booked      bool      `plist:"booked"`
	Checkmark   bool      `plist:"checkmark"`
	Category    string    `plist:"category"`
	Comment     string    `plist:"comment"`
}

type portfolioExport struct {
	Portfolio []positionExport `plist:"portfolio"`
}

type positionExport struct {
	ID            string  `plist:"id"`
	Name          string  `plist:"name"`
	ISIN          string  `plist:"isin"`
	Market        string  `plist:"market"`
	Type          string  `plist:"type"`
	Quantity      float64 `plist:"quantity"`
	Price         float64 `plist:"price"`
	PurchasePrice float64 `plist:"purchasePrice"`
	Currency      string  `plist:"currencyOfPrice"`
}

type categoryExport struct {
	ID       string `plist:"id"`
	UUID     string `plist:"uuid"`
	Name     string `plist:"name"`
	ParentID string `plist:"parentId"`
}

// GetAccounts exports every account. Group headers, which carry no account
// number, are skipped.
func (b *Backend) GetAccounts(ctx context.Context) ([]models.Account, error) {
	out, err := b.runner.Run(ctx, `tell application "MoneyMoney" to export accounts`)
	if err != nil {
		return nil, err
	}
	var records []accountExport
	if _, err := plist.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("decoding accounts export: %w", err)
	}
	var accounts []models.Account
	for _, rec := range records {
		if rec.AccountNumber == "" {
			continue
		}
		accounts = append(accounts, models.Account{
			ID:            rec.UUID,
			Name:          rec.Name,
			AccountNumber: rec.AccountNumber,
			Currency:      rec.Currency,
			Balance:       balanceAmount(rec.Balance),
			IsPortfolio:   rec.Portfolio,
		})
	}
	b.logger.Debug("exported accounts", slog.Int("count", len(accounts)))
	return accounts, nil
}

// GetTransactions exports one account's transactions inside the filter's
// age window and applies the booked/checked filters, which the application
// cannot evaluate itself. The age cut is re-applied at day granularity so
// the live backend agrees with the mock.
func (b *Backend) GetTransactions(ctx context.Context, accountNumber string, filter ports.TransactionFilter) ([]models.Transaction, error) {
	if _, err := b.findAccount(ctx, accountNumber); err != nil {
		return nil, err
	}
	now := b.now()
	window := defaultWindowDays
	if filter.AgeDays != nil {
		window = *filter.AgeDays
	}
	start := now.AddDate(0, 0, -window)

	script := fmt.Sprintf(
		`tell application "MoneyMoney" to export transactions from account %q from date %q to date %q as "plist"`,
		accountNumber, start.Format("02/01/2006"), now.Format("02/01/2006"),
	)
	out, err := b.runner.Run(ctx, script)
	if err != nil {
		return nil, err
	}
	var export transactionsExport
	if _, err := plist.Unmarshal(out, &export); err != nil {
		return nil, fmt.Errorf("decoding transactions export: %w", err)
	}

	var txs []models.Transaction
	for _, rec := range export.Transactions {
		tx := models.Transaction{
			ID:            strconv.FormatUint(rec.ID, 10),
			AccountNumber: accountNumber,
			Amount:        decimal.NewFromFloat(rec.Amount),
			Currency:      rec.Currency,
			Name:          rec.Name,
			Purpose:       rec.Purpose,
			BookingDate:   rec.BookingDate,
			ValueDate:     rec.ValueDate,
			Booked:        rec.Booked,
			Checkmark:     rec.Checkmark,
			Category:      rec.Category,
			Comment:       rec.Comment,
		}
		tx.Tags = tx.CommentTags()
		if !filter.Matches(tx, now) {
			continue
		}
		txs = append(txs, tx)
	}
	b.logger.Debug("exported transactions",
		slog.String("account", accountNumber), slog.Int("count", len(txs)))
	return txs, nil
}

// GetPositions exports the holdings of a portfolio account.
func (b *Backend) GetPositions(ctx context.Context, accountNumber string) ([]models.Position, error) {
	account, err := b.findAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	if !account.IsPortfolio {
		return nil, fmt.Errorf("account %q is not a portfolio: %w", accountNumber, apperrors.ErrNotFound)
	}
	script := fmt.Sprintf(
		`tell application "MoneyMoney" to export portfolio from account %q as "plist"`,
		accountNumber,
	)
	out, err := b.runner.Run(ctx, script)
	if err != nil {
		return nil, err
	}
	var export portfolioExport
	if _, err := plist.Unmarshal(out, &export); err != nil {
		return nil, fmt.Errorf("decoding portfolio export: %w", err)
	}
	var positions []models.Position
	for _, rec := range export.Portfolio {
		positions = append(positions, models.Position{
			ID:            rec.ID,
			Name:          rec.Name,
			ISIN:          rec.ISIN,
			Market:        rec.Market,
			Type:          rec.Type,
			Quantity:      decimal.NewFromFloat(rec.Quantity),
			Price:         decimal.NewFromFloat(rec.Price),
			PurchasePrice: decimal.NewFromFloat(rec.PurchasePrice),
			Currency:      rec.Currency,
		})
	}
	b.logger.Debug("exported positions",
		slog.String("account", accountNumber), slog.Int("count", len(positions)))
	return positions, nil
}

// GetCategories exports the category tree.
func (b *Backend) GetCategories(ctx context.Context) ([]models.Category, error) {
	out, err := b.runner.Run(ctx, `tell application "MoneyMoney" to export categories as "plist"`)
	if err != nil {
		return nil, err
	}
	var records []categoryExport
	if _, err := plist.Unmarshal(out, &records); err != nil {
		return nil, fmt.Errorf("decoding categories export: %w", err)
	}
	var categories []models.Category
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = rec.UUID
		}
		categories = append(categories, models.Category{
			ID:       id,
			Name:     rec.Name,
			ParentID: rec.ParentID,
		})
	}
	return categories, nil
}

// SetCheckmark marks a transaction as checked or unchecked. The application
// only rejects the command for unknown transaction ids, so script errors
// map to ErrNotFound.
func (b *Backend) SetCheckmark(ctx context.Context, transactionID string, value bool) error {
	state := "off"
	if value {
		state = "on"
	}
	script := fmt.Sprintf(
		`tell application "MoneyMoney" to set transaction id %s checkmark to %q`,
		transactionID, state,
	)
	if _, err := b.runner.Run(ctx, script); err != nil {
		var scriptErr *ScriptError
		if errors.As(err, &scriptErr) {
			return fmt.Errorf("transaction %q: %v: %w", transactionID, scriptErr, apperrors.ErrNotFound)
		}
		return err
	}
	return nil
}

// findAccount resolves an account number against the exported account list,
// so unknown numbers fail with the same error kind the mock produces.
func (b *Backend) findAccount(ctx context.Context, accountNumber string) (models.Account, error) {
	accounts, err := b.GetAccounts(ctx)
	if err != nil {
		return models.Account{}, err
	}
	for _, account := range accounts {
		if account.AccountNumber == accountNumber {
			return account, nil
		}
	}
	return models.Account{}, fmt.Errorf("account %q: %w", accountNumber, apperrors.ErrNotFound)
}

// balanceAmount extracts the first amount from MoneyMoney's nested balance
// list, which has the shape [[amount, currency], ...].
func balanceAmount(balance [][]interface{}) decimal.Decimal {
	if len(balance) == 0 || len(balance[0]) == 0 {
		return decimal.Zero
	}
	switch v := balance[0][0].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		return decimal.Zero
	}
}
