// Package money is a thin client-side wrapper around the MoneyMoney
// desktop application, exposing its accounts, transactions, portfolio
// positions and categories to scripts. The same API runs against a mock
// backend so scripts can be tested without the application present.
package money

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finscript/money/apperrors"
	"github.com/finscript/money/backends/mock"
	"github.com/finscript/money/backends/moneymoney"
	"github.com/finscript/money/config"
	"github.com/finscript/money/models"
	"github.com/finscript/money/ports"
)

// Client wraps a ports.Backend with the account/portfolio split and
// name-based lookups scripts usually want.
type Client struct {
	backend ports.Backend
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger the client and factory log through.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient wraps an already-constructed backend.
func NewClient(backend ports.Backend, opts ...Option) *Client {
	c := &Client{
		backend: backend,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New is the convenience constructor: it loads configuration from the
// environment, builds the configured backend and wraps it. Each call
// returns an independent client; there is no process-wide instance.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c := NewClient(nil, opts...)
	backend, err := newBackend(cfg, c.logger)
	if err != nil {
		return nil, err
	}
	c.backend = backend
	return c, nil
}

// newBackend selects the backend implementation from configuration.
func newBackend(cfg *config.Config, logger *slog.Logger) (ports.Backend, error) {
	switch cfg.Backend {
	case config.BackendMock:
		if cfg.MockFixture == "" {
			logger.Info("initialized mock backend with empty dataset")
			return mock.New(mock.Dataset{}), nil
		}
		backend, err := mock.FromFile(cfg.MockFixture)
		if err != nil {
			return nil, err
		}
		logger.Info("initialized mock backend", slog.String("fixture", cfg.MockFixture))
		return backend, nil
	case config.BackendMoneyMoney:
		logger.Info("initialized moneymoney backend",
			slog.Duration("script_timeout", cfg.ScriptTimeout))
		return moneymoney.New(
			moneymoney.WithTimeout(cfg.ScriptTimeout),
			moneymoney.WithLogger(logger),
		), nil
	default:
		return nil, fmt.Errorf("unsupported backend type %q", cfg.Backend)
	}
}

// Backend exposes the underlying backend, e.g. for the export helpers.
func (c *Client) Backend() ports.Backend {
	return c.backend
}

// Accounts returns every cash account, in source order.
func (c *Client) Accounts(ctx context.Context) ([]models.Account, error) {
	return c.listAccounts(ctx, false)
}

// Portfolios returns every portfolio account, in source order.
func (c *Client) Portfolios(ctx context.Context) ([]models.Account, error) {
	return c.listAccounts(ctx, true)
}

func (c *Client) listAccounts(ctx context.Context, portfolio bool) ([]models.Account, error) {
	accounts, err := c.backend.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Account
	for _, account := range accounts {
		if account.IsPortfolio == portfolio {
			out = append(out, account)
		}
	}
	return out, nil
}

// Account finds a cash account by display name.
func (c *Client) Account(ctx context.Context, name string) (*models.Account, error) {
	return c.findByName(ctx, name, false)
}

// Portfolio finds a portfolio account by display name.
func (c *Client) Portfolio(ctx context.Context, name string) (*models.Account, error) {
	return c.findByName(ctx, name, true)
}

func (c *Client) findByName(ctx context.Context, name string, portfolio bool) (*models.Account, error) {
	accounts, err := c.listAccounts(ctx, portfolio)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.Name == name {
			return &account, nil
		}
	}
	return nil, fmt.Errorf("account named %q: %w", name, apperrors.ErrNotFound)
}

// Transactions returns one account's transactions narrowed by filter.
func (c *Client) Transactions(ctx context.Context, accountNumber string, filter ports.TransactionFilter) ([]models.Transaction, error) {
	return c.backend.GetTransactions(ctx, accountNumber, filter)
}

// Positions returns the holdings of a portfolio account.
func (c *Client) Positions(ctx context.Context, accountNumber string) ([]models.Position, error) {
	return c.backend.GetPositions(ctx, accountNumber)
}

// Categories returns the category tree.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return c.backend.GetCategories(ctx)
}

// SetCheckmark marks a transaction as acknowledged (or not).
func (c *Client) SetCheckmark(ctx context.Context, transactionID string, value bool) error {
	return c.backend.SetCheckmark(ctx, transactionID, value)
}
