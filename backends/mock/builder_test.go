package mock_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscript/money/apperrors"
	"github.com/finscript/money/backends/mock"
	"github.com/finscript/money/models"
)

func validAccount(number string) models.Account {
	return models.Account{
		Name:          "Account " + number,
		AccountNumber: number,
		Currency:      "EUR",
		Balance:       decimal.NewFromInt(100),
	}
}

func TestBuilder_AddTransaction_UnregisteredAccount(t *testing.T) {
	builder := mock.NewBuilder().
		AddTransaction("GHOST", models.Transaction{Name: "orphan"})

	assert.ErrorIs(t, builder.Err(), apperrors.ErrValidation)

	_, err := builder.Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = builder.Backend()
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuilder_AddPosition_RequiresPortfolioAccount(t *testing.T) {
	builder := mock.NewBuilder().
		AddAccount(validAccount("CASH01")).
		AddPosition("CASH01", models.Position{Name: "Apple Inc.", Currency: "USD"})

	_, err := builder.Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuilder_AddPosition_UnregisteredAccount(t *testing.T) {
	builder := mock.NewBuilder().
		AddPosition("GHOST", models.Position{Name: "Apple Inc.", Currency: "USD"})

	_, err := builder.Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuilder_AddCategory_UnregisteredParent(t *testing.T) {
	builder := mock.NewBuilder().
		AddCategory(models.Category{ID: "food", Name: "Food", ParentID: "expenses"})

	_, err := builder.Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuilder_DuplicateAccountNumber(t *testing.T) {
	builder := mock.NewBuilder().
		AddAccount(validAccount("CASH01")).
		AddAccount(validAccount("CASH01"))

	_, err := builder.Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuilder_InvalidCurrency(t *testing.T) {
	account := validAccount("CASH01")
	account.Currency = "EURO" // not an ISO 4217 code

	_, err := mock.NewBuilder().AddAccount(account).Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBuilder_FirstErrorSticks(t *testing.T) {
	builder := mock.NewBuilder().
		AddTransaction("GHOST", models.Transaction{Name: "orphan"}).
		AddAccount(validAccount("CASH01"))

	_, err := builder.Build()
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "GHOST")
}

func TestBuilder_FillsGeneratedFields(t *testing.T) {
	ds, err := mock.NewBuilder().
		AddAccount(validAccount("CASH01")).
		AddTransaction("CASH01", models.Transaction{
			Name:        "Coffee",
			Amount:      decimal.NewFromInt(-3),
			BookingDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}).
		Build()
	require.NoError(t, err)

	require.Len(t, ds.Accounts, 1)
	assert.NotEmpty(t, ds.Accounts[0].ID)

	txs := ds.Transactions["CASH01"]
	require.Len(t, txs, 1)
	assert.NotEmpty(t, txs[0].ID)
	assert.Equal(t, "CASH01", txs[0].AccountNumber)
	// Currency defaults to the owning account's currency.
	assert.Equal(t, "EUR", txs[0].Currency)
}

func TestBuilder_ValidDatasetBuilds(t *testing.T) {
	broker := validAccount("BRK01")
	broker.IsPortfolio = true

	ds, err := mock.NewBuilder().
		AddAccount(validAccount("CASH01")).
		AddAccount(broker).
		AddCategory(models.Category{ID: "expenses", Name: "Expenses"}).
		AddCategory(models.Category{ID: "food", Name: "Food", ParentID: "expenses"}).
		AddTransaction("CASH01", models.Transaction{
			Name:     "Groceries",
			Amount:   decimal.NewFromInt(-42),
			Category: "food",
		}).
		AddPosition("BRK01", models.Position{
			Name:          "Apple Inc.",
			ISIN:          "US0378331005",
			Quantity:      decimal.NewFromInt(1),
			Price:         decimal.NewFromInt(150),
			PurchasePrice: decimal.NewFromInt(140),
			Currency:      "USD",
		}).
		Build()
	require.NoError(t, err)
	assert.Len(t, ds.Accounts, 2)
	assert.Len(t, ds.Categories, 2)
	assert.Len(t, ds.Transactions["CASH01"], 1)
	assert.Len(t, ds.Positions["BRK01"], 1)
}
