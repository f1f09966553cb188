package mock

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finscript/money/models"
)

// Canned datasets for the situations the library is typically tested
// against. Scenarios that depend on booking dates take an explicit
// reference time so tests stay deterministic when combined with WithClock.

// EmptyScenario is a dataset with no accounts, transactions, positions or
// categories at all.
func EmptyScenario() *Builder {
	return NewBuilder()
}

// SingleAccountScenario is a single cash account with no transactions.
func SingleAccountScenario() *Builder {
	return NewBuilder().AddAccount(models.Account{
		Name:          "Single Account",
		AccountNumber: "SA001",
		Currency:      "EUR",
		Balance:       decimal.NewFromInt(1000),
	})
}

// HighVolumeScenario is one account with a hundred booked transactions
// spread over the hundred days before ref, one per day. It exists to check
// that filtering and ordering hold under volume.
func HighVolumeScenario(ref time.Time) *Builder {
	b := NewBuilder().
		AddAccount(models.Account{
			Name:          "High Volume Bank",
			AccountNumber: "HV001",
			Currency:      "EUR",
			Balance:       decimal.NewFromInt(10000),
		}).
		AddCategory(models.Category{ID: "income", Name: "Income"}).
		AddCategory(models.Category{ID: "expenses", Name: "Expenses"})
	for i := 0; i < 100; i++ {
		category := "income"
		if i%2 == 0 {
			category = "expenses"
		}
		b.AddTransaction("HV001", models.Transaction{
			ID:          fmt.Sprintf("tx_%03d", i),
			Amount:      decimal.NewFromInt(int64(10 + i)),
			Name:        fmt.Sprintf("Transaction %d", i),
			Booked:      true,
			Category:    category,
			BookingDate: ref.AddDate(0, 0, -i),
		})
	}
	return b
}

// ComplexPortfolioScenario is a portfolio account with several positions of
// mixed profit and loss signs, for aggregation and formatting edge cases.
func ComplexPortfolioScenario() *Builder {
	b := NewBuilder().
		AddAccount(models.Account{
			Name:          "Investment Account",
			AccountNumber: "IA001",
			Currency:      "EUR",
			Balance:       decimal.NewFromInt(50000),
			IsPortfolio:   true,
		}).
		AddCategory(models.Category{ID: "stocks", Name: "Stocks"}).
		AddCategory(models.Category{ID: "bonds", Name: "Bonds"})
	holdings := []struct {
		name          string
		isin          string
		quantity      int64
		price         float64
		purchasePrice float64
	}{
		{"Apple Inc.", "US0378331005", 10, 150.00, 140.00},
		{"Microsoft Corp.", "US5949181045", 5, 280.00, 300.00},
		{"Alphabet Inc.", "US02079K3059", 2, 2500.00, 2400.00},
		{"Siemens AG", "DE0007236101", 8, 105.00, 105.00},
	}
	for _, h := range holdings {
		b.AddPosition("IA001", models.Position{
			Name:          h.name,
			ISIN:          h.isin,
			Market:        "NASDAQ",
			Type:          "share",
			Quantity:      decimal.NewFromInt(h.quantity),
			Price:         decimal.NewFromFloat(h.price),
			PurchasePrice: decimal.NewFromFloat(h.purchasePrice),
			Currency:      "USD",
		})
	}
	return b
}

// SampleScenario is a small mixed dataset: a cash account with a salary and
// a grocery transaction, a broker account with one position, and a small
// category tree.
func SampleScenario(ref time.Time) *Builder {
	return NewBuilder().
		AddAccount(models.Account{
			Name:          "Test Bank",
			AccountNumber: "TB123456",
			Currency:      "EUR",
			Balance:       decimal.NewFromInt(1500),
		}).
		AddAccount(models.Account{
			Name:          "Test Broker",
			AccountNumber: "TB789012",
			Currency:      "EUR",
			Balance:       decimal.NewFromInt(5000),
			IsPortfolio:   true,
		}).
		AddCategory(models.Category{ID: "income", Name: "Income"}).
		AddCategory(models.Category{ID: "expenses", Name: "Expenses"}).
		AddCategory(models.Category{ID: "food", Name: "Food", ParentID: "expenses"}).
		AddCategory(models.Category{ID: "transport", Name: "Transport", ParentID: "expenses"}).
		AddTransaction("TB123456", models.Transaction{
			ID:          "tx001",
			Amount:      decimal.NewFromInt(2500),
			Name:        "Salary",
			Booked:      true,
			Category:    "income",
			Comment:     "Monthly salary <tag:salary>",
			BookingDate: ref.AddDate(0, 0, -1),
		}).
		AddTransaction("TB123456", models.Transaction{
			ID:          "tx002",
			Amount:      decimal.NewFromInt(-100),
			Name:        "Grocery Store",
			Booked:      true,
			Category:    "food",
			Comment:     "Weekly shopping",
			BookingDate: ref.AddDate(0, 0, -2),
		}).
		AddPosition("TB789012", models.Position{
			Name:          "Apple Inc.",
			ISIN:          "US0378331005",
			Market:        "NASDAQ",
			Type:          "share",
			Quantity:      decimal.NewFromInt(10),
			Price:         decimal.NewFromInt(150),
			PurchasePrice: decimal.NewFromInt(140),
			Currency:      "USD",
		})
}

// Scenarios returns every canned scenario keyed by name.
func Scenarios(ref time.Time) map[string]*Builder {
	return map[string]*Builder{
		"empty":             EmptyScenario(),
		"single_account":    SingleAccountScenario(),
		"high_volume":       HighVolumeScenario(ref),
		"complex_portfolio": ComplexPortfolioScenario(),
	}
}
