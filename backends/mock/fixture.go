package mock

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finscript/money/models"
)

// Fixture documents are plain struct-of-lists YAML: top-level sections
// "accounts", "transactions", "positions" and "categories", each an ordered
// list of records. They are loaded once to seed a mock backend without the
// builder API, but still pass through the builder so they get the same
// referential integrity checks. Record order in the document is the order
// queries return.

type fixtureDocument struct {
	Accounts     []accountRecord     `yaml:"accounts"`
	Transactions []transactionRecord `yaml:"transactions"`
	Positions    []positionRecord    `yaml:"positions"`
	Categories   []categoryRecord    `yaml:"categories"`
}

type accountRecord struct {
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	AccountNumber string  `yaml:"account_number"`
	Currency      string  `yaml:"currency"`
	Balance       float64 `yaml:"balance"`
	Portfolio     bool    `yaml:"portfolio"`
}

type transactionRecord struct {
	ID            string    `yaml:"id"`
	AccountNumber string    `yaml:"account_number"`
	Amount        float64   `yaml:"amount"`
	Currency      string    `yaml:"currency"`
	Name          string    `yaml:"name"`
	Purpose       string    `yaml:"purpose"`
	BookingDate   time.Time `yaml:"booking_date"`
	ValueDate     time.Time `yaml:"value_date"`
	Booked        bool      `yaml:"booked"`
	Checkmark     bool      `yaml:"checkmark"`
	Category      string    `yaml:"category"`
	Comment       string    `yaml:"comment"`
	Tags          []string  `yaml:"tags"`
}

type positionRecord struct {
	AccountNumber string  `yaml:"account_number"`
	ID            string  `yaml:"id"`
	Name          string  `yaml:"name"`
	ISIN          string  `yaml:"isin"`
	Market        string  `yaml:"market"`
	Type          string  `yaml:"type"`
	Quantity      float64 `yaml:"quantity"`
	Price         float64 `yaml:"price"`
	PurchasePrice float64 `yaml:"purchase_price"`
	Currency      string  `yaml:"currency"`
}

type categoryRecord struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	ParentID string `yaml:"parent_id"`
}

// LoadDataset parses a YAML fixture document and validates it the same way
// the builder does.
func LoadDataset(r io.Reader) (Dataset, error) {
	var doc fixtureDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return Dataset{}, fmt.Errorf("decoding fixture: %w", err)
	}

	b := NewBuilder()
	for _, rec := range doc.Accounts {
		b.AddAccount(models.Account{
			ID:            rec.ID,
			Name:          rec.Name,
			AccountNumber: rec.AccountNumber,
			Currency:      rec.Currency,
			Balance:       decimal.NewFromFloat(rec.Balance),
			IsPortfolio:   rec.Portfolio,
		})
	}
	for _, rec := range doc.Categories {
		b.AddCategory(models.Category{
			ID:       rec.ID,
			Name:     rec.Name,
			ParentID: rec.ParentID,
		})
	}
	for _, rec := range doc.Transactions {
		b.AddTransaction(rec.AccountNumber, models.Transaction{
			ID:          rec.ID,
			Amount:      decimal.NewFromFloat(rec.Amount),
			Currency:    rec.Currency,
			Name:        rec.Name,
			Purpose:     rec.Purpose,
			BookingDate: rec.BookingDate,
			ValueDate:   rec.ValueDate,
			Booked:      rec.Booked,
			Checkmark:   rec.Checkmark,
			Category:    rec.Category,
			Comment:     rec.Comment,
			Tags:        rec.Tags,
		})
	}
	for _, rec := range doc.Positions {
		b.AddPosition(rec.AccountNumber, models.Position{
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
	return b.Build()
}

// FromFile loads a fixture document from disk and returns a ready Backend.
func FromFile(path string, opts ...Option) (*Backend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fixture %q: %w", path, err)
	}
	defer f.Close()
	ds, err := LoadDataset(f)
	if err != nil {
		return nil, fmt.Errorf("fixture %q: %w", path, err)
	}
	return New(ds, opts...), nil
}
