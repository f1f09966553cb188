// Package export renders backend data for consumption outside the library.
package export

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/finscript/money/models"
	"github.com/finscript/money/ports"
)

// transactionHeader is the column set scripts built on this library expect.
var transactionHeader = []string{
	"account",
	"id",
	"accountNumber",
	"amount",
	"currency",
	"name",
	"purpose",
	"bookingDate",
	"valueDate",
	"booked",
	"checkmark",
	"category",
	"comment",
	"tags",
}

// Transactions writes every cash account's transactions as CSV, narrowed by
// filter. Rows appear in account order, then insertion order within each
// account.
func Transactions(ctx context.Context, w io.Writer, backend ports.Backend, filter ports.TransactionFilter) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(transactionHeader); err != nil {
		return err
	}
	accounts, err := backend.GetAccounts(ctx)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if account.IsPortfolio {
			continue
		}
		txs, err := backend.GetTransactions(ctx, account.AccountNumber, filter)
		if err != nil {
			return err
		}
		for _, tx := range txs {
			if err := cw.Write(transactionRow(account, tx)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func transactionRow(account models.Account, tx models.Transaction) []string {
	return []string{
		account.Name,
		tx.ID,
		tx.AccountNumber,
		tx.Amount.StringFixed(2),
		tx.Currency,
		tx.Name,
		tx.Purpose,
		formatDate(tx.BookingDate),
		formatDate(tx.ValueDate),
		strconv.FormatBool(tx.Booked),
		strconv.FormatBool(tx.Checkmark),
		tx.Category,
		tx.Comment,
		strings.Join(tx.Tags, ","),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
