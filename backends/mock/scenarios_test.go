package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finscript/money/backends/mock"
	"github.com/finscript/money/ports"
)

func TestEmptyScenario(t *testing.T) {
	backend, err := mock.EmptyScenario().Backend()
	require.NoError(t, err)

	accounts, err := backend.GetAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)

	categories, err := backend.GetCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestSingleAccountScenario(t *testing.T) {
	backend, err := mock.SingleAccountScenario().Backend()
	require.NoError(t, err)

	accounts, err := backend.GetAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Single Account", accounts[0].Name)

	txs, err := backend.GetTransactions(context.Background(), accounts[0].AccountNumber, ports.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestHighVolumeScenario_FilteringAndOrdering(t *testing.T) {
	ref := time.Date(2025, 6, 30, 9, 0, 0, 0, time.UTC)
	backend, err := mock.HighVolumeScenario(ref).Backend(
		mock.WithClock(func() time.Time { return ref }),
	)
	require.NoError(t, err)

	ctx := context.Background()
	all, err := backend.GetTransactions(ctx, "HV001", ports.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 100)

	// Insertion order holds under volume.
	for i, tx := range all {
		assert.Equal(t, all[0].BookingDate.AddDate(0, 0, -i), tx.BookingDate)
	}

	// An age bound yields a strict subset whose elements all satisfy the
	// recency bound.
	recent, err := backend.GetTransactions(ctx, "HV001", ports.TransactionFilter{
		AgeDays: ports.Int(0),
	})
	require.NoError(t, err)
	assert.Less(t, len(recent), len(all))
	for _, tx := range recent {
		assert.False(t, tx.BookingDate.Before(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	}
	require.Len(t, recent, 1)
	assert.Equal(t, "tx_000", recent[0].ID)

	week, err := backend.GetTransactions(ctx, "HV001", ports.TransactionFilter{
		AgeDays: ports.Int(7),
	})
	require.NoError(t, err)
	assert.Len(t, week, 8)
}

func TestComplexPortfolioScenario_MixedProfitSigns(t *testing.T) {
	backend, err := mock.ComplexPortfolioScenario().Backend()
	require.NoError(t, err)

	positions, err := backend.GetPositions(context.Background(), "IA001")
	require.NoError(t, err)
	require.Len(t, positions, 4)

	var winners, losers, flat int
	total := decimal.Zero
	for _, p := range positions {
		profit := p.AbsoluteProfit()
		total = total.Add(profit)
		switch profit.Sign() {
		case 1:
			winners++
		case -1:
			losers++
		default:
			flat++
		}
	}
	assert.Equal(t, 2, winners)
	assert.Equal(t, 1, losers)
	assert.Equal(t, 1, flat)
	// Aggregation across mixed signs: +100 - 100 + 200 + 0.
	assert.True(t, total.Equal(decimal.NewFromInt(200)), "total profit %s", total)
}

func TestScenarios_CoversAllNames(t *testing.T) {
	scenarios := mock.Scenarios(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	for _, name := range []string{"empty", "single_account", "high_volume", "complex_portfolio"} {
		builder, ok := scenarios[name]
		require.True(t, ok, "missing scenario %q", name)
		_, err := builder.Build()
		assert.NoError(t, err, "scenario %q must build", name)
	}
}

func TestSampleScenario(t *testing.T) {
	ref := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	backend, err := mock.SampleScenario(ref).Backend(
		mock.WithClock(func() time.Time { return ref }),
	)
	require.NoError(t, err)

	ctx := context.Background()
	txs, err := backend.GetTransactions(ctx, "TB123456", ports.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, []string{"salary"}, txs[0].CommentTags())

	positions, err := backend.GetPositions(ctx, "TB789012")
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}
