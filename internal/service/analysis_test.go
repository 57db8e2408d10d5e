package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/service"
)

func extractionAt(id int64, employee string, currency domain.Currency, amount int64, ts time.Time) domain.Transaction {
	return domain.Transaction{
		ID:            id,
		Type:          domain.TransactionTypeExtraccion,
		Item:          currency,
		Amount:        decimal.NewFromInt(amount),
		Payment:       currency,
		PaymentAmount: decimal.NewFromInt(amount),
		Employee:      employee,
		Status:        domain.OrderStatusCompleted,
		CreatedAt:     ts,
	}
}

func TestEmployeeExtractions_FiltersByNameAndWindow(t *testing.T) {
	txRepo := new(MockTransactionRepo)
	svc := service.NewAnalysisService(txRepo)

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	ledger := []domain.Transaction{
		extractionAt(1, "veneno", domain.CurrencyDolares, 100, base.AddDate(0, 0, 1)),
		extractionAt(2, "Veneno", domain.CurrencyDolares, 50, base.AddDate(0, 0, 2)), // case-insensitive match
		extractionAt(3, "chinda", domain.CurrencyDolares, 75, base.AddDate(0, 0, 3)),
		extractionAt(4, "veneno", domain.CurrencyPesos, 20000, base.AddDate(0, 0, 4)),
		extractionAt(5, "veneno", domain.CurrencyDolares, 999, base.AddDate(0, 2, 0)), // outside window
		completedBuy(6, 100, 100000), // not an extraction
	}
	txRepo.On("ListActive", mock.Anything).Return(ledger, nil)

	summary, err := svc.EmployeeExtractions(context.Background(), "VENENO", base, base.AddDate(0, 1, 0))
	require.NoError(t, err)

	require.Len(t, summary.Entries, 3)
	assert.True(t, summary.Totals[domain.CurrencyDolares].Equal(decimal.NewFromInt(150)))
	assert.True(t, summary.Totals[domain.CurrencyPesos].Equal(decimal.NewFromInt(20000)))
}

func TestInventoryDifference_BetweenInstants(t *testing.T) {
	txRepo := new(MockTransactionRepo)
	svc := service.NewAnalysisService(txRepo)

	base := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	early := entryAt(1, base.AddDate(0, 0, -10)) // before the window: in both reconciliations
	during := entryAt(2, base.AddDate(0, 0, 5))  // inside: only in the end reconciliation
	late := entryAt(3, base.AddDate(0, 1, 5))    // after: in neither

	txRepo.On("ListActive", mock.Anything).Return([]domain.Transaction{early, during, late}, nil)

	diff, err := svc.InventoryDifference(context.Background(), base, base.AddDate(0, 1, 0))
	require.NoError(t, err)

	// Only the entry inside the window moves the difference.
	assert.True(t, diff[domain.CurrencyDolares].Equal(decimal.NewFromInt(-10)))
	assert.True(t, diff[domain.CurrencyPesos].Equal(decimal.NewFromInt(10000)))
	assert.True(t, diff[domain.CurrencyEuros].IsZero())
}
