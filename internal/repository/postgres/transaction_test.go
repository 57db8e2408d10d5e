package postgres_test

import (
	"context"
	"testing"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txColumns() []string {
	return []string{
		"id", "type", "item", "amount", "payment", "payment_amount", "employee",
		"status", "notes", "delayed_by", "payment_collector",
		"pending_payment_amount", "pending_payment_currency", "created_at", "completed_at",
		"archived", "archive_date", "archive_filename", "archive_batch_id",
		"client_id", "client_name", "client_address", "client_phone",
	}
}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		tx := &domain.Transaction{
			Type:          domain.TransactionTypeBuy,
			Item:          domain.CurrencyDolares,
			Amount:        decimal.NewFromInt(100),
			Payment:       domain.CurrencyPesos,
			PaymentAmount: decimal.NewFromInt(100000),
			Employee:      "Veneno",
			Client:        &domain.Client{ID: 7, Name: "Cliente"},
			Status:        domain.OrderStatusPending,
		}

		mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(tx.Type, tx.Item, tx.Amount, tx.Payment, tx.PaymentAmount, tx.Employee,
				sqlmock.AnyArg(), tx.Status, "", sqlmock.AnyArg(), nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(31))

		err := repo.Create(ctx, tx)
		assert.NoError(t, err)
		assert.Equal(t, int64(31), tx.ID)
		assert.False(t, tx.CreatedAt.IsZero())
	})
}

func TestTransactionRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTransactionRepository(db)
	ctx := context.Background()

	created := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(txColumns()).
		AddRow(int64(2), "buy", "dolares", "100", "pesos", "100000", "Veneno",
			"pending", "", "", "", nil, nil, created, nil,
			false, nil, "", "", int64(7), "Cliente Uno", "Calle 1", "555-1234").
		AddRow(int64(1), "manual", "euros", "-50", "pesos", "0", "Sistema",
			"completed", "Ajuste manual", "", "", nil, nil, created, nil,
			false, nil, "", "", nil, nil, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM transactions t LEFT JOIN clients c").WillReturnRows(rows)

	txs, err := repo.ListActive(ctx)
	assert.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, int64(2), txs[0].ID)
	require.NotNil(t, txs[0].Client)
	assert.Equal(t, "Cliente Uno", txs[0].Client.Name)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(100)))

	assert.Nil(t, txs[1].Client)
	assert.True(t, txs[1].Amount.Equal(decimal.NewFromInt(-50)))
	assert.Equal(t, domain.OrderStatusCompleted, txs[1].Status)
}

func TestTransactionRepository_MarkArchived(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTransactionRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET archived = true").
			WithArgs(sqlmock.AnyArg(), "Transacciones_Antiguas_2026-08-31.xlsx", "batch-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.MarkArchived(ctx, []int64{1, 2}, time.Now(), "Transacciones_Antiguas_2026-08-31.xlsx", "batch-1")
		assert.NoError(t, err)
	})

	t.Run("Failure", func(t *testing.T) {
		mock.ExpectExec("UPDATE transactions SET archived = true").
			WillReturnError(assert.AnError)

		err := repo.MarkArchived(ctx, []int64{3}, time.Now(), "f.xlsx", "batch-2")
		assert.Error(t, err)
	})
}

func TestTransactionRepository_Update_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTransactionRepository(db)

	mock.ExpectExec("UPDATE transactions SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx := &domain.Transaction{ID: 404, Type: domain.TransactionTypeBuy, Status: domain.OrderStatusCompleted}
	err = repo.Update(context.Background(), tx)
	assert.Error(t, err)
}
