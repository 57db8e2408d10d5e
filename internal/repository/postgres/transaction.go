package postgres

import (
	"context"
	"database/sql"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `t.id, t.type, t.item, t.amount, t.payment, t.payment_amount, t.employee,
	t.status, COALESCE(t.notes, ''), COALESCE(t.delayed_by, ''), COALESCE(t.payment_collector, ''),
	t.pending_payment_amount, t.pending_payment_currency, t.created_at, t.completed_at,
	t.archived, t.archive_date, COALESCE(t.archive_filename, ''), COALESCE(t.archive_batch_id::text, ''),
	c.id, c.name, c.address, c.phone`

const transactionFrom = ` FROM transactions t LEFT JOIN clients c ON c.id = t.client_id`

func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `INSERT INTO transactions
		(type, item, amount, payment, payment_amount, employee, client_id, status, notes, created_at, completed_at, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11, false)
		RETURNING id`
	var clientID *int64
	if tx.Client != nil {
		clientID = &tx.Client.ID
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	return r.db.QueryRowContext(ctx, query,
		tx.Type, tx.Item, tx.Amount, tx.Payment, tx.PaymentAmount, tx.Employee,
		clientID, tx.Status, tx.Notes, tx.CreatedAt, tx.CompletedAt,
	).Scan(&tx.ID)
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+transactionColumns+transactionFrom+` WHERE t.id = $1`, id)
	return scanTransaction(row)
}

func (r *transactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	query := `UPDATE transactions SET
		type = $1, item = $2, amount = $3, payment = $4, payment_amount = $5, employee = $6,
		client_id = $7, status = $8, notes = NULLIF($9, ''), delayed_by = NULLIF($10, ''),
		payment_collector = NULLIF($11, ''), pending_payment_amount = $12, pending_payment_currency = $13,
		completed_at = $14
		WHERE id = $15`
	var clientID *int64
	if tx.Client != nil {
		clientID = &tx.Client.ID
	}
	var pendingAmount *decimal.Decimal
	var pendingCurrency *string
	if tx.PendingPayment != nil {
		pendingAmount = &tx.PendingPayment.Amount
		cur := string(tx.PendingPayment.Currency)
		pendingCurrency = &cur
	}
	res, err := r.db.ExecContext(ctx, query,
		tx.Type, tx.Item, tx.Amount, tx.Payment, tx.PaymentAmount, tx.Employee,
		clientID, tx.Status, tx.Notes, tx.DelayedBy, tx.PaymentCollector,
		pendingAmount, pendingCurrency, tx.CompletedAt, tx.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *transactionRepository) ListActive(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + transactionFrom + ` WHERE NOT t.archived ORDER BY t.id DESC`
	return r.queryTransactions(ctx, query)
}

func (r *transactionRepository) ListByEmployee(ctx context.Context, employee string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + transactionFrom +
		` WHERE NOT t.archived AND lower(t.employee) = lower($1) ORDER BY t.id DESC`
	return r.queryTransactions(ctx, query, employee)
}

func (r *transactionRepository) MarkArchived(ctx context.Context, ids []int64, archiveDate time.Time, filename, batchID string) error {
	query := `UPDATE transactions SET archived = true, archive_date = $1, archive_filename = $2, archive_batch_id = $3
		WHERE id = ANY($4)`
	_, err := r.db.ExecContext(ctx, query, archiveDate, filename, batchID, pq.Array(ids))
	return err
}

func (r *transactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	var pendingAmount decimal.NullDecimal
	var pendingCurrency sql.NullString
	var clientID sql.NullInt64
	var clientName, clientAddress, clientPhone sql.NullString

	err := row.Scan(
		&tx.ID, &tx.Type, &tx.Item, &tx.Amount, &tx.Payment, &tx.PaymentAmount, &tx.Employee,
		&tx.Status, &tx.Notes, &tx.DelayedBy, &tx.PaymentCollector,
		&pendingAmount, &pendingCurrency, &tx.CreatedAt, &tx.CompletedAt,
		&tx.Archived, &tx.ArchiveDate, &tx.ArchiveFilename, &tx.ArchiveBatchID,
		&clientID, &clientName, &clientAddress, &clientPhone,
	)
	if err != nil {
		return nil, err
	}

	if pendingAmount.Valid && pendingCurrency.Valid {
		tx.PendingPayment = &domain.PendingPayment{
			Amount:   pendingAmount.Decimal,
			Currency: domain.Currency(pendingCurrency.String),
		}
	}
	if clientID.Valid {
		tx.Client = &domain.Client{
			ID:      clientID.Int64,
			Name:    clientName.String,
			Address: clientAddress.String,
			Phone:   clientPhone.String,
		}
	}
	return &tx, nil
}
