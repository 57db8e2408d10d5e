package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) SaveSnapshot(ctx context.Context, inv domain.Inventory, at time.Time) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO inventory (currency, amount, last_updated) VALUES ($1, $2, $3)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range domain.Currencies {
		if _, err := stmt.ExecContext(ctx, c, inv[c], at); err != nil {
			return err
		}
	}
	return dbTx.Commit()
}

// Latest reads the most recent snapshot group: the newest last_updated value
// and every row stamped with it. An empty log yields an all-zero inventory.
func (r *inventoryRepository) Latest(ctx context.Context) (domain.Inventory, time.Time, error) {
	var at time.Time
	err := r.db.QueryRowContext(ctx, `SELECT last_updated FROM inventory ORDER BY last_updated DESC LIMIT 1`).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewInventory(), time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT currency, amount FROM inventory WHERE last_updated = $1`, at)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()

	inv := domain.NewInventory()
	for rows.Next() {
		var snap domain.InventorySnapshot
		if err := rows.Scan(&snap.Currency, &snap.Amount); err != nil {
			return nil, time.Time{}, err
		}
		if snap.Currency.Valid() {
			inv[snap.Currency] = snap.Amount
		}
	}
	return inv, at, rows.Err()
}

func (r *inventoryRepository) History(ctx context.Context, start, end time.Time) ([]domain.InventorySnapshot, error) {
	query := `SELECT currency, amount, last_updated FROM inventory
		WHERE last_updated >= $1 AND last_updated <= $2 ORDER BY last_updated ASC`
	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []domain.InventorySnapshot
	for rows.Next() {
		var snap domain.InventorySnapshot
		if err := rows.Scan(&snap.Currency, &snap.Amount, &snap.LastUpdated); err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
