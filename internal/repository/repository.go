package repository

import (
	"context"
	"time"

	"blueeyes-backoffice/internal/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	List(ctx context.Context) ([]domain.Client, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	Update(ctx context.Context, tx *domain.Transaction) error
	ListActive(ctx context.Context) ([]domain.Transaction, error)
	ListByEmployee(ctx context.Context, employee string) ([]domain.Transaction, error)
	// MarkArchived flags every id in one statement so archival is
	// all-or-nothing from the caller's perspective.
	MarkArchived(ctx context.Context, ids []int64, archiveDate time.Time, filename, batchID string) error
}

type RateRepository interface {
	Get(ctx context.Context) (*domain.ExchangeRates, error)
	Save(ctx context.Context, rates *domain.ExchangeRates) error
}

type InventoryRepository interface {
	// SaveSnapshot appends one row per currency sharing a single timestamp;
	// the inventory table is an append-only log, never updated in place.
	SaveSnapshot(ctx context.Context, inv domain.Inventory, at time.Time) error
	Latest(ctx context.Context) (domain.Inventory, time.Time, error)
	History(ctx context.Context, start, end time.Time) ([]domain.InventorySnapshot, error)
}
