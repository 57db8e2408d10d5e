package service

import (
	"context"
	"time"

	"blueeyes-backoffice/internal/domain"

	"github.com/shopspring/decimal"
)

type ClientService interface {
	CreateClient(ctx context.Context, name, address, phone string) (*domain.Client, error)
	UpdateClient(ctx context.Context, client *domain.Client) error
	ListClients(ctx context.Context) ([]domain.Client, error)
	// MarkStale invalidates the cached directory; the next list refetches.
	MarkStale()
}

type RateService interface {
	GetRates(ctx context.Context) (*domain.ExchangeRates, error)
	UpdateRates(ctx context.Context, rates *domain.ExchangeRates) error
	// QuotePayment computes the counter-amount for a prospective trade with
	// the current rates. Degenerate rates yield zero, never an error.
	QuotePayment(ctx context.Context, amount decimal.Decimal, item, payment domain.Currency, dir domain.Direction) (decimal.Decimal, error)
	// MarkStale invalidates the cached rates; the next read refetches.
	MarkStale()
}

// CreateOrderInput is a buy/sell order as entered by staff.
type CreateOrderInput struct {
	Type     domain.TransactionType
	Item     domain.Currency
	Amount   decimal.Decimal
	Payment  domain.Currency
	Employee string
	ClientID int64
	Notes    string
}

// ExtractionInput is a cash withdrawal not tied to a client trade.
type ExtractionInput struct {
	Item     domain.Currency
	Amount   decimal.Decimal
	Employee string
	Notes    string
}

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Transaction, error)
	CreateExtraction(ctx context.Context, input ExtractionInput) (*domain.Transaction, error)
	UpdateOrder(ctx context.Context, tx *domain.Transaction) error
	ListOrders(ctx context.Context) ([]domain.Transaction, error)
	ListEmployeeOrders(ctx context.Context, employee string) ([]domain.Transaction, error)
	AppendNote(ctx context.Context, id int64, note string) error

	CompleteOrder(ctx context.Context, id int64, note string) error
	CancelOrder(ctx context.Context, id int64, note string) error
	DelayPayment(ctx context.Context, id int64, delayedBy, note string) error
	CompleteDelayedPayment(ctx context.Context, id int64, collector, note string) error
}

// Divergence reports the difference between the cached inventory snapshot
// and a fresh reconciliation of the ledger.
type Divergence struct {
	Cached decimal.Decimal `json:"cached"`
	Fresh  decimal.Decimal `json:"fresh"`
	Delta  decimal.Decimal `json:"delta"`
}

type DivergenceReport struct {
	CheckedAt   time.Time                      `json:"checked_at"`
	SnapshotAt  time.Time                      `json:"snapshot_at"`
	Consistent  bool                           `json:"consistent"`
	Divergences map[domain.Currency]Divergence `json:"divergences,omitempty"`
}

type InventoryService interface {
	// Current returns the cached snapshot view, refetching after invalidation.
	Current(ctx context.Context) (domain.Inventory, error)
	// Recompute reconciles the ledger from zero, replaces the cache and
	// schedules a debounced persist of the new snapshot.
	Recompute(ctx context.Context) (domain.Inventory, error)
	// Verify compares the cached snapshot against a fresh reconciliation and
	// reports any divergence; it never overwrites either side.
	Verify(ctx context.Context) (*DivergenceReport, error)
	// Adjust records a manual ledger entry bringing one currency to target.
	Adjust(ctx context.Context, currency domain.Currency, target decimal.Decimal) (*domain.Transaction, error)
	// ApplyDelta nudges the cached snapshot without a full reconciliation,
	// used by lifecycle transitions that move a single leg.
	ApplyDelta(ctx context.Context, currency domain.Currency, delta decimal.Decimal)
	History(ctx context.Context, start, end time.Time) ([]domain.InventorySnapshot, error)
	MarkStale()
	// Flush persists any pending snapshot write immediately.
	Flush(ctx context.Context) error
}

// ArchiveResult describes one archival run.
type ArchiveResult struct {
	BatchID  string    `json:"batch_id"`
	Filename string    `json:"filename"`
	Count    int       `json:"count"`
	Cutoff   time.Time `json:"cutoff"`
}

type ArchiveService interface {
	// ArchiveOld exports every transaction at or before the retention cutoff
	// to a spreadsheet and marks the rows archived. All-or-nothing: if
	// marking fails the export file is removed and nothing is pruned.
	ArchiveOld(ctx context.Context, now time.Time) (*ArchiveResult, error)
	// ExportAll writes the full active history to a spreadsheet.
	ExportAll(ctx context.Context) (string, error)
}

// ExtractionSummary aggregates an employee's extractions over a window.
type ExtractionSummary struct {
	Entries []domain.Transaction `json:"entries"`
	Totals  domain.Inventory     `json:"totals"`
}

type AnalysisService interface {
	EmployeeExtractions(ctx context.Context, employee string, since, until time.Time) (*ExtractionSummary, error)
	// InventoryDifference reconciles the ledger truncated at each instant and
	// returns end minus start per currency.
	InventoryDifference(ctx context.Context, start, end time.Time) (domain.Inventory, error)
}

type AuthService interface {
	// Login checks the username against the configured allowlist and issues
	// a role-carrying access token.
	Login(ctx context.Context, username string) (token, role string, err error)
}
