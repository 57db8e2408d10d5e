package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/logger"
	"blueeyes-backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

// SyncPolicy controls how eagerly recomputed balances are persisted. Local
// state always updates immediately; writes are debounced and skipped entirely
// when a sync happened moments ago, to avoid write amplification from rapid
// successive adjustments.
type SyncPolicy struct {
	Debounce        time.Duration
	MinSyncInterval time.Duration
}

func DefaultSyncPolicy() SyncPolicy {
	return SyncPolicy{Debounce: time.Second, MinSyncInterval: 5 * time.Second}
}

type inventoryService struct {
	txRepo  repository.TransactionRepository
	invRepo repository.InventoryRepository
	policy  SyncPolicy

	mu       sync.Mutex
	cached   domain.Inventory
	cachedAt time.Time
	stale    bool
	dirty    bool
	timer    *time.Timer
	lastSync time.Time
}

func NewInventoryService(txRepo repository.TransactionRepository, invRepo repository.InventoryRepository, policy SyncPolicy) InventoryService {
	if policy.Debounce <= 0 {
		policy.Debounce = DefaultSyncPolicy().Debounce
	}
	if policy.MinSyncInterval <= 0 {
		policy.MinSyncInterval = DefaultSyncPolicy().MinSyncInterval
	}
	return &inventoryService{txRepo: txRepo, invRepo: invRepo, policy: policy}
}

func (s *inventoryService) Current(ctx context.Context) (domain.Inventory, error) {
	s.mu.Lock()
	if s.cached != nil && !s.stale {
		out := s.cached.Clone()
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	inv, at, err := s.invRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// A dirty cache is ahead of the store; keep it over the fetched snapshot.
	if s.dirty && s.cached != nil {
		return s.cached.Clone(), nil
	}
	s.cached = inv
	s.cachedAt = at
	s.stale = false
	return inv.Clone(), nil
}

func (s *inventoryService) Recompute(ctx context.Context) (domain.Inventory, error) {
	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	inv := domain.Reconcile(ledger)

	s.mu.Lock()
	s.cached = inv.Clone()
	s.cachedAt = time.Now().UTC()
	s.stale = false
	s.dirty = true
	s.schedulePersistLocked()
	s.mu.Unlock()

	return inv, nil
}

func (s *inventoryService) ApplyDelta(ctx context.Context, currency domain.Currency, delta decimal.Decimal) {
	if _, err := s.Current(ctx); err != nil {
		logger.Error("inventory delta dropped, snapshot unavailable", "currency", currency, "delta", delta, "error", err)
		return
	}

	s.mu.Lock()
	s.cached.Add(currency, delta)
	s.cachedAt = time.Now().UTC()
	s.dirty = true
	s.schedulePersistLocked()
	s.mu.Unlock()
}

func (s *inventoryService) Verify(ctx context.Context) (*DivergenceReport, error) {
	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	fresh := domain.Reconcile(ledger)

	cached, at, err := s.invRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}

	report := &DivergenceReport{
		CheckedAt:  time.Now().UTC(),
		SnapshotAt: at,
		Consistent: true,
	}
	for _, c := range domain.Currencies {
		if cached[c].Equal(fresh[c]) {
			continue
		}
		if report.Divergences == nil {
			report.Divergences = make(map[domain.Currency]Divergence)
		}
		report.Consistent = false
		report.Divergences[c] = Divergence{
			Cached: cached[c],
			Fresh:  fresh[c],
			Delta:  fresh[c].Sub(cached[c]),
		}
	}
	if !report.Consistent {
		logger.Warn("inventory snapshot diverges from ledger reconciliation",
			"snapshot_at", at, "currencies", len(report.Divergences))
	}
	return report, nil
}

func (s *inventoryService) Adjust(ctx context.Context, currency domain.Currency, target decimal.Decimal) (*domain.Transaction, error) {
	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	fresh := domain.Reconcile(ledger)

	difference := target.Sub(fresh[currency])
	if difference.IsZero() {
		return nil, nil
	}

	verb := "añadidos"
	if difference.Sign() < 0 {
		verb = "restados"
	}
	tx := &domain.Transaction{
		Type:          domain.TransactionTypeManual,
		Item:          currency,
		Amount:        difference,
		Payment:       domain.CurrencyPesos,
		PaymentAmount: decimal.Zero,
		Employee:      "Sistema",
		Status:        domain.OrderStatusCompleted,
		Notes:         fmt.Sprintf("Ajuste manual: %s %s %s", verb, difference.Abs(), currency),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if _, err := s.Recompute(ctx); err != nil {
		logger.Error("recompute after manual adjustment failed", "error", err)
	}
	return tx, nil
}

func (s *inventoryService) History(ctx context.Context, start, end time.Time) ([]domain.InventorySnapshot, error) {
	return s.invRepo.History(ctx, start, end)
}

func (s *inventoryService) MarkStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *inventoryService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if !s.dirty || s.cached == nil {
		s.mu.Unlock()
		return nil
	}
	inv := s.cached.Clone()
	at := s.cachedAt
	s.mu.Unlock()

	if err := s.invRepo.SaveSnapshot(ctx, inv, at); err != nil {
		return err
	}

	s.mu.Lock()
	s.dirty = false
	s.lastSync = time.Now()
	s.mu.Unlock()
	return nil
}

// schedulePersistLocked arms the debounce timer. Callers hold s.mu.
func (s *inventoryService) schedulePersistLocked() {
	if time.Since(s.lastSync) < s.policy.MinSyncInterval {
		logger.Debug("inventory persist skipped, recent sync", "last_sync", s.lastSync)
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.policy.Debounce, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Flush(ctx); err != nil {
			// Displayed inventory may run ahead of the persisted snapshot
			// until the next successful sync.
			logger.Error("inventory snapshot persist failed", "error", err)
		}
	})
}
