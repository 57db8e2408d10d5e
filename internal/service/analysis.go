package service

import (
	"context"
	"strings"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/repository"
)

type analysisService struct {
	txRepo repository.TransactionRepository
}

func NewAnalysisService(txRepo repository.TransactionRepository) AnalysisService {
	return &analysisService{txRepo: txRepo}
}

func (s *analysisService) EmployeeExtractions(ctx context.Context, employee string, since, until time.Time) (*ExtractionSummary, error) {
	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ExtractionSummary{Totals: domain.NewInventory()}
	for _, t := range ledger {
		if t.Type != domain.TransactionTypeExtraccion {
			continue
		}
		if !strings.EqualFold(t.Employee, employee) {
			continue
		}
		ts := t.EffectiveTime()
		if ts.Before(since) || ts.After(until) {
			continue
		}
		summary.Entries = append(summary.Entries, t)
		summary.Totals.Add(t.Item, t.Amount)
	}
	return summary, nil
}

func (s *analysisService) InventoryDifference(ctx context.Context, start, end time.Time) (domain.Inventory, error) {
	ledger, err := s.txRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	atStart := domain.Reconcile(truncateAt(ledger, start))
	atEnd := domain.Reconcile(truncateAt(ledger, end))

	diff := domain.NewInventory()
	for _, c := range domain.Currencies {
		diff[c] = atEnd[c].Sub(atStart[c])
	}
	return diff, nil
}

// truncateAt keeps entries whose effective time is at or before the instant.
func truncateAt(ledger []domain.Transaction, at time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range ledger {
		ts := t.EffectiveTime()
		if !ts.IsZero() && !ts.After(at) {
			out = append(out, t)
		}
	}
	return out
}
