package service

import (
	"context"
	"sync"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/logger"
	"blueeyes-backoffice/internal/repository"

	"github.com/shopspring/decimal"
)

type rateService struct {
	rateRepo repository.RateRepository

	mu     sync.Mutex
	cached *domain.ExchangeRates
}

func NewRateService(rateRepo repository.RateRepository) RateService {
	return &rateService{rateRepo: rateRepo}
}

func (s *rateService) GetRates(ctx context.Context) (*domain.ExchangeRates, error) {
	s.mu.Lock()
	cached := s.cached
	s.mu.Unlock()
	if cached != nil {
		out := *cached
		return &out, nil
	}

	rates, err := s.rateRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cached = rates
	s.mu.Unlock()
	out := *rates
	return &out, nil
}

func (s *rateService) UpdateRates(ctx context.Context, rates *domain.ExchangeRates) error {
	if err := s.rateRepo.Save(ctx, rates); err != nil {
		return err
	}
	s.mu.Lock()
	saved := *rates
	s.cached = &saved
	s.mu.Unlock()
	return nil
}

func (s *rateService) QuotePayment(ctx context.Context, amount decimal.Decimal, item, payment domain.Currency, dir domain.Direction) (decimal.Decimal, error) {
	rates, err := s.GetRates(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	result := domain.PaymentAmount(amount, item, payment, dir, *rates)
	if result.IsZero() && amount.Sign() > 0 {
		logger.Warn("payment quote degenerated to zero, rates may be uninitialized",
			"amount", amount, "item", item, "payment", payment, "direction", dir)
	}
	return result, nil
}

func (s *rateService) MarkStale() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
