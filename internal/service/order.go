package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/logger"
	"blueeyes-backoffice/internal/repository"
)

var (
	ErrClientRequired    = errors.New("client is required")
	ErrEmployeeRequired  = errors.New("employee is required")
	ErrAmountRequired    = errors.New("amount must be positive")
	ErrCollectorRequired = errors.New("payment collector is required")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type orderService struct {
	txRepo     repository.TransactionRepository
	clientRepo repository.ClientRepository
	rateSvc    RateService
	invSvc     InventoryService
}

func NewOrderService(txRepo repository.TransactionRepository, clientRepo repository.ClientRepository, rateSvc RateService, invSvc InventoryService) OrderService {
	return &orderService{txRepo: txRepo, clientRepo: clientRepo, rateSvc: rateSvc, invSvc: invSvc}
}

func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Transaction, error) {
	if input.Type != domain.TransactionTypeBuy && input.Type != domain.TransactionTypeSell {
		return nil, fmt.Errorf("order type must be buy or sell, got %q", input.Type)
	}
	if input.ClientID == 0 {
		return nil, ErrClientRequired
	}
	if strings.TrimSpace(input.Employee) == "" {
		return nil, ErrEmployeeRequired
	}
	if input.Amount.Sign() <= 0 {
		return nil, ErrAmountRequired
	}
	if !input.Item.Valid() || !input.Payment.Valid() {
		return nil, fmt.Errorf("unknown currency in order: item=%q payment=%q", input.Item, input.Payment)
	}

	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientRequired
		}
		return nil, err
	}

	paymentAmount, err := s.rateSvc.QuotePayment(ctx, input.Amount, input.Item, input.Payment, domain.Direction(input.Type))
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		Type:          input.Type,
		Item:          input.Item,
		Amount:        input.Amount,
		Payment:       input.Payment,
		PaymentAmount: paymentAmount,
		Employee:      input.Employee,
		Client:        client,
		Status:        domain.OrderStatusPending,
		Notes:         input.Notes,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *orderService) CreateExtraction(ctx context.Context, input ExtractionInput) (*domain.Transaction, error) {
	if strings.TrimSpace(input.Employee) == "" {
		return nil, ErrEmployeeRequired
	}
	if input.Amount.Sign() <= 0 {
		return nil, ErrAmountRequired
	}
	if !input.Item.Valid() {
		return nil, fmt.Errorf("unknown currency in extraction: %q", input.Item)
	}

	notes := input.Notes
	if notes == "" {
		notes = fmt.Sprintf("Extracción por %s", input.Employee)
	}
	// Extractions settle in the extracted currency itself and are recorded
	// already completed.
	tx := &domain.Transaction{
		Type:          domain.TransactionTypeExtraccion,
		Item:          input.Item,
		Amount:        input.Amount,
		Payment:       input.Item,
		PaymentAmount: input.Amount,
		Employee:      input.Employee,
		Status:        domain.OrderStatusCompleted,
		Notes:         notes,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}

	if _, err := s.invSvc.Recompute(ctx); err != nil {
		logger.Error("recompute after extraction failed", "transaction_id", tx.ID, "error", err)
	}
	return tx, nil
}

func (s *orderService) UpdateOrder(ctx context.Context, tx *domain.Transaction) error {
	existing, err := s.getOrder(ctx, tx.ID)
	if err != nil {
		return err
	}
	if existing.Status != domain.OrderStatusPending {
		logger.Warn("refusing to edit a non-pending order", "transaction_id", tx.ID, "status", existing.Status)
		return ErrInvalidTransition
	}

	paymentAmount, err := s.rateSvc.QuotePayment(ctx, tx.Amount, tx.Item, tx.Payment, domain.Direction(tx.Type))
	if err != nil {
		return err
	}
	tx.PaymentAmount = paymentAmount
	tx.Status = domain.OrderStatusPending
	return s.txRepo.Update(ctx, tx)
}

func (s *orderService) ListOrders(ctx context.Context) ([]domain.Transaction, error) {
	return s.txRepo.ListActive(ctx)
}

func (s *orderService) ListEmployeeOrders(ctx context.Context, employee string) ([]domain.Transaction, error) {
	return s.txRepo.ListByEmployee(ctx, employee)
}

func (s *orderService) AppendNote(ctx context.Context, id int64, note string) error {
	if strings.TrimSpace(note) == "" {
		return nil
	}
	tx, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	tx.AppendNote(fmt.Sprintf("Nota adicional: %s", note))
	return s.txRepo.Update(ctx, tx)
}

func (s *orderService) CompleteOrder(ctx context.Context, id int64, note string) error {
	tx, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status != domain.OrderStatusPending {
		logger.Warn("invalid transition to completed", "transaction_id", id, "status", tx.Status)
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	tx.Status = domain.OrderStatusCompleted
	tx.CompletedAt = &now
	tx.AppendNote(note)
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return err
	}

	// The reconciler picks the completed entry up on the next replay.
	if _, err := s.invSvc.Recompute(ctx); err != nil {
		logger.Error("recompute after completion failed", "transaction_id", id, "error", err)
	}
	return nil
}

func (s *orderService) CancelOrder(ctx context.Context, id int64, note string) error {
	tx, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status != domain.OrderStatusPending {
		logger.Warn("invalid transition to cancelled", "transaction_id", id, "status", tx.Status)
		return ErrInvalidTransition
	}

	tx.Status = domain.OrderStatusCancelled
	tx.AppendNote(note)
	return s.txRepo.Update(ctx, tx)
}

func (s *orderService) DelayPayment(ctx context.Context, id int64, delayedBy, note string) error {
	if strings.TrimSpace(delayedBy) == "" {
		return ErrEmployeeRequired
	}
	tx, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status != domain.OrderStatusPending {
		logger.Warn("invalid transition to payment_delayed", "transaction_id", id, "status", tx.Status)
		return ErrInvalidTransition
	}

	tx.Status = domain.OrderStatusPaymentDelayed
	tx.DelayedBy = delayedBy
	tx.PendingPayment = &domain.PendingPayment{Amount: tx.PaymentAmount, Currency: tx.Payment}
	tx.AppendNote(note)
	return s.txRepo.Update(ctx, tx)
}

func (s *orderService) CompleteDelayedPayment(ctx context.Context, id int64, collector, note string) error {
	if strings.TrimSpace(collector) == "" {
		return ErrCollectorRequired
	}
	tx, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	if tx.Status != domain.OrderStatusPaymentDelayed {
		logger.Warn("invalid delayed-payment completion", "transaction_id", id, "status", tx.Status)
		return ErrInvalidTransition
	}

	completion := fmt.Sprintf("Pago completado por %s", collector)
	if note != "" {
		completion = fmt.Sprintf("%s: %s", completion, note)
	}
	tx.Status = domain.OrderStatusCompleted
	tx.PaymentCollector = collector
	tx.AppendNote(completion)
	if err := s.txRepo.Update(ctx, tx); err != nil {
		return err
	}

	// Only the payment-currency leg moves here; the item already changed
	// hands when the order was delayed, and the outstanding cash just
	// arrived. Sign follows the trade direction.
	delta := tx.PaymentAmount.Neg()
	if tx.Type == domain.TransactionTypeSell {
		delta = tx.PaymentAmount
	}
	s.invSvc.ApplyDelta(ctx, tx.Payment, delta)
	return nil
}

func (s *orderService) getOrder(ctx context.Context, id int64) (*domain.Transaction, error) {
	tx, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn("order no longer exists", "transaction_id", id)
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return tx, nil
}
