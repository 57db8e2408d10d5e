package http_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/service"
)

// MockAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username string) (string, string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.String(1), args.Error(2)
}

// MockClientService
type MockClientService struct {
	mock.Mock
}

func (m *MockClientService) CreateClient(ctx context.Context, name, address, phone string) (*domain.Client, error) {
	args := m.Called(ctx, name, address, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *MockClientService) UpdateClient(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}
func (m *MockClientService) MarkStale() {
	m.Called()
}

// MockOrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, input service.CreateOrderInput) (*domain.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockOrderService) CreateExtraction(ctx context.Context, input service.ExtractionInput) (*domain.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockOrderService) UpdateOrder(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockOrderService) ListOrders(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockOrderService) ListEmployeeOrders(ctx context.Context, employee string) ([]domain.Transaction, error) {
	args := m.Called(ctx, employee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
func (m *MockOrderService) AppendNote(ctx context.Context, id int64, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}
func (m *MockOrderService) CompleteOrder(ctx context.Context, id int64, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}
func (m *MockOrderService) CancelOrder(ctx context.Context, id int64, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}
func (m *MockOrderService) DelayPayment(ctx context.Context, id int64, delayedBy, note string) error {
	args := m.Called(ctx, id, delayedBy, note)
	return args.Error(0)
}
func (m *MockOrderService) CompleteDelayedPayment(ctx context.Context, id int64, collector, note string) error {
	args := m.Called(ctx, id, collector, note)
	return args.Error(0)
}

// MockRateService
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRates(ctx context.Context) (*domain.ExchangeRates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRates), args.Error(1)
}
func (m *MockRateService) UpdateRates(ctx context.Context, rates *domain.ExchangeRates) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}
func (m *MockRateService) QuotePayment(ctx context.Context, amount decimal.Decimal, item, payment domain.Currency, dir domain.Direction) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, item, payment, dir)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRateService) MarkStale() {
	m.Called()
}

// MockInventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Current(ctx context.Context) (domain.Inventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Inventory), args.Error(1)
}
func (m *MockInventoryService) Recompute(ctx context.Context) (domain.Inventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Inventory), args.Error(1)
}
func (m *MockInventoryService) Verify(ctx context.Context) (*service.DivergenceReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DivergenceReport), args.Error(1)
}
func (m *MockInventoryService) Adjust(ctx context.Context, currency domain.Currency, target decimal.Decimal) (*domain.Transaction, error) {
	args := m.Called(ctx, currency, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockInventoryService) ApplyDelta(ctx context.Context, currency domain.Currency, delta decimal.Decimal) {
	m.Called(ctx, currency, delta)
}
func (m *MockInventoryService) History(ctx context.Context, start, end time.Time) ([]domain.InventorySnapshot, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventorySnapshot), args.Error(1)
}
func (m *MockInventoryService) MarkStale() {
	m.Called()
}
func (m *MockInventoryService) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockArchiveService
type MockArchiveService struct {
	mock.Mock
}

func (m *MockArchiveService) ArchiveOld(ctx context.Context, now time.Time) (*service.ArchiveResult, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArchiveResult), args.Error(1)
}
func (m *MockArchiveService) ExportAll(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockAnalysisService
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) EmployeeExtractions(ctx context.Context, employee string, since, until time.Time) (*service.ExtractionSummary, error) {
	args := m.Called(ctx, employee, since, until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionSummary), args.Error(1)
}
func (m *MockAnalysisService) InventoryDifference(ctx context.Context, start, end time.Time) (domain.Inventory, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Inventory), args.Error(1)
}
