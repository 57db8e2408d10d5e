package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "blueeyes-backoffice/internal/api/http"
	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/security"
	"blueeyes-backoffice/internal/service"
)

type routerFixture struct {
	auth      *MockAuthService
	clients   *MockClientService
	orders    *MockOrderService
	rates     *MockRateService
	inventory *MockInventoryService
	archive   *MockArchiveService
	analysis  *MockAnalysisService
	tm        security.TokenManager
	server    *httptest.Server
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	f := &routerFixture{
		auth:      new(MockAuthService),
		clients:   new(MockClientService),
		orders:    new(MockOrderService),
		rates:     new(MockRateService),
		inventory: new(MockInventoryService),
		archive:   new(MockArchiveService),
		analysis:  new(MockAnalysisService),
		tm:        security.NewTokenManager("router-test-secret-0123456789abcd", time.Hour),
	}
	router := httpapi.NewRouter(httpapi.Services{
		Auth:      f.auth,
		Clients:   f.clients,
		Orders:    f.orders,
		Rates:     f.rates,
		Inventory: f.inventory,
		Archive:   f.archive,
		Analysis:  f.analysis,
		Employees: []string{"chinda", "juan", "veneno"},
	}, f.tm, t.TempDir())
	f.server = httptest.NewServer(router)
	t.Cleanup(f.server.Close)
	return f
}

func (f *routerFixture) tokenFor(t *testing.T, username, role string) string {
	t.Helper()
	token, err := f.tm.GenerateAccessToken(username, role)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, f.server.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.On("Login", mock.Anything, "veneno").Return("some-token", security.RoleEmployee, nil)

	resp := f.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"username": "veneno"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "some-token", body.Token)
	assert.Equal(t, security.RoleEmployee, body.Role)
}

func TestLoginEndpoint_UnknownUser(t *testing.T) {
	f := newRouterFixture(t)
	f.auth.On("Login", mock.Anything, "desconocido").Return("", "", service.ErrUnknownUser)

	resp := f.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{"username": "desconocido"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/orders", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestOrderList_ScopedByRole(t *testing.T) {
	f := newRouterFixture(t)

	f.orders.On("ListEmployeeOrders", mock.Anything, "veneno").Return([]domain.Transaction{}, nil)
	resp := f.do(t, http.MethodGet, "/api/v1/orders", f.tokenFor(t, "veneno", security.RoleEmployee), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.orders.AssertCalled(t, "ListEmployeeOrders", mock.Anything, "veneno")
	f.orders.AssertNotCalled(t, "ListOrders", mock.Anything)

	f.orders.On("ListOrders", mock.Anything).Return([]domain.Transaction{}, nil)
	resp = f.do(t, http.MethodGet, "/api/v1/orders", f.tokenFor(t, "admin", security.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	f.orders.AssertCalled(t, "ListOrders", mock.Anything)
}

func TestDelayedQueue_SharedAcrossStaff(t *testing.T) {
	f := newRouterFixture(t)

	f.orders.On("ListOrders", mock.Anything).Return([]domain.Transaction{
		{ID: 1, Status: domain.OrderStatusPending},
		{ID: 2, Status: domain.OrderStatusPaymentDelayed, Employee: "juan"},
		{ID: 3, Status: domain.OrderStatusPaymentDelayed, Employee: "chinda"},
	}, nil)

	resp := f.do(t, http.MethodGet, "/api/v1/orders/delayed", f.tokenFor(t, "veneno", security.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var delayed []domain.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&delayed))
	require.Len(t, delayed, 2)
	assert.Equal(t, int64(2), delayed[0].ID)
	assert.Equal(t, int64(3), delayed[1].ID)
}

func TestCreateOrder_EmployeeNameForced(t *testing.T) {
	f := newRouterFixture(t)

	var got service.CreateOrderInput
	f.orders.On("CreateOrder", mock.Anything, mock.AnythingOfType("service.CreateOrderInput")).
		Run(func(args mock.Arguments) {
			got = args.Get(1).(service.CreateOrderInput)
		}).
		Return(&domain.Transaction{ID: 1, Status: domain.OrderStatusPending}, nil)

	resp := f.do(t, http.MethodPost, "/api/v1/orders", f.tokenFor(t, "chinda", security.RoleEmployee), map[string]any{
		"type":      "buy",
		"item":      "dolares",
		"amount":    "100",
		"payment":   "pesos",
		"employee":  "otro",
		"client_id": 7,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	// The ledger records who was logged in, not what the request claimed.
	assert.Equal(t, "chinda", got.Employee)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(100)))
}

func TestAdminOnlyEndpoints(t *testing.T) {
	f := newRouterFixture(t)
	employee := f.tokenFor(t, "juan", security.RoleEmployee)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/v1/rates"},
		{http.MethodPost, "/api/v1/clients"},
		{http.MethodPost, "/api/v1/inventory/adjust"},
		{http.MethodPost, "/api/v1/archive/run"},
		{http.MethodPost, "/api/v1/archive/export-all"},
		{http.MethodGet, "/api/v1/inventory/verify"},
		{http.MethodGet, "/api/v1/employees"},
	}
	for _, p := range paths {
		resp := f.do(t, p.method, p.path, employee, map[string]string{})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", p.method, p.path)
	}
}

func TestEmployeeRoster(t *testing.T) {
	f := newRouterFixture(t)

	resp := f.do(t, http.MethodGet, "/api/v1/employees", f.tokenFor(t, "admin", security.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var roster []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&roster))
	assert.Equal(t, []string{"chinda", "juan", "veneno"}, roster)
}

func TestCompleteOrder_InvalidTransitionConflict(t *testing.T) {
	f := newRouterFixture(t)
	f.orders.On("CompleteOrder", mock.Anything, int64(5), "").Return(service.ErrInvalidTransition)

	resp := f.do(t, http.MethodPost, "/api/v1/orders/5/complete",
		f.tokenFor(t, "admin", security.RoleAdmin), map[string]string{})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestArchiveRun(t *testing.T) {
	f := newRouterFixture(t)
	f.archive.On("ArchiveOld", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(&service.ArchiveResult{BatchID: "b1", Filename: "Transacciones_Antiguas_2026-08-31.xlsx", Count: 4}, nil)

	resp := f.do(t, http.MethodPost, "/api/v1/archive/run", f.tokenFor(t, "admin", security.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.ArchiveResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 4, result.Count)
	assert.Equal(t, "Transacciones_Antiguas_2026-08-31.xlsx", result.Filename)
}
