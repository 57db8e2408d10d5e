package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/security"
	"blueeyes-backoffice/internal/service"
)

// OrderHandler exposes the transaction ledger and order lifecycle endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type createOrderRequest struct {
	Type     string          `json:"type"`
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
	Payment  string          `json:"payment"`
	Employee string          `json:"employee"`
	ClientID int64           `json:"client_id"`
	Notes    string          `json:"notes"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := claimsFrom(r)
	employee := req.Employee
	if claims.Role == security.RoleEmployee {
		employee = claims.Username
	}
	tx, err := h.orderService.CreateOrder(r.Context(), service.CreateOrderInput{
		Type:     domain.TransactionType(req.Type),
		Item:     domain.Currency(req.Item),
		Amount:   req.Amount,
		Payment:  domain.Currency(req.Payment),
		Employee: employee,
		ClientID: req.ClientID,
		Notes:    req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

type extractionRequest struct {
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
	Employee string          `json:"employee"`
	Notes    string          `json:"notes"`
}

func (h *OrderHandler) CreateExtraction(w http.ResponseWriter, r *http.Request) {
	var req extractionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := claimsFrom(r)
	employee := req.Employee
	if claims.Role == security.RoleEmployee {
		employee = claims.Username
	}
	tx, err := h.orderService.CreateExtraction(r.Context(), service.ExtractionInput{
		Item:     domain.Currency(req.Item),
		Amount:   req.Amount,
		Employee: employee,
		Notes:    req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// Update edits a still-pending order and requotes its payment leg.
func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := claimsFrom(r)
	employee := req.Employee
	if claims.Role == security.RoleEmployee {
		employee = claims.Username
	}
	tx := &domain.Transaction{
		ID:       id,
		Type:     domain.TransactionType(req.Type),
		Item:     domain.Currency(req.Item),
		Amount:   req.Amount,
		Payment:  domain.Currency(req.Payment),
		Employee: employee,
		Notes:    req.Notes,
	}
	if req.ClientID != 0 {
		tx.Client = &domain.Client{ID: req.ClientID}
	}
	if err := h.orderService.UpdateOrder(r.Context(), tx); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

// List returns the full active ledger for admins and the caller's own
// entries for employees. Supports ?today=true and ?group=day|week|month.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	var (
		txs []domain.Transaction
		err error
	)
	if claims.Role == security.RoleAdmin {
		txs, err = h.orderService.ListOrders(r.Context())
	} else {
		txs, err = h.orderService.ListEmployeeOrders(r.Context(), claims.Username)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.URL.Query().Get("today") == "true" {
		txs = service.FilterToday(txs, time.Now())
	}
	if g := r.URL.Query().Get("group"); g != "" {
		period, err := service.ParsePeriod(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		groups := service.GroupByPeriod(txs, period)
		if groups == nil {
			groups = []service.HistoryGroup{}
		}
		writeJSON(w, http.StatusOK, groups)
		return
	}

	if txs == nil {
		txs = []domain.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

// ListDelayed returns every order awaiting payment collection. Any staff
// member may collect an outstanding payment, so the queue is not scoped.
func (h *OrderHandler) ListDelayed(w http.ResponseWriter, r *http.Request) {
	txs, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	delayed := []domain.Transaction{}
	for _, t := range txs {
		if t.Status == domain.OrderStatusPaymentDelayed {
			delayed = append(delayed, t)
		}
	}
	writeJSON(w, http.StatusOK, delayed)
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *OrderHandler) AppendNote(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.orderService.AppendNote(r.Context(), id, req.Note); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.orderService.CompleteOrder(r.Context(), id, req.Note); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.orderService.CancelOrder(r.Context(), id, req.Note); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type delayPaymentRequest struct {
	DelayedBy string `json:"delayed_by"`
	Note      string `json:"note"`
}

func (h *OrderHandler) DelayPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req delayPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := claimsFrom(r)
	delayedBy := req.DelayedBy
	if delayedBy == "" {
		delayedBy = claims.Username
	}
	if err := h.orderService.DelayPayment(r.Context(), id, delayedBy, req.Note); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

type completePaymentRequest struct {
	Collector string `json:"collector"`
	Note      string `json:"note"`
}

func (h *OrderHandler) CompleteDelayedPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}
	var req completePaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := claimsFrom(r)
	collector := req.Collector
	if collector == "" {
		collector = claims.Username
	}
	if err := h.orderService.CompleteDelayedPayment(r.Context(), id, collector, req.Note); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}
