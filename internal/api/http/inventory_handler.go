package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/service"
)

// InventoryHandler exposes the cash balance endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
	analysisService  service.AnalysisService
}

func NewInventoryHandler(inventoryService service.InventoryService, analysisService service.AnalysisService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, analysisService: analysisService}
}

func (h *InventoryHandler) Current(w http.ResponseWriter, r *http.Request) {
	inv, err := h.inventoryService.Current(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	inv, err := h.inventoryService.Recompute(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

func (h *InventoryHandler) Verify(w http.ResponseWriter, r *http.Request) {
	report, err := h.inventoryService.Verify(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type adjustRequest struct {
	Currency string          `json:"currency"`
	Target   decimal.Decimal `json:"target"`
}

func (h *InventoryHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tx, err := h.inventoryService.Adjust(r.Context(), currency, req.Target)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

func (h *InventoryHandler) History(w http.ResponseWriter, r *http.Request) {
	start, end, ok := timeWindow(w, r)
	if !ok {
		return
	}
	snapshots, err := h.inventoryService.History(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if snapshots == nil {
		snapshots = []domain.InventorySnapshot{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *InventoryHandler) Difference(w http.ResponseWriter, r *http.Request) {
	start, end, ok := timeWindow(w, r)
	if !ok {
		return
	}
	diff, err := h.analysisService.InventoryDifference(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, diff)
}

func (h *InventoryHandler) EmployeeExtractions(w http.ResponseWriter, r *http.Request) {
	start, end, ok := timeWindow(w, r)
	if !ok {
		return
	}
	employee := r.URL.Query().Get("employee")
	if employee == "" {
		writeError(w, http.StatusBadRequest, "employee parameter is required")
		return
	}
	summary, err := h.analysisService.EmployeeExtractions(r.Context(), employee, start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// timeWindow parses RFC 3339 "start" and "end" query parameters. An absent
// start means the beginning of time, an absent end means now.
func timeWindow(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	var start, end time.Time
	end = time.Now().UTC()

	if v := r.URL.Query().Get("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start time")
			return start, end, false
		}
		start = t
	}
	if v := r.URL.Query().Get("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end time")
			return start, end, false
		}
		end = t
	}
	return start, end, true
}
