package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/service"
)

// RatesHandler exposes the exchange rate board and the quote endpoint.
type RatesHandler struct {
	rateService service.RateService
}

func NewRatesHandler(rateService service.RateService) *RatesHandler {
	return &RatesHandler{rateService: rateService}
}

func (h *RatesHandler) Get(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rateService.GetRates(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (h *RatesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var rates domain.ExchangeRates
	if !decodeJSON(w, r, &rates) {
		return
	}
	if err := h.rateService.UpdateRates(r.Context(), &rates); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

type quoteRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Item      string          `json:"item"`
	Payment   string          `json:"payment"`
	Direction string          `json:"direction"`
}

type quoteResponse struct {
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

func (h *RatesHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := domain.ParseCurrency(req.Item)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	payment, err := domain.ParseCurrency(req.Payment)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dir := domain.Direction(req.Direction)
	if dir != domain.DirectionBuy && dir != domain.DirectionSell {
		writeError(w, http.StatusBadRequest, "direction must be buy or sell")
		return
	}
	amount, err := h.rateService.QuotePayment(r.Context(), req.Amount, item, payment, dir)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{PaymentAmount: amount})
}
