package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"blueeyes-backoffice/internal/domain"
	"blueeyes-backoffice/internal/service"
)

// ClientHandler exposes the client directory endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type clientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	client, err := h.clientService.CreateClient(r.Context(), req.Name, req.Address, req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	var req clientRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	client := &domain.Client{ID: id, Name: req.Name, Address: req.Address, Phone: req.Phone}
	if err := h.clientService.UpdateClient(r.Context(), client); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, client)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}
