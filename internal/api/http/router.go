package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"blueeyes-backoffice/internal/security"
	"blueeyes-backoffice/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth      service.AuthService
	Clients   service.ClientService
	Orders    service.OrderService
	Rates     service.RateService
	Inventory service.InventoryService
	Archive   service.ArchiveService
	Analysis  service.AnalysisService
	// Employees is the allowlisted employee roster from configuration.
	Employees []string
}

// NewRouter builds the API surface. Everything under /api/v1 except login
// requires a valid token; mutation of rates, balances and archives requires
// the admin role.
func NewRouter(svcs Services, tm security.TokenManager, exportDir string) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth, svcs.Employees)
	clientHandler := NewClientHandler(svcs.Clients)
	orderHandler := NewOrderHandler(svcs.Orders)
	ratesHandler := NewRatesHandler(svcs.Rates)
	inventoryHandler := NewInventoryHandler(svcs.Inventory, svcs.Analysis)
	archiveHandler := NewArchiveHandler(svcs.Archive, exportDir)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/api/v1/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tm))

	// Staff roster, feeds the per-employee view selectors.
	api.HandleFunc("/employees", RequireAdmin(authHandler.Employees)).Methods(http.MethodGet)

	// Clients. The directory is readable by anyone logged in (the order form
	// needs it); editing it is an admin task.
	api.HandleFunc("/clients", clientHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/clients", RequireAdmin(clientHandler.Create)).Methods(http.MethodPost)
	api.HandleFunc("/clients/{id:[0-9]+}", RequireAdmin(clientHandler.Update)).Methods(http.MethodPut)

	// Orders
	api.HandleFunc("/orders", orderHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/orders", orderHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/orders/extraction", orderHandler.CreateExtraction).Methods(http.MethodPost)
	api.HandleFunc("/orders/delayed", orderHandler.ListDelayed).Methods(http.MethodGet)
	api.HandleFunc("/orders/{id:[0-9]+}", orderHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/orders/{id:[0-9]+}/notes", orderHandler.AppendNote).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/complete", orderHandler.Complete).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/cancel", orderHandler.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/delay-payment", orderHandler.DelayPayment).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id:[0-9]+}/complete-payment", orderHandler.CompleteDelayedPayment).Methods(http.MethodPost)

	// Rates
	api.HandleFunc("/rates", ratesHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/rates", RequireAdmin(ratesHandler.Update)).Methods(http.MethodPut)
	api.HandleFunc("/rates/quote", ratesHandler.Quote).Methods(http.MethodPost)

	// Inventory
	api.HandleFunc("/inventory", inventoryHandler.Current).Methods(http.MethodGet)
	api.HandleFunc("/inventory/recompute", RequireAdmin(inventoryHandler.Recompute)).Methods(http.MethodPost)
	api.HandleFunc("/inventory/verify", RequireAdmin(inventoryHandler.Verify)).Methods(http.MethodGet)
	api.HandleFunc("/inventory/adjust", RequireAdmin(inventoryHandler.Adjust)).Methods(http.MethodPost)
	api.HandleFunc("/inventory/history", RequireAdmin(inventoryHandler.History)).Methods(http.MethodGet)
	api.HandleFunc("/inventory/difference", RequireAdmin(inventoryHandler.Difference)).Methods(http.MethodGet)
	api.HandleFunc("/inventory/extractions", RequireAdmin(inventoryHandler.EmployeeExtractions)).Methods(http.MethodGet)

	// Archival
	api.HandleFunc("/archive/run", RequireAdmin(archiveHandler.ArchiveOld)).Methods(http.MethodPost)
	api.HandleFunc("/archive/export-all", RequireAdmin(archiveHandler.ExportAll)).Methods(http.MethodPost)
	api.HandleFunc("/archive/download", RequireAdmin(archiveHandler.Download)).Methods(http.MethodGet)

	return r
}
