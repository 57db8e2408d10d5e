package http

import (
	"net/http"

	"blueeyes-backoffice/internal/service"
)

// AuthHandler exposes the allowlist login endpoint and the staff roster.
type AuthHandler struct {
	authService service.AuthService
	employees   []string
}

func NewAuthHandler(authService service.AuthService, employees []string) *AuthHandler {
	return &AuthHandler{authService: authService, employees: employees}
}

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, role, err := h.authService.Login(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, Role: role, Username: req.Username})
}

// Employees returns the configured employee usernames, used to populate the
// per-employee ledger and extraction views.
func (h *AuthHandler) Employees(w http.ResponseWriter, _ *http.Request) {
	employees := h.employees
	if employees == nil {
		employees = []string{}
	}
	writeJSON(w, http.StatusOK, employees)
}
