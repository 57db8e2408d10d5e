package service

import (
	"context"
	"errors"
	"strings"

	"blueeyes-backoffice/internal/logger"
	"blueeyes-backoffice/internal/security"
)

var ErrUnknownUser = errors.New("usuario no válido")

type authService struct {
	allowlist    map[string]string // username -> role
	tokenManager security.TokenManager
}

// NewAuthService builds the fixed-allowlist identity surface. Usernames are
// matched case-insensitively.
func NewAuthService(allowlist map[string]string, tokenManager security.TokenManager) AuthService {
	normalized := make(map[string]string, len(allowlist))
	for username, role := range allowlist {
		normalized[strings.ToLower(username)] = role
	}
	return &authService{allowlist: normalized, tokenManager: tokenManager}
}

func (s *authService) Login(ctx context.Context, username string) (string, string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	role, ok := s.allowlist[username]
	if !ok {
		logger.Warn("login rejected for unknown username", "username", username)
		return "", "", ErrUnknownUser
	}

	token, err := s.tokenManager.GenerateAccessToken(username, role)
	if err != nil {
		return "", "", err
	}
	return token, role, nil
}
