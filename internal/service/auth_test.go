package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueeyes-backoffice/internal/security"
	"blueeyes-backoffice/internal/service"
)

func newAuthService() service.AuthService {
	tm := security.NewTokenManager("unit-test-secret-0123456789abcdef", time.Hour)
	return service.NewAuthService(map[string]string{
		"admin":  security.RoleAdmin,
		"veneno": security.RoleEmployee,
		"chinda": security.RoleEmployee,
		"juan":   security.RoleEmployee,
	}, tm)
}

func TestLogin_IssuesRoleToken(t *testing.T) {
	svc := newAuthService()

	token, role, err := svc.Login(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, security.RoleAdmin, role)
	assert.NotEmpty(t, token)

	token, role, err = svc.Login(context.Background(), "veneno")
	require.NoError(t, err)
	assert.Equal(t, security.RoleEmployee, role)
	assert.NotEmpty(t, token)
}

func TestLogin_IsCaseInsensitive(t *testing.T) {
	svc := newAuthService()

	_, role, err := svc.Login(context.Background(), "  CHINDA ")
	require.NoError(t, err)
	assert.Equal(t, security.RoleEmployee, role)
}

func TestLogin_RejectsUnknownUser(t *testing.T) {
	svc := newAuthService()

	_, _, err := svc.Login(context.Background(), "desconocido")
	assert.ErrorIs(t, err, service.ErrUnknownUser)
}
