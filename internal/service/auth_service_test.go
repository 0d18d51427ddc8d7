package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cgarcia/trainlog-app/internal/domain"
)

func TestRegisterManagerAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager, err := env.auth.RegisterManager(ctx, "Cesar", "cesar@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, manager.Role)
	assert.Empty(t, manager.PasswordHash)
	assert.Nil(t, manager.ManagerID)

	token, user, err := env.auth.Login(ctx, "cesar@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, manager.ID, user.ID)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	assert.Equal(t, manager.ID, claims.UserID)
	assert.Equal(t, "cesar@example.com", claims.Email)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createManager(t, "cesar@example.com")

	_, _, err := env.auth.Login(ctx, "cesar@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = env.auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestRegisterManager_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.createManager(t, "cesar@example.com")

	_, err := env.auth.RegisterManager(ctx, "Other", "cesar@example.com", "password123")
	assert.ErrorIs(t, err, ErrConflict)
}
