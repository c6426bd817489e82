package service

import (
	"testing"

	"cutmatch-go/internal/api/dto"
	"cutmatch-go/internal/repository"
	"cutmatch-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	tokenData, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokenData.Token)
	assert.Equal(t, "Bearer", tokenData.TokenType)
	assert.Equal(t, "alice", tokenData.User.Username)
	assert.Equal(t, "user", tokenData.User.UserRole)

	// Token 能解析出正确的用户身份
	claims, err := utils.ParseToken(tokenData.Token)
	require.NoError(t, err)
	assert.Equal(t, tokenData.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.UserRole)

	// 注册后可登录
	loginData, err := svc.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, tokenData.User.ID, loginData.User.ID)
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "another-alice",
		Email:    "alice@example.com",
		Password: "different",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthRegisterDuplicateUsernameAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice1@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	// 用户名不要求唯一
	_, err = svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice2@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthLoginUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db))

	_, err := svc.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
