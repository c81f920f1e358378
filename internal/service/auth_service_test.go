package service

import (
	"context"
	"testing"

	"forum-live-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, "test-secret")
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterRequest{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.Name)
	assert.NotEqual(t, "supersecret", res.User.PasswordHash, "password must be stored hashed")

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, login.User.Id)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "alice2", Email: "alice@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUserExists, "duplicate email")

	_, err = svc.Register(ctx, &dto.RegisterRequest{Name: "alice", Email: "other@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrUserExists, "duplicate name")
}

func TestValidateToken(t *testing.T) {
	users := &fakeUserRepo{}
	svc := NewAuthService(users, "test-secret")
	ctx := context.Background()

	res, err := svc.Register(ctx, &dto.RegisterRequest{Name: "alice", Email: "alice@example.com", Password: "supersecret"})
	require.NoError(t, err)

	userID, userName, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.Id, userID)
	assert.Equal(t, "alice", userName)

	_, _, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	other := NewAuthService(users, "different-secret")
	_, _, err = other.ValidateToken(res.Token)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "token signed with another secret")
}
