package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/recipeshare-go/internal/crypto"
	"github.com/recipeshare/recipeshare-go/internal/model"
	"github.com/recipeshare/recipeshare-go/internal/repository"
)

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour), mock
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newAuthService(t)

	tests := []struct {
		name string
		req  model.RegisterRequest
		want error
	}{
		{"no username", model.RegisterRequest{Email: "a@x.com", Password: "pw"}, ErrUsernameRequired},
		{"no email", model.RegisterRequest{Username: "ana", Password: "pw"}, ErrEmailRequired},
		{"no password", model.RegisterRequest{Username: "ana", Email: "a@x.com"}, ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterSuccessReturnsTokenAndUser(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("ana", "a@x.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "ana",
		Email:    "a@x.com",
		Password: "pw",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
	assert.Equal(t, "ana", resp.User.Username)
	assert.Equal(t, "a@x.com", resp.User.Email)

	// The token resolves back to the new user's id.
	claims, err := crypto.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestRegisterDuplicateUser(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ana' for key 'users.username'"))

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Username: "ana", Email: "a@x.com", Password: "pw",
	})
	assert.ErrorIs(t, err, ErrUserTaken)
}

func TestLoginSuccessAfterRegister(t *testing.T) {
	svc, mock := newAuthService(t)

	hash, err := crypto.HashPassword("pw")
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(1), "ana", "a@x.com", hash, now, now))

	resp, err := svc.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newAuthService(t)

	hash, err := crypto.HashPassword("other-password")
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ana").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(1), "ana", "a@x.com", hash, now, now))

	_, err = svc.Login(context.Background(), model.LoginRequest{Username: "ana", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, mock := newAuthService(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}))

	_, err := svc.Login(context.Background(), model.LoginRequest{Username: "nobody", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
