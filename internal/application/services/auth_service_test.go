package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	config "github.com/bookblog/server/configs"
	"github.com/bookblog/server/internal/application/services"
	"github.com/bookblog/server/internal/core/domain/auth"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/utils"
	tmocks "github.com/bookblog/server/test/mocks"
)

func newAuthService(t *testing.T) *services.AuthService {
	t.Helper()
	hash, err := utils.HashPassword("pw")
	require.NoError(t, err)
	ur := &tmocks.UserRepositoryMock{GetByUsernameFn: func(ctx context.Context, username string) (*user.User, error) {
		if username != "ann" {
			return nil, user.ErrNotFound
		}
		return &user.User{ID: 42, Username: "ann", PasswordHash: hash}, nil
	}}
	cfg := &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour, Issuer: "bookblog"}
	return services.NewAuthService(ur, cfg, nil)
}

func TestLogin_IssuesValidToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	tok, err := svc.Login(ctx, &auth.LoginRequest{Username: "ann", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, "Bearer", tok.TokenType)
	require.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "42", claims.Subject)
	require.NotEmpty(t, claims.ID)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &auth.LoginRequest{Username: "ann", Password: "wrong"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &auth.LoginRequest{Username: "bob", Password: "pw"})
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestValidateToken_RejectsForeignSignatures(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{UserID: 1})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, s)
	require.Error(t, err)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: 1})
	s, err = other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ValidateToken(ctx, s)
	require.Error(t, err)
}
