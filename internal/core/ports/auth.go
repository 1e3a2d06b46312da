package ports

import (
	"context"

	"github.com/bookblog/server/internal/core/domain/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthToken, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}
