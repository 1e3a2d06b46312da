package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthToken is returned by a successful login
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	UserID      int64  `json:"user_id"`
}

// Claims represents the JWT claims issued at login
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`

	jwt.RegisteredClaims
}

var ErrInvalidCredentials = errors.New("invalid credentials")
