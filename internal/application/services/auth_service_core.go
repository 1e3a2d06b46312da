package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	config "github.com/bookblog/server/configs"
	"github.com/bookblog/server/internal/core/domain/auth"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/utils"
)

type AuthService struct {
	userRepo  ports.UserRepository
	jwtConfig *config.JWTConfig
	logger    *logrus.Logger
}

func NewAuthService(userRepo ports.UserRepository, jwtConfig *config.JWTConfig, logger *logrus.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtConfig: jwtConfig, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthToken, error) {
	if req.Username == "" || req.Password == "" {
		return nil, auth.ErrInvalidCredentials
	}
	foundUser, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"username": req.Username}).Debug("login: unknown user")
		}
		return nil, auth.ErrInvalidCredentials
	}
	if !utils.CheckPassword(foundUser.PasswordHash, req.Password) {
		return nil, auth.ErrInvalidCredentials
	}
	return s.generateToken(foundUser)
}

func (s *AuthService) generateToken(u *user.User) (*auth.AuthToken, error) {
	now := time.Now()
	claims := &auth.Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   strconv.FormatInt(u.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &auth.AuthToken{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.AccessTokenTTL.Seconds()),
		UserID:      u.ID,
	}, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &auth.Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC (prevent alg confusion)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

var _ ports.AuthService = (*AuthService)(nil)
