package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookblog/server/internal/application/services"
	tmocks "github.com/bookblog/server/test/mocks"
)

func TestRateLimiter_BlocksAboveBurst(t *testing.T) {
	count := 0
	repo := &tmocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		require.Equal(t, "rl", keyPrefix)
		require.Equal(t, 2*window, ttl)
		count++
		return count, time.Unix(0, 0), nil
	}}
	svc := services.NewRateLimiterService(repo, &services.RateLimiterConfig{DefaultRequestsPerMinute: 2, BurstMultiplier: 1.5, Window: time.Minute, KeyPrefix: "rl"}, nil)

	allowed, remaining, limit, reset, err := svc.Allow(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	require.True(t, allowed)
	require.Equal(t, 2, remaining)
	require.Equal(t, 2, limit)
	require.Equal(t, time.Unix(60, 0), reset)

	for i := 0; i < 2; i++ {
		allowed, _, _, _, _ = svc.Allow(context.Background(), "1.2.3.4")
		require.True(t, allowed)
	}
	allowed, remaining, _, _, _ = svc.Allow(context.Background(), "1.2.3.4")
	require.False(t, allowed)
	require.Zero(t, remaining)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	repo := &tmocks.RateLimitRepositoryMock{IncrementWindowFn: func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
		return 0, time.Now(), errors.New("redis down")
	}}
	svc := services.NewRateLimiterService(repo, nil, nil)

	allowed, _, limit, _, err := svc.Allow(context.Background(), "c")
	require.Error(t, err)
	require.True(t, allowed)
	require.Equal(t, 120, limit)
}
