package redis_test

import (
	"net"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	config "github.com/bookblog/server/configs"
	"github.com/bookblog/server/internal/infrastructure/redis"
)

func TestNewRedisClient_ConnectsAndPings(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	client, err := redis.NewRedisClient(&config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer client.Close()
	require.Equal(t, mr.Addr(), client.Options().Addr)
}

func TestNewRedisClient_FailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)
	mr.Close()

	_, err = redis.NewRedisClient(&config.RedisConfig{Host: host, Port: port})
	require.Error(t, err)
}
