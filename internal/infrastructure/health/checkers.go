package health

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/bookblog/server/internal/core/ports"
)

// Pinger is anything that can report its own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

type pingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func (p *pingChecker) Name() string                    { return p.name }
func (p *pingChecker) Check(ctx context.Context) error { return p.ping(ctx) }

// NewDBHealthChecker reports the database as "database".
func NewDBHealthChecker(db Pinger) ports.HealthChecker {
	return &pingChecker{name: "database", ping: db.Ping}
}

// NewRedisHealthChecker reports the rate limiter's Redis as "redis".
func NewRedisHealthChecker(client redis.Cmdable) ports.HealthChecker {
	return &pingChecker{name: "redis", ping: func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}}
}
