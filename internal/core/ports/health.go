package ports

import "context"

// HealthChecker checks one external dependency for GET /health.
// Check returns nil while the dependency is usable.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
