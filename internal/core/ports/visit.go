package ports

import (
	"context"
	"time"

	"github.com/bookblog/server/internal/core/domain/visit"
)

// VisitRepository stores per-URL counters. IncrementCount and Create are not atomic
// together; callers serialize increment-or-insert per URL.
type VisitRepository interface {
	// IncrementCount bumps the counter for url and reports whether a row existed.
	IncrementCount(ctx context.Context, url string, at time.Time) (bool, error)
	Create(ctx context.Context, v *visit.Visit) error
	GetByURL(ctx context.Context, url string) (*visit.Visit, error)
}

// VisitService tracks page visits
type VisitService interface {
	RecordVisit(ctx context.Context, url string) error
	GetVisitStats(ctx context.Context, url string) (*visit.Visit, error)
}
