package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/visit"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/infrastructure/db"
)

// VisitRepository implements ports.VisitRepository on Postgres
type VisitRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewVisitRepository(database *db.Database, logger *logrus.Logger) *VisitRepository {
	return &VisitRepository{db: database, logger: logger}
}

// IncrementCount adds one to the counter of url and reports whether a row was updated.
func (r *VisitRepository) IncrementCount(ctx context.Context, url string, at time.Time) (bool, error) {
	result, err := r.db.DB.ExecContext(ctx,
		`UPDATE visits SET count = count + 1, last_updated = $2 WHERE url = $1`, url, at)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"url": url}).WithError(err).Error("db: failed to increment visit count")
		}
		return false, fmt.Errorf("failed to increment visit count: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected > 0, nil
}

// Create inserts a new counter; visit.ErrAlreadyExists if url already has one.
func (r *VisitRepository) Create(ctx context.Context, v *visit.Visit) error {
	_, err := r.db.DB.ExecContext(ctx,
		`INSERT INTO visits (url, count, last_updated) VALUES ($1, $2, $3)`, v.URL, v.Count, v.LastUpdated)
	if err != nil {
		if isUniqueViolation(err) {
			return visit.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create visit counter: %w", err)
	}
	return nil
}

func (r *VisitRepository) GetByURL(ctx context.Context, url string) (*visit.Visit, error) {
	var v visit.Visit
	err := r.db.DB.GetContext(ctx, &v, `SELECT url, count, last_updated FROM visits WHERE url = $1`, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, visit.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get visit stats: %w", err)
	}
	return &v, nil
}

var _ ports.VisitRepository = (*VisitRepository)(nil)
