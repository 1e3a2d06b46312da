package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/visit"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/utils"
)

// VisitService counts page visits. The increment-or-insert sequence for one URL runs under
// that URL's stripe of locks, so concurrent first visits never both insert.
type VisitService struct {
	repo   ports.VisitRepository
	locks  *utils.StripedMutex
	now    func() time.Time
	logger *logrus.Logger
}

func NewVisitService(repo ports.VisitRepository, locks *utils.StripedMutex, logger *logrus.Logger) *VisitService {
	if locks == nil {
		locks = utils.NewStripedMutex(0)
	}
	return &VisitService{repo: repo, locks: locks, now: time.Now, logger: logger}
}

// RecordVisit bumps the counter for url, creating it on the first visit. The stripe lock
// only covers this process; if another process inserts the counter first the insert
// fails with a conflict and the increment is retried once.
func (s *VisitService) RecordVisit(ctx context.Context, url string) error {
	if err := visit.ValidateURL(url); err != nil {
		return err
	}
	return s.locks.WithLock(url, func() error {
		now := s.now()
		updated, err := s.repo.IncrementCount(ctx, url, now)
		if err != nil {
			return err
		}
		if updated {
			return nil
		}
		err = s.repo.Create(ctx, &visit.Visit{URL: url, Count: 1, LastUpdated: &now})
		if errors.Is(err, visit.ErrAlreadyExists) {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"url": url}).Debug("visit counter created concurrently; retrying increment")
			}
			updated, err = s.repo.IncrementCount(ctx, url, now)
			if err != nil {
				return err
			}
			if !updated {
				return fmt.Errorf("visit counter for %q vanished after conflicting insert", url)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"url": url}).Debug("visit counter created")
		}
		return nil
	})
}

// GetVisitStats returns the stored counter, or a zero counter for a URL never visited.
func (s *VisitService) GetVisitStats(ctx context.Context, url string) (*visit.Visit, error) {
	if err := visit.ValidateURL(url); err != nil {
		return nil, err
	}
	v, err := s.repo.GetByURL(ctx, url)
	if errors.Is(err, visit.ErrNotFound) {
		return &visit.Visit{URL: url}, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

var _ ports.VisitService = (*VisitService)(nil)
