package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/ports"
)

type ResponseService struct {
	repo     ports.ResponseRepository
	userRepo ports.UserRepository
	bookRepo ports.BookRepository
	caches   *Caches
	logger   *logrus.Logger
}

func NewResponseService(repo ports.ResponseRepository, userRepo ports.UserRepository, bookRepo ports.BookRepository, caches *Caches, logger *logrus.Logger) *ResponseService {
	return &ResponseService{repo: repo, userRepo: userRepo, bookRepo: bookRepo, caches: caches, logger: logger}
}

func (s *ResponseService) CreateResponse(ctx context.Context, userID, bookID int64, req *response.ResponseRequest) (*response.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	r := &response.Response{Content: strings.TrimSpace(req.Content), UserID: userID, BookID: bookID}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.invalidateUser(userID)
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"response_id": r.ID, "user_id": userID, "book_id": bookID}).Info("response created")
	}
	return r, nil
}

// ListUserResponses returns the user's reviews. An empty result is an error and is not cached.
func (s *ResponseService) ListUserResponses(ctx context.Context, userID int64) ([]*response.Response, error) {
	return readThrough(s.caches.userResponses(), userID, func() ([]*response.Response, error) {
		list, err := s.repo.ListByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, response.ErrNoneForUser
		}
		return list, nil
	})
}

func (s *ResponseService) ListBookResponses(ctx context.Context, bookID int64) ([]*response.Response, error) {
	list, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, response.ErrNoneForBook
	}
	return list, nil
}

func (s *ResponseService) UpdateResponse(ctx context.Context, id int64, req *response.ResponseRequest) (*response.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Content = strings.TrimSpace(req.Content)
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	s.invalidateUser(updated.UserID)
	return &updated, nil
}

func (s *ResponseService) DeleteResponse(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateUser(existing.UserID)
	return nil
}

func (s *ResponseService) invalidateUser(userID int64) {
	s.caches.removeUserResponses(userID)
	s.caches.removeProfile(userID)
}

var _ ports.ResponseService = (*ResponseService)(nil)
