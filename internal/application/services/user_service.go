package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/utils"
)

type UserService struct {
	repo         ports.UserRepository
	categoryRepo ports.CategoryRepository
	responseRepo ports.ResponseRepository
	caches       *Caches
	logger       *logrus.Logger
}

func NewUserService(repo ports.UserRepository, categoryRepo ports.CategoryRepository, responseRepo ports.ResponseRepository, caches *Caches, logger *logrus.Logger) *UserService {
	return &UserService{
		repo:         repo,
		categoryRepo: categoryRepo,
		responseRepo: responseRepo,
		caches:       caches,
		logger:       logger,
	}
}

func (s *UserService) Register(ctx context.Context, req *user.CredentialsRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)

	if err := s.ensureUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	newUser := &user.User{Username: username, PasswordHash: hashed}
	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": newUser.ID, "username": newUser.Username}).Info("user registered")
	}
	return newUser, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProfile returns the user with their reviews and categories.
func (s *UserService) GetProfile(ctx context.Context, id int64) (*user.Profile, error) {
	return readThrough(s.caches.userProfiles(), id, func() (*user.Profile, error) {
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		responses, err := s.responseRepo.ListByUser(ctx, id)
		if err != nil {
			return nil, err
		}
		refs := make([]user.ResponseRef, len(responses))
		for i, r := range responses {
			refs[i] = user.ResponseRef{ID: r.ID, Content: r.Content}
		}
		categories, err := s.repo.ListCategoryRefs(ctx, id)
		if err != nil {
			return nil, err
		}
		return user.NewProfile(u, refs, categories), nil
	})
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, req *user.CredentialsRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	username := strings.TrimSpace(req.Username)
	if username != existing.Username {
		if err := s.ensureUsernameFree(ctx, username, id); err != nil {
			return nil, err
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	updated := *existing
	updated.Username = username
	updated.PasswordHash = hashed
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.caches.removeProfile(id)
	// category views list member usernames
	s.caches.clearCategoryViews()
	s.caches.clearCategorySearch()
	return &updated, nil
}

// DeleteUser removes the user with their memberships and reviews.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.caches.removeProfile(id)
	s.caches.removeUserResponses(id)
	s.caches.clearCategoryViews()
	s.caches.clearCategorySearch()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": id}).Info("user deleted")
	}
	return nil
}

func (s *UserService) AddToCategory(ctx context.Context, userID, categoryID int64) error {
	if err := s.checkMembership(ctx, userID, categoryID); err != nil {
		return err
	}
	if err := s.repo.AddCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	s.membershipChanged(userID, categoryID)
	return nil
}

func (s *UserService) RemoveFromCategory(ctx context.Context, userID, categoryID int64) error {
	if err := s.checkMembership(ctx, userID, categoryID); err != nil {
		return err
	}
	if err := s.repo.RemoveCategory(ctx, userID, categoryID); err != nil {
		return err
	}
	s.membershipChanged(userID, categoryID)
	return nil
}

func (s *UserService) ListUserCategories(ctx context.Context, userID int64) ([]*category.Category, error) {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListByUser(ctx, userID)
}

func (s *UserService) checkMembership(ctx context.Context, userID, categoryID int64) error {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return err
	}
	return nil
}

func (s *UserService) membershipChanged(userID, categoryID int64) {
	s.caches.removeProfile(userID)
	s.caches.removeCategoryView(categoryID)
	s.caches.clearCategorySearch()
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, selfID int64) error {
	other, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, user.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return user.ErrAlreadyExists
	}
	return nil
}

var _ ports.UserService = (*UserService)(nil)
