package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/ports"
)

type CategoryService struct {
	repo   ports.CategoryRepository
	caches *Caches
	logger *logrus.Logger
}

func NewCategoryService(repo ports.CategoryRepository, caches *Caches, logger *logrus.Logger) *CategoryService {
	return &CategoryService{repo: repo, caches: caches, logger: logger}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *category.CategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	c := &category.Category{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	s.caches.putCategoryView(category.NewCategoryWithUsers(c, nil))
	// an empty category matches minUsers=0
	s.caches.clearCategorySearch()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"category_id": c.ID, "name": c.Name}).Info("category created")
	}
	return c, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*category.CategoryWithUsers, error) {
	return readThrough(s.caches.categoryViews(), id, func() (*category.CategoryWithUsers, error) {
		c, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		views, err := s.withMembers(ctx, []*category.Category{c})
		if err != nil {
			return nil, err
		}
		return views[0], nil
	})
}

// FindByMinUsers returns categories with at least minUsers members.
func (s *CategoryService) FindByMinUsers(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error) {
	return s.search(ctx, minUsersKeyFormat, minUsers, s.repo.FindByMinUsers)
}

// FindByMinUsersNative answers the same question with the raw-SQL query and a separate cache key.
func (s *CategoryService) FindByMinUsersNative(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error) {
	return s.search(ctx, minUsersNativeKeyFormat, minUsers, s.repo.FindByMinUsersNative)
}

func (s *CategoryService) search(ctx context.Context, keyFormat string, minUsers int, find func(context.Context, int) ([]*category.Category, error)) ([]*category.CategoryWithUsers, error) {
	if minUsers < 0 {
		return nil, category.ErrNegativeMin
	}
	key := fmt.Sprintf(keyFormat, minUsers)
	return readThrough(s.caches.categorySearch(), key, func() ([]*category.CategoryWithUsers, error) {
		found, err := find(ctx, minUsers)
		if err != nil {
			return nil, err
		}
		return s.withMembers(ctx, found)
	})
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req *category.CategoryRequest) (*category.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name != existing.Name {
		if err := s.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
	}

	updated := *existing
	updated.Name = name
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	views, err := s.withMembers(ctx, []*category.Category{&updated})
	if err != nil {
		s.caches.removeCategoryView(id)
	} else {
		s.caches.putCategoryView(views[0])
	}
	s.caches.clearCategorySearch()
	// profiles embed category names
	s.caches.clearProfiles()
	return &updated, nil
}

// DeleteCategory detaches the category from every user and book, then deletes it.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.caches.removeCategoryView(id)
	s.caches.clearCategorySearch()
	s.caches.clearProfiles()
	s.caches.clearBookLists()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"category_id": id}).Info("category deleted")
	}
	return nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryService) ListCategoriesByUser(ctx context.Context, userID int64) ([]*category.Category, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *CategoryService) withMembers(ctx context.Context, cats []*category.Category) ([]*category.CategoryWithUsers, error) {
	ids := make([]int64, len(cats))
	for i, c := range cats {
		ids[i] = c.ID
	}
	members, err := s.repo.ListMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]*category.CategoryWithUsers, len(cats))
	for i, c := range cats {
		views[i] = category.NewCategoryWithUsers(c, members[c.ID])
	}
	return views, nil
}

// ensureNameFree fails with ErrAlreadyExists when a category other than selfID owns name.
func (s *CategoryService) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	other, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, category.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return category.ErrAlreadyExists
	}
	return nil
}

var _ ports.CategoryService = (*CategoryService)(nil)
