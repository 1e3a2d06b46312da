package ports

import (
	"context"

	"github.com/bookblog/server/internal/core/domain/category"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, c *category.Category) error
	GetByID(ctx context.Context, id int64) (*category.Category, error)
	GetByName(ctx context.Context, name string) (*category.Category, error)
	Update(ctx context.Context, c *category.Category) error
	// Delete removes the category together with its user and book links.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*category.Category, error)
	ListByUser(ctx context.Context, userID int64) ([]*category.Category, error)
	// ListMembers returns the members of each requested category, keyed by category ID.
	ListMembers(ctx context.Context, categoryIDs []int64) (map[int64][]category.Member, error)
	// FindByMinUsers returns categories with at least minUsers members (join + HAVING).
	FindByMinUsers(ctx context.Context, minUsers int) ([]*category.Category, error)
	// FindByMinUsersNative is the correlated-subquery variant of FindByMinUsers.
	FindByMinUsersNative(ctx context.Context, minUsers int) ([]*category.Category, error)
}

// CategoryService defines the interface for category business logic
type CategoryService interface {
	CreateCategory(ctx context.Context, req *category.CategoryRequest) (*category.Category, error)
	GetCategory(ctx context.Context, id int64) (*category.CategoryWithUsers, error)
	FindByMinUsers(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error)
	FindByMinUsersNative(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error)
	UpdateCategory(ctx context.Context, id int64, req *category.CategoryRequest) (*category.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*category.Category, error)
	ListCategoriesByUser(ctx context.Context, userID int64) ([]*category.Category, error)
}
