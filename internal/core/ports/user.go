package ports

import (
	"context"

	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/user"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id int64) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id int64) error
	AddCategory(ctx context.Context, userID, categoryID int64) error
	RemoveCategory(ctx context.Context, userID, categoryID int64) error
	ListCategoryRefs(ctx context.Context, userID int64) ([]user.CategoryRef, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req *user.CredentialsRequest) (*user.User, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
	GetProfile(ctx context.Context, id int64) (*user.Profile, error)
	UpdateUser(ctx context.Context, id int64, req *user.CredentialsRequest) (*user.User, error)
	DeleteUser(ctx context.Context, id int64) error
	AddToCategory(ctx context.Context, userID, categoryID int64) error
	RemoveFromCategory(ctx context.Context, userID, categoryID int64) error
	ListUserCategories(ctx context.Context, userID int64) ([]*category.Category, error)
}
