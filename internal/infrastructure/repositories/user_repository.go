package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/infrastructure/db"
)

// UserRepository implements the user repository interface
type UserRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.Database, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		db:     database,
		logger: logger,
	}
}

const userColumns = `id, username, password_hash, created_at, updated_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, u.Username, u.PasswordHash).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"username": u.Username}).WithError(err).Error("db: failed to create user")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("db: user created")
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	err := r.db.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"user_id": id}).Debug("db: user not found by ID")
			}
			return nil, user.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Error("db: failed to get user by ID")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return &u, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	err := r.db.DB.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"username": username}).Debug("db: user not found by username")
			}
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &u, nil
}

// Update updates username and password hash
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET username = $2, password_hash = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, u.ID, u.Username, u.PasswordHash).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"user_id": u.ID}).Debug("db: update affected 0 rows - user not found")
			}
			return user.ErrNotFound
		}
		if isUniqueViolation(err) {
			return user.ErrAlreadyExists
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": u.ID}).WithError(err).Error("db: failed to update user")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete deletes a user by ID; memberships and reviews cascade
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": id}).WithError(err).Error("db: failed to delete user")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"user_id": id}).Info("db: user deleted")
	}
	return nil
}

// AddCategory adds the user to a category; joining twice is a no-op
func (r *UserRepository) AddCategory(ctx context.Context, userID, categoryID int64) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO user_categories (user_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			if _, getErr := r.GetByID(ctx, userID); getErr != nil {
				return getErr
			}
			return category.ErrNotFound
		}
		return fmt.Errorf("failed to add user to category: %w", err)
	}
	return nil
}

// RemoveCategory removes the user from a category
func (r *UserRepository) RemoveCategory(ctx context.Context, userID, categoryID int64) error {
	_, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM user_categories WHERE user_id = $1 AND category_id = $2`, userID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to remove user from category: %w", err)
	}
	return nil
}

// ListCategoryRefs returns the categories the user belongs to
func (r *UserRepository) ListCategoryRefs(ctx context.Context, userID int64) ([]user.CategoryRef, error) {
	query := `
		SELECT c.id, c.name
		FROM categories c
		JOIN user_categories uc ON uc.category_id = c.id
		WHERE uc.user_id = $1
		ORDER BY c.id`

	refs := []user.CategoryRef{}
	if err := r.db.DB.SelectContext(ctx, &refs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user categories: %w", err)
	}
	return refs, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
