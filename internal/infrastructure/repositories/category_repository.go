package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/infrastructure/db"
)

// CategoryRepository implements ports.CategoryRepository on Postgres
type CategoryRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(database *db.Database, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{db: database, logger: logger}
}

const categoryColumns = `id, name, created_at, updated_at`

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	err := r.db.DB.QueryRowxContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at, updated_at`, c.Name,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return category.ErrAlreadyExists
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"name": c.Name}).WithError(err).Error("db: failed to create category")
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	var c category.Category
	err := r.db.DB.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	var c category.Category
	err := r.db.DB.GetContext(ctx, &c, `SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	err := r.db.DB.QueryRowxContext(ctx,
		`UPDATE categories SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING created_at, updated_at`,
		c.ID, c.Name,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.ErrNotFound
		}
		if isUniqueViolation(err) {
			return category.ErrAlreadyExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// Delete detaches the category from users and books, then removes it, in one transaction.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_categories WHERE category_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach users from category: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM book_categories WHERE category_id = $1`, id); err != nil {
			return fmt.Errorf("failed to detach books from category: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return category.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"category_id": id}).Info("db: category deleted")
	}
	return nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*category.Category, error) {
	out := []*category.Category{}
	if err := r.db.DB.SelectContext(ctx, &out, `SELECT `+categoryColumns+` FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM categories c
		JOIN user_categories uc ON uc.category_id = c.id
		WHERE uc.user_id = $1
		ORDER BY c.id`

	out := []*category.Category{}
	if err := r.db.DB.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list categories by user: %w", err)
	}
	return out, nil
}

type memberRow struct {
	CategoryID int64  `db:"category_id"`
	ID         int64  `db:"id"`
	Username   string `db:"username"`
}

// ListMembers loads the members of all given categories with one query.
func (r *CategoryRepository) ListMembers(ctx context.Context, categoryIDs []int64) (map[int64][]category.Member, error) {
	members := make(map[int64][]category.Member, len(categoryIDs))
	if len(categoryIDs) == 0 {
		return members, nil
	}

	query, args, err := sqlx.In(`
		SELECT uc.category_id, u.id, u.username
		FROM user_categories uc
		JOIN users u ON u.id = uc.user_id
		WHERE uc.category_id IN (?)
		ORDER BY uc.category_id, u.id`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build member query: %w", err)
	}

	var rows []memberRow
	if err := r.db.DB.SelectContext(ctx, &rows, r.db.DB.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list category members: %w", err)
	}
	for _, row := range rows {
		members[row.CategoryID] = append(members[row.CategoryID], category.Member{ID: row.ID, Username: row.Username})
	}
	return members, nil
}

// FindByMinUsers groups memberships and keeps categories with at least minUsers users.
// Categories with no members only match when minUsers is 0.
func (r *CategoryRepository) FindByMinUsers(ctx context.Context, minUsers int) ([]*category.Category, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM categories c
		LEFT JOIN user_categories uc ON uc.category_id = c.id
		GROUP BY c.id, c.name, c.created_at, c.updated_at
		HAVING COUNT(uc.user_id) >= $1
		ORDER BY c.id`

	out := []*category.Category{}
	if err := r.db.DB.SelectContext(ctx, &out, query, minUsers); err != nil {
		return nil, fmt.Errorf("failed to find categories by member count: %w", err)
	}
	return out, nil
}

// FindByMinUsersNative returns the same rows as FindByMinUsers using a correlated subquery.
func (r *CategoryRepository) FindByMinUsersNative(ctx context.Context, minUsers int) ([]*category.Category, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM categories c
		WHERE (SELECT COUNT(*) FROM user_categories uc WHERE uc.category_id = c.id) >= $1
		ORDER BY c.id`

	out := []*category.Category{}
	if err := r.db.DB.SelectContext(ctx, &out, query, minUsers); err != nil {
		return nil, fmt.Errorf("failed to find categories by member count: %w", err)
	}
	return out, nil
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)
