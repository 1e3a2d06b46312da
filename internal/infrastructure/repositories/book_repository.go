package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/infrastructure/db"
)

// BookRepository implements ports.BookRepository on Postgres
type BookRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(database *db.Database, logger *logrus.Logger) *BookRepository {
	return &BookRepository{db: database, logger: logger}
}

const bookColumns = `id, title, author, created_at, updated_at`

// Create inserts a book and fills in its ID and timestamps
func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (title, author)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, b.Title, b.Author).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return book.ErrAlreadyExists
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"title": b.Title, "author": b.Author}).WithError(err).Error("db: failed to create book")
		}
		return fmt.Errorf("failed to create book: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"book_id": b.ID}).Debug("db: book created")
	}
	return nil
}

// CreateBatch inserts all books in a single transaction
func (r *BookRepository) CreateBatch(ctx context.Context, books []*book.Book) error {
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, `
			INSERT INTO books (title, author)
			VALUES ($1, $2)
			RETURNING id, created_at, updated_at`)
		if err != nil {
			return fmt.Errorf("failed to prepare book insert: %w", err)
		}
		defer stmt.Close()

		for _, b := range books {
			if err := stmt.QueryRowxContext(ctx, b.Title, b.Author).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
				if isUniqueViolation(err) {
					return book.ErrAlreadyExists
				}
				return fmt.Errorf("failed to insert book %q: %w", b.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"count": len(books)}).Info("db: book batch created")
	}
	return nil
}

// GetByID retrieves a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	var b book.Book
	err := r.db.DB.GetContext(ctx, &b, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"book_id": id}).Debug("db: book not found by ID")
			}
			return nil, book.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get book by ID: %w", err)
	}
	return &b, nil
}

// ExistsByTitleAndAuthor reports whether a book with the exact title and author is stored
func (r *BookRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	var exists bool
	err := r.db.DB.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM books WHERE title = $1 AND author = $2)`, title, author)
	if err != nil {
		return false, fmt.Errorf("failed to check book existence: %w", err)
	}
	return exists, nil
}

// Update overwrites title and author
func (r *BookRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books SET title = $2, author = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, b.ID, b.Title, b.Author).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.ErrNotFound
		}
		if isUniqueViolation(err) {
			return book.ErrAlreadyExists
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"book_id": b.ID}).WithError(err).Error("db: failed to update book")
		}
		return fmt.Errorf("failed to update book: %w", err)
	}
	return nil
}

// Delete removes a book; its category links and reviews cascade
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"book_id": id}).WithError(err).Error("db: failed to delete book")
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return book.ErrNotFound
	}
	return nil
}

// List returns all books ordered by ID
func (r *BookRepository) List(ctx context.Context) ([]*book.Book, error) {
	books := []*book.Book{}
	if err := r.db.DB.SelectContext(ctx, &books, `SELECT `+bookColumns+` FROM books ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// ListByCategory returns the books linked to a category
func (r *BookRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error) {
	query := `
		SELECT b.id, b.title, b.author, b.created_at, b.updated_at
		FROM books b
		JOIN book_categories bc ON bc.book_id = b.id
		WHERE bc.category_id = $1
		ORDER BY b.id`

	books := []*book.Book{}
	if err := r.db.DB.SelectContext(ctx, &books, query, categoryID); err != nil {
		return nil, fmt.Errorf("failed to list books by category: %w", err)
	}
	return books, nil
}

// AddCategory links a book to a category; linking twice is a no-op
func (r *BookRepository) AddCategory(ctx context.Context, bookID, categoryID int64) error {
	_, err := r.db.DB.ExecContext(ctx, `
		INSERT INTO book_categories (book_id, category_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, bookID, categoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return r.missingLink(ctx, bookID)
		}
		return fmt.Errorf("failed to add category to book: %w", err)
	}
	return nil
}

// RemoveCategory unlinks a book from a category
func (r *BookRepository) RemoveCategory(ctx context.Context, bookID, categoryID int64) error {
	_, err := r.db.DB.ExecContext(ctx,
		`DELETE FROM book_categories WHERE book_id = $1 AND category_id = $2`, bookID, categoryID)
	if err != nil {
		return fmt.Errorf("failed to remove category from book: %w", err)
	}
	return nil
}

// missingLink tells which side of a failed link insert does not exist.
func (r *BookRepository) missingLink(ctx context.Context, bookID int64) error {
	if _, err := r.GetByID(ctx, bookID); err != nil {
		return err
	}
	return category.ErrNotFound
}

var _ ports.BookRepository = (*BookRepository)(nil)
