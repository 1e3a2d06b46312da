package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/infrastructure/db"
)

// ResponseRepository implements ports.ResponseRepository on Postgres
type ResponseRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

func NewResponseRepository(database *db.Database, logger *logrus.Logger) *ResponseRepository {
	return &ResponseRepository{db: database, logger: logger}
}

const responseColumns = `id, content, user_id, book_id, created_at, updated_at`

func (r *ResponseRepository) Create(ctx context.Context, resp *response.Response) error {
	query := `
		INSERT INTO responses (content, user_id, book_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.DB.QueryRowxContext(ctx, query, resp.Content, resp.UserID, resp.BookID).
		Scan(&resp.ID, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"user_id": resp.UserID, "book_id": resp.BookID}).WithError(err).Error("db: failed to create response")
		}
		return fmt.Errorf("failed to create response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) GetByID(ctx context.Context, id int64) (*response.Response, error) {
	var resp response.Response
	err := r.db.DB.GetContext(ctx, &resp, `SELECT `+responseColumns+` FROM responses WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, response.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get response by ID: %w", err)
	}
	return &resp, nil
}

func (r *ResponseRepository) Update(ctx context.Context, resp *response.Response) error {
	err := r.db.DB.QueryRowxContext(ctx,
		`UPDATE responses SET content = $2, updated_at = NOW() WHERE id = $1
		 RETURNING user_id, book_id, created_at, updated_at`,
		resp.ID, resp.Content,
	).Scan(&resp.UserID, &resp.BookID, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response.ErrNotFound
		}
		return fmt.Errorf("failed to update response: %w", err)
	}
	return nil
}

func (r *ResponseRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM responses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete response: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return response.ErrNotFound
	}
	return nil
}

func (r *ResponseRepository) ListByUser(ctx context.Context, userID int64) ([]*response.Response, error) {
	out := []*response.Response{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+responseColumns+` FROM responses WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses by user: %w", err)
	}
	return out, nil
}

func (r *ResponseRepository) ListByBook(ctx context.Context, bookID int64) ([]*response.Response, error) {
	out := []*response.Response{}
	err := r.db.DB.SelectContext(ctx, &out,
		`SELECT `+responseColumns+` FROM responses WHERE book_id = $1 ORDER BY id`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses by book: %w", err)
	}
	return out, nil
}

var _ ports.ResponseRepository = (*ResponseRepository)(nil)
