package response

import (
	"strings"
	"time"

	"github.com/bookblog/server/internal/core/domain/domainerr"
)

// Response is a user's review of a book
type Response struct {
	ID        int64     `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	UserID    int64     `json:"user_id" db:"user_id"`
	BookID    int64     `json:"book_id" db:"book_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrNotFound        = domainerr.NotFound("response")
	ErrNoneForUser     = domainerr.NotFound("responses for user")
	ErrNoneForBook     = domainerr.NotFound("responses for book")
	ErrContentRequired = domainerr.Invalid("response content must not be empty")
)

type ResponseRequest struct {
	Content string `json:"content"`
}

func (r *ResponseRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrContentRequired
	}
	return nil
}
