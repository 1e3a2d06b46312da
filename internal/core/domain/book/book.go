package book

import (
	"strings"
	"time"

	"github.com/bookblog/server/internal/core/domain/domainerr"
)

type Book struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    string    `json:"author" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

var (
	ErrNotFound       = domainerr.NotFound("book")
	ErrAlreadyExists  = domainerr.Conflict("book with this title and author")
	ErrTitleRequired  = domainerr.Invalid("title must not be empty")
	ErrAuthorRequired = domainerr.Invalid("author must not be empty")
	ErrEmptyBatch     = domainerr.Invalid("book list must not be empty")
	ErrNoValidBooks   = domainerr.Invalid("no valid books to add")
)

// BookRequest is the payload for creating or updating a book
type BookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// Validate checks that title and author are non-blank
func (r *BookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(r.Author) == "" {
		return ErrAuthorRequired
	}
	return nil
}
