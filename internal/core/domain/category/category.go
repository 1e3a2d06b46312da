package category

import (
	"strings"
	"time"

	"github.com/bookblog/server/internal/core/domain/domainerr"
)

type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Member is the user projection embedded in category views
type Member struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
}

// CategoryWithUsers is the cached read model for a single category
type CategoryWithUsers struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Users []Member `json:"users"`
}

// NewCategoryWithUsers builds the read model; a nil member list becomes empty.
func NewCategoryWithUsers(c *Category, members []Member) *CategoryWithUsers {
	if members == nil {
		members = []Member{}
	}
	return &CategoryWithUsers{ID: c.ID, Name: c.Name, Users: members}
}

var (
	ErrNotFound      = domainerr.NotFound("category")
	ErrAlreadyExists = domainerr.Conflict("category with this name")
	ErrNameRequired  = domainerr.Invalid("category name must not be empty")
	ErrNegativeMin   = domainerr.Invalid("minUsers must not be negative")
)

type CategoryRequest struct {
	Name string `json:"name"`
}

func (r *CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	return nil
}
