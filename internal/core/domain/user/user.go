package user

import (
	"strings"
	"time"

	"github.com/bookblog/server/internal/core/domain/domainerr"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CategoryRef is the category projection embedded in a profile
type CategoryRef struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ResponseRef is the review projection embedded in a profile
type ResponseRef struct {
	ID      int64  `json:"id" db:"id"`
	Content string `json:"content" db:"content"`
}

// Profile is the cached read model of a user with their reviews and categories
type Profile struct {
	ID         int64         `json:"id"`
	Username   string        `json:"username"`
	Responses  []ResponseRef `json:"responses"`
	Categories []CategoryRef `json:"categories"`
}

// NewProfile builds a profile; nil slices become empty so JSON shows [].
func NewProfile(u *User, responses []ResponseRef, categories []CategoryRef) *Profile {
	if responses == nil {
		responses = []ResponseRef{}
	}
	if categories == nil {
		categories = []CategoryRef{}
	}
	return &Profile{ID: u.ID, Username: u.Username, Responses: responses, Categories: categories}
}

var (
	ErrNotFound         = domainerr.NotFound("user")
	ErrAlreadyExists    = domainerr.Conflict("user with this name")
	ErrUsernameRequired = domainerr.Invalid("username must not be empty")
	ErrPasswordRequired = domainerr.Invalid("password must not be empty")
	ErrPasswordTooLong  = domainerr.Invalid("password must be at most 72 bytes")
)

// MaxPasswordBytes is the longest password bcrypt accepts
const MaxPasswordBytes = 72

// CredentialsRequest is used for registration and profile updates
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *CredentialsRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(r.Password) == "" {
		return ErrPasswordRequired
	}
	if len(r.Password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
