package visit

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bookblog/server/internal/core/domain/domainerr"
)

// MaxURLLength matches the width of the visits.url column, in characters
const MaxURLLength = 768

// Visit is the per-URL hit counter
type Visit struct {
	URL         string     `json:"url" db:"url"`
	Count       int64      `json:"count" db:"count"`
	LastUpdated *time.Time `json:"last_updated" db:"last_updated"`
}

var (
	ErrNotFound    = domainerr.NotFound("visit")
	ErrURLRequired = domainerr.Invalid("url must not be empty")
	ErrURLTooLong  = domainerr.Invalid("url is too long")
	// ErrAlreadyExists means another writer inserted the counter first
	ErrAlreadyExists = domainerr.Conflict("visit counter")
)

// ValidateURL checks a tracked URL before it reaches storage
func ValidateURL(url string) error {
	if strings.TrimSpace(url) == "" {
		return ErrURLRequired
	}
	if utf8.RuneCountInString(url) > MaxURLLength {
		return ErrURLTooLong
	}
	return nil
}
