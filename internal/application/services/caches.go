package services

import (
	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/ports"
)

const (
	minUsersKeyFormat       = "minUsers_%d"
	minUsersNativeKeyFormat = "minUsersNative_%d"
)

// Caches groups the read caches whose entries are derived from more than one table.
// A write in one service may have to drop entries another service filled, so they are
// shared. Any field may be nil, which disables that cache; a nil *Caches disables all.
type Caches struct {
	CategoryViews  ports.Cache[int64, *category.CategoryWithUsers]
	CategorySearch ports.Cache[string, []*category.CategoryWithUsers]
	UserProfiles   ports.Cache[int64, *user.Profile]
	UserResponses  ports.Cache[int64, []*response.Response]
	BookLists      ports.Cache[string, []*book.Book]
}

func (c *Caches) categoryViews() ports.Cache[int64, *category.CategoryWithUsers] {
	if c == nil {
		return nil
	}
	return c.CategoryViews
}

func (c *Caches) categorySearch() ports.Cache[string, []*category.CategoryWithUsers] {
	if c == nil {
		return nil
	}
	return c.CategorySearch
}

func (c *Caches) userProfiles() ports.Cache[int64, *user.Profile] {
	if c == nil {
		return nil
	}
	return c.UserProfiles
}

func (c *Caches) userResponses() ports.Cache[int64, []*response.Response] {
	if c == nil {
		return nil
	}
	return c.UserResponses
}

func (c *Caches) putCategoryView(v *category.CategoryWithUsers) {
	if cache := c.categoryViews(); cache != nil {
		cache.Put(v.ID, v)
	}
}

func (c *Caches) removeCategoryView(id int64) {
	if cache := c.categoryViews(); cache != nil {
		cache.Remove(id)
	}
}

func (c *Caches) clearCategoryViews() {
	if cache := c.categoryViews(); cache != nil {
		cache.Clear()
	}
}

func (c *Caches) clearCategorySearch() {
	if cache := c.categorySearch(); cache != nil {
		cache.Clear()
	}
}

func (c *Caches) removeProfile(userID int64) {
	if cache := c.userProfiles(); cache != nil {
		cache.Remove(userID)
	}
}

func (c *Caches) clearProfiles() {
	if cache := c.userProfiles(); cache != nil {
		cache.Clear()
	}
}

func (c *Caches) removeUserResponses(userID int64) {
	if cache := c.userResponses(); cache != nil {
		cache.Remove(userID)
	}
}

func (c *Caches) clearUserResponses() {
	if cache := c.userResponses(); cache != nil {
		cache.Clear()
	}
}

func (c *Caches) clearBookLists() {
	if c != nil && c.BookLists != nil {
		c.BookLists.Clear()
	}
}

// readThrough uses cache when present and falls back to load otherwise.
func readThrough[K comparable, V any](cache ports.Cache[K, V], key K, load func() (V, error)) (V, error) {
	if cache == nil {
		return load()
	}
	return cache.GetOrCompute(key, load)
}
