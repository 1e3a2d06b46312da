package repositories

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/ports"
)

const bookListAllKey = "books:all"

func bookListByCategoryKey(categoryID int64) string {
	return "books:category:" + strconv.FormatInt(categoryID, 10)
}

// loadListWithSingleflight coalesces concurrent list loads for the same key and caches the result.
func loadListWithSingleflight[T any](sf *singleflight.Group, cache ports.Cache[string, []T], key string, loader func() ([]T, error)) ([]T, error) {
	if cache != nil {
		if v, ok := cache.Get(key); ok {
			return v, nil
		}
	}
	res, err, _ := sf.Do(key, func() (any, error) {
		if cache != nil {
			if v, ok := cache.Get(key); ok {
				return v, nil
			}
		}
		all, err := loader()
		if err != nil {
			return nil, err
		}
		if cache != nil {
			cache.Put(key, all)
		}
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	all, ok := res.([]T)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return all, nil
}

// CachingBookRepository decorates a BookRepository with read-through caches.
// Single books are cached by ID; list results are cached by query and dropped on any write.
type CachingBookRepository struct {
	inner ports.BookRepository
	byID  ports.Cache[int64, *book.Book]
	lists ports.Cache[string, []*book.Book]
	sf    singleflight.Group
}

func NewCachingBookRepository(inner ports.BookRepository, byID ports.Cache[int64, *book.Book], lists ports.Cache[string, []*book.Book]) *CachingBookRepository {
	return &CachingBookRepository{inner: inner, byID: byID, lists: lists}
}

func (c *CachingBookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := c.inner.Create(ctx, b); err != nil {
		return err
	}
	c.putBook(b)
	c.clearLists()
	return nil
}

func (c *CachingBookRepository) CreateBatch(ctx context.Context, books []*book.Book) error {
	if err := c.inner.CreateBatch(ctx, books); err != nil {
		return err
	}
	for _, b := range books {
		c.putBook(b)
	}
	c.clearLists()
	return nil
}

func (c *CachingBookRepository) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	if c.byID == nil {
		return c.inner.GetByID(ctx, id)
	}
	return c.byID.GetOrCompute(id, func() (*book.Book, error) {
		return c.inner.GetByID(ctx, id)
	})
}

func (c *CachingBookRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	return c.inner.ExistsByTitleAndAuthor(ctx, title, author)
}

func (c *CachingBookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := c.inner.Update(ctx, b); err != nil {
		return err
	}
	c.putBook(b)
	c.clearLists()
	return nil
}

func (c *CachingBookRepository) Delete(ctx context.Context, id int64) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	if c.byID != nil {
		c.byID.Remove(id)
	}
	c.clearLists()
	return nil
}

func (c *CachingBookRepository) List(ctx context.Context) ([]*book.Book, error) {
	return loadListWithSingleflight(&c.sf, c.lists, bookListAllKey, func() ([]*book.Book, error) {
		return c.inner.List(ctx)
	})
}

func (c *CachingBookRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error) {
	return loadListWithSingleflight(&c.sf, c.lists, bookListByCategoryKey(categoryID), func() ([]*book.Book, error) {
		return c.inner.ListByCategory(ctx, categoryID)
	})
}

func (c *CachingBookRepository) AddCategory(ctx context.Context, bookID, categoryID int64) error {
	if err := c.inner.AddCategory(ctx, bookID, categoryID); err != nil {
		return err
	}
	if c.lists != nil {
		c.lists.Remove(bookListByCategoryKey(categoryID))
	}
	return nil
}

func (c *CachingBookRepository) RemoveCategory(ctx context.Context, bookID, categoryID int64) error {
	if err := c.inner.RemoveCategory(ctx, bookID, categoryID); err != nil {
		return err
	}
	if c.lists != nil {
		c.lists.Remove(bookListByCategoryKey(categoryID))
	}
	return nil
}

func (c *CachingBookRepository) putBook(b *book.Book) {
	if c.byID != nil {
		c.byID.Put(b.ID, b)
	}
}

func (c *CachingBookRepository) clearLists() {
	if c.lists != nil {
		c.lists.Clear()
	}
}

var _ ports.BookRepository = (*CachingBookRepository)(nil)
