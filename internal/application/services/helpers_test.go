package services_test

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookblog/server/internal/application/services"
	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/infrastructure/memcache"
	"github.com/bookblog/server/internal/utils"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

type testCaches struct {
	*services.Caches
	books *memcache.Cache[int64, *book.Book]
}

func newTestCaches(t *testing.T) testCaches {
	t.Helper()
	cfg := memcache.Config{MaxSize: 16, TTL: time.Minute}
	views, err := memcache.New[int64, *category.CategoryWithUsers]("category_views", cfg, nil)
	require.NoError(t, err)
	search, err := memcache.New[string, []*category.CategoryWithUsers]("category_search", cfg, nil)
	require.NoError(t, err)
	profiles, err := memcache.New[int64, *user.Profile]("user_profiles", cfg, nil)
	require.NoError(t, err)
	responses, err := memcache.New[int64, []*response.Response]("user_responses", cfg, nil)
	require.NoError(t, err)
	lists, err := memcache.New[string, []*book.Book]("book_lists", cfg, nil)
	require.NoError(t, err)
	books, err := memcache.New[int64, *book.Book]("books", cfg, nil)
	require.NoError(t, err)
	return testCaches{
		Caches: &services.Caches{
			CategoryViews:  views,
			CategorySearch: search,
			UserProfiles:   profiles,
			UserResponses:  responses,
			BookLists:      lists,
		},
		books: books,
	}
}
