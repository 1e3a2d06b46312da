package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookblog/server/internal/application/services"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/user"
	tmocks "github.com/bookblog/server/test/mocks"
)

func TestGetCategory_ReadThrough(t *testing.T) {
	tc := newTestCaches(t)
	getCalls := 0
	repo := &tmocks.CategoryRepositoryMock{
		GetByIDFn: func(ctx context.Context, id int64) (*category.Category, error) {
			getCalls++
			if id != 1 {
				return nil, category.ErrNotFound
			}
			return &category.Category{ID: 1, Name: "sci-fi"}, nil
		},
		ListMembersFn: func(ctx context.Context, ids []int64) (map[int64][]category.Member, error) {
			return map[int64][]category.Member{1: {{ID: 10, Username: "ann"}}}, nil
		},
	}
	svc := services.NewCategoryService(repo, tc.Caches, nil)
	ctx := context.Background()

	v, err := svc.GetCategory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "sci-fi", v.Name)
	require.Equal(t, []category.Member{{ID: 10, Username: "ann"}}, v.Users)

	_, err = svc.GetCategory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, getCalls)

	_, err = svc.GetCategory(ctx, 2)
	require.ErrorIs(t, err, category.ErrNotFound)
	_, err = svc.GetCategory(ctx, 2)
	require.ErrorIs(t, err, category.ErrNotFound)
	require.Equal(t, 3, getCalls, "not-found results are not cached")
}

func TestCreateCategory_PopulatesViewAndClearsSearch(t *testing.T) {
	tc := newTestCaches(t)
	tc.CategorySearch.Put("minUsers_0", []*category.CategoryWithUsers{})
	repo := &tmocks.CategoryRepositoryMock{
		CreateFn: func(ctx context.Context, c *category.Category) error {
			c.ID = 4
			return nil
		},
		GetByIDFn: func(ctx context.Context, id int64) (*category.Category, error) {
			t.Fatal("view should come from the cache")
			return nil, nil
		},
	}
	svc := services.NewCategoryService(repo, tc.Caches, quietLogger())
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, &category.CategoryRequest{Name: "poetry"})
	require.NoError(t, err)
	require.Equal(t, int64(4), c.ID)

	v, err := svc.GetCategory(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, "poetry", v.Name)
	require.Empty(t, v.Users)

	_, ok := tc.CategorySearch.Get("minUsers_0")
	require.False(t, ok)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	repo := &tmocks.CategoryRepositoryMock{GetByNameFn: func(ctx context.Context, name string) (*category.Category, error) {
		return &category.Category{ID: 1, Name: name}, nil
	}}
	svc := services.NewCategoryService(repo, nil, nil)

	_, err := svc.CreateCategory(context.Background(), &category.CategoryRequest{Name: "poetry"})
	require.ErrorIs(t, err, category.ErrAlreadyExists)

	_, err = svc.CreateCategory(context.Background(), &category.CategoryRequest{Name: "  "})
	require.ErrorIs(t, err, category.ErrNameRequired)
}

func TestFindByMinUsers_CachedPerKeyAndVariant(t *testing.T) {
	tc := newTestCaches(t)
	joinCalls, nativeCalls := 0, 0
	repo := &tmocks.CategoryRepositoryMock{
		FindByMinUsersFn: func(ctx context.Context, n int) ([]*category.Category, error) {
			joinCalls++
			return []*category.Category{{ID: 1, Name: "a"}}, nil
		},
		FindByMinUsersNativeFn: func(ctx context.Context, n int) ([]*category.Category, error) {
			nativeCalls++
			return []*category.Category{{ID: 1, Name: "a"}}, nil
		},
	}
	svc := services.NewCategoryService(repo, tc.Caches, nil)
	ctx := context.Background()

	_, err := svc.FindByMinUsers(ctx, -1)
	require.ErrorIs(t, err, category.ErrNegativeMin)

	for i := 0; i < 2; i++ {
		got, err := svc.FindByMinUsers(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Users)
		_, err = svc.FindByMinUsersNative(ctx, 2)
		require.NoError(t, err)
	}
	_, err = svc.FindByMinUsers(ctx, 3)
	require.NoError(t, err)

	require.Equal(t, 2, joinCalls)
	require.Equal(t, 1, nativeCalls)
	_, ok := tc.CategorySearch.Get("minUsers_2")
	require.True(t, ok)
	_, ok = tc.CategorySearch.Get("minUsersNative_2")
	require.True(t, ok)
}

func TestDeleteCategory_InvalidatesDerivedCaches(t *testing.T) {
	tc := newTestCaches(t)
	tc.CategoryViews.Put(3, &category.CategoryWithUsers{ID: 3})
	tc.CategorySearch.Put("minUsers_1", nil)
	tc.UserProfiles.Put(9, &user.Profile{ID: 9})
	tc.BookLists.Put("books:category:3", nil)
	deleted := int64(0)
	repo := &tmocks.CategoryRepositoryMock{DeleteFn: func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}}
	svc := services.NewCategoryService(repo, tc.Caches, nil)

	require.NoError(t, svc.DeleteCategory(context.Background(), 3))
	require.Equal(t, int64(3), deleted)

	_, ok := tc.CategoryViews.Get(3)
	require.False(t, ok)
	_, ok = tc.CategorySearch.Get("minUsers_1")
	require.False(t, ok)
	_, ok = tc.UserProfiles.Get(9)
	require.False(t, ok)
	_, ok = tc.BookLists.Get("books:category:3")
	require.False(t, ok)
}

func TestDeleteCategory_NotFoundKeepsCaches(t *testing.T) {
	tc := newTestCaches(t)
	tc.CategoryViews.Put(3, &category.CategoryWithUsers{ID: 3})
	repo := &tmocks.CategoryRepositoryMock{DeleteFn: func(ctx context.Context, id int64) error {
		return category.ErrNotFound
	}}
	svc := services.NewCategoryService(repo, tc.Caches, nil)

	require.ErrorIs(t, svc.DeleteCategory(context.Background(), 3), category.ErrNotFound)
	_, ok := tc.CategoryViews.Get(3)
	require.True(t, ok)
}

func TestUpdateCategory_RefreshesView(t *testing.T) {
	tc := newTestCaches(t)
	repo := &tmocks.CategoryRepositoryMock{
		GetByIDFn: func(ctx context.Context, id int64) (*category.Category, error) {
			return &category.Category{ID: id, Name: "old"}, nil
		},
		ListMembersFn: func(ctx context.Context, ids []int64) (map[int64][]category.Member, error) {
			return map[int64][]category.Member{}, nil
		},
	}
	svc := services.NewCategoryService(repo, tc.Caches, nil)
	ctx := context.Background()

	_, err := svc.GetCategory(ctx, 2)
	require.NoError(t, err)

	_, err = svc.UpdateCategory(ctx, 2, &category.CategoryRequest{Name: "new"})
	require.NoError(t, err)

	v, ok := tc.CategoryViews.Get(2)
	require.True(t, ok)
	require.Equal(t, "new", v.Name)
}

func TestCategoryNameCheck_StorageErrorIsNotTreatedAsFree(t *testing.T) {
	dbDown := errors.New("connection refused")
	repo := &tmocks.CategoryRepositoryMock{
		GetByIDFn: func(ctx context.Context, id int64) (*category.Category, error) {
			return &category.Category{ID: id, Name: "poetry"}, nil
		},
		GetByNameFn: func(ctx context.Context, name string) (*category.Category, error) {
			return nil, dbDown
		},
		CreateFn: func(ctx context.Context, c *category.Category) error {
			t.Fatal("create must not run when the uniqueness check failed")
			return nil
		},
	}
	svc := services.NewCategoryService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &category.CategoryRequest{Name: "drama"})
	require.ErrorIs(t, err, dbDown)

	_, err = svc.UpdateCategory(ctx, 1, &category.CategoryRequest{Name: "drama"})
	require.ErrorIs(t, err, dbDown)
}

func TestUpdateCategory_KeepingOwnNameIsAllowed(t *testing.T) {
	repo := &tmocks.CategoryRepositoryMock{
		GetByIDFn: func(ctx context.Context, id int64) (*category.Category, error) {
			return &category.Category{ID: id, Name: "poetry"}, nil
		},
		GetByNameFn: func(ctx context.Context, name string) (*category.Category, error) {
			return &category.Category{ID: 1, Name: name}, nil
		},
	}
	svc := services.NewCategoryService(repo, nil, nil)

	_, err := svc.UpdateCategory(context.Background(), 1, &category.CategoryRequest{Name: " poetry "})
	require.NoError(t, err)
}
