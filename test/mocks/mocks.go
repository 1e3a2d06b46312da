package mocks

import (
	"context"
	"time"

	"github.com/bookblog/server/internal/core/domain/auth"
	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/logexport"
	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/domain/visit"
	"github.com/bookblog/server/internal/core/ports"
)

// BookRepositoryMock is a lightweight mock for BookRepository
type BookRepositoryMock struct {
	CreateFn                 func(ctx context.Context, b *book.Book) error
	CreateBatchFn            func(ctx context.Context, books []*book.Book) error
	GetByIDFn                func(ctx context.Context, id int64) (*book.Book, error)
	ExistsByTitleAndAuthorFn func(ctx context.Context, title, author string) (bool, error)
	UpdateFn                 func(ctx context.Context, b *book.Book) error
	DeleteFn                 func(ctx context.Context, id int64) error
	ListFn                   func(ctx context.Context) ([]*book.Book, error)
	ListByCategoryFn         func(ctx context.Context, categoryID int64) ([]*book.Book, error)
	AddCategoryFn            func(ctx context.Context, bookID, categoryID int64) error
	RemoveCategoryFn         func(ctx context.Context, bookID, categoryID int64) error
}

func (m *BookRepositoryMock) Create(ctx context.Context, b *book.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}
func (m *BookRepositoryMock) CreateBatch(ctx context.Context, books []*book.Book) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, books)
	}
	return nil
}
func (m *BookRepositoryMock) GetByID(ctx context.Context, id int64) (*book.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, book.ErrNotFound
}
func (m *BookRepositoryMock) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	if m.ExistsByTitleAndAuthorFn != nil {
		return m.ExistsByTitleAndAuthorFn(ctx, title, author)
	}
	return false, nil
}
func (m *BookRepositoryMock) Update(ctx context.Context, b *book.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, b)
	}
	return nil
}
func (m *BookRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *BookRepositoryMock) List(ctx context.Context) ([]*book.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*book.Book{}, nil
}
func (m *BookRepositoryMock) ListByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error) {
	if m.ListByCategoryFn != nil {
		return m.ListByCategoryFn(ctx, categoryID)
	}
	return []*book.Book{}, nil
}
func (m *BookRepositoryMock) AddCategory(ctx context.Context, bookID, categoryID int64) error {
	if m.AddCategoryFn != nil {
		return m.AddCategoryFn(ctx, bookID, categoryID)
	}
	return nil
}
func (m *BookRepositoryMock) RemoveCategory(ctx context.Context, bookID, categoryID int64) error {
	if m.RemoveCategoryFn != nil {
		return m.RemoveCategoryFn(ctx, bookID, categoryID)
	}
	return nil
}

// CategoryRepositoryMock is a lightweight mock for CategoryRepository
type CategoryRepositoryMock struct {
	CreateFn               func(ctx context.Context, c *category.Category) error
	GetByIDFn              func(ctx context.Context, id int64) (*category.Category, error)
	GetByNameFn            func(ctx context.Context, name string) (*category.Category, error)
	UpdateFn               func(ctx context.Context, c *category.Category) error
	DeleteFn               func(ctx context.Context, id int64) error
	ListFn                 func(ctx context.Context) ([]*category.Category, error)
	ListByUserFn           func(ctx context.Context, userID int64) ([]*category.Category, error)
	ListMembersFn          func(ctx context.Context, categoryIDs []int64) (map[int64][]category.Member, error)
	FindByMinUsersFn       func(ctx context.Context, minUsers int) ([]*category.Category, error)
	FindByMinUsersNativeFn func(ctx context.Context, minUsers int) ([]*category.Category, error)
}

func (m *CategoryRepositoryMock) Create(ctx context.Context, c *category.Category) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *CategoryRepositoryMock) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, category.ErrNotFound
}
func (m *CategoryRepositoryMock) GetByName(ctx context.Context, name string) (*category.Category, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return nil, category.ErrNotFound
}
func (m *CategoryRepositoryMock) Update(ctx context.Context, c *category.Category) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}
func (m *CategoryRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *CategoryRepositoryMock) List(ctx context.Context) ([]*category.Category, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []*category.Category{}, nil
}
func (m *CategoryRepositoryMock) ListByUser(ctx context.Context, userID int64) ([]*category.Category, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*category.Category{}, nil
}
func (m *CategoryRepositoryMock) ListMembers(ctx context.Context, categoryIDs []int64) (map[int64][]category.Member, error) {
	if m.ListMembersFn != nil {
		return m.ListMembersFn(ctx, categoryIDs)
	}
	return map[int64][]category.Member{}, nil
}
func (m *CategoryRepositoryMock) FindByMinUsers(ctx context.Context, minUsers int) ([]*category.Category, error) {
	if m.FindByMinUsersFn != nil {
		return m.FindByMinUsersFn(ctx, minUsers)
	}
	return []*category.Category{}, nil
}
func (m *CategoryRepositoryMock) FindByMinUsersNative(ctx context.Context, minUsers int) ([]*category.Category, error) {
	if m.FindByMinUsersNativeFn != nil {
		return m.FindByMinUsersNativeFn(ctx, minUsers)
	}
	return []*category.Category{}, nil
}

// UserRepositoryMock is a lightweight mock for UserRepository
type UserRepositoryMock struct {
	CreateFn           func(ctx context.Context, u *user.User) error
	GetByIDFn          func(ctx context.Context, id int64) (*user.User, error)
	GetByUsernameFn    func(ctx context.Context, username string) (*user.User, error)
	UpdateFn           func(ctx context.Context, u *user.User) error
	DeleteFn           func(ctx context.Context, id int64) error
	AddCategoryFn      func(ctx context.Context, userID, categoryID int64) error
	RemoveCategoryFn   func(ctx context.Context, userID, categoryID int64) error
	ListCategoryRefsFn func(ctx context.Context, userID int64) ([]user.CategoryRef, error)
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, user.ErrNotFound
}
func (m *UserRepositoryMock) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, user.ErrNotFound
}
func (m *UserRepositoryMock) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, u)
	}
	return nil
}
func (m *UserRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *UserRepositoryMock) AddCategory(ctx context.Context, userID, categoryID int64) error {
	if m.AddCategoryFn != nil {
		return m.AddCategoryFn(ctx, userID, categoryID)
	}
	return nil
}
func (m *UserRepositoryMock) RemoveCategory(ctx context.Context, userID, categoryID int64) error {
	if m.RemoveCategoryFn != nil {
		return m.RemoveCategoryFn(ctx, userID, categoryID)
	}
	return nil
}
func (m *UserRepositoryMock) ListCategoryRefs(ctx context.Context, userID int64) ([]user.CategoryRef, error) {
	if m.ListCategoryRefsFn != nil {
		return m.ListCategoryRefsFn(ctx, userID)
	}
	return []user.CategoryRef{}, nil
}

// ResponseRepositoryMock is a lightweight mock for ResponseRepository
type ResponseRepositoryMock struct {
	CreateFn     func(ctx context.Context, r *response.Response) error
	GetByIDFn    func(ctx context.Context, id int64) (*response.Response, error)
	UpdateFn     func(ctx context.Context, r *response.Response) error
	DeleteFn     func(ctx context.Context, id int64) error
	ListByUserFn func(ctx context.Context, userID int64) ([]*response.Response, error)
	ListByBookFn func(ctx context.Context, bookID int64) ([]*response.Response, error)
}

func (m *ResponseRepositoryMock) Create(ctx context.Context, r *response.Response) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *ResponseRepositoryMock) GetByID(ctx context.Context, id int64) (*response.Response, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, response.ErrNotFound
}
func (m *ResponseRepositoryMock) Update(ctx context.Context, r *response.Response) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, r)
	}
	return nil
}
func (m *ResponseRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *ResponseRepositoryMock) ListByUser(ctx context.Context, userID int64) ([]*response.Response, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return []*response.Response{}, nil
}
func (m *ResponseRepositoryMock) ListByBook(ctx context.Context, bookID int64) ([]*response.Response, error) {
	if m.ListByBookFn != nil {
		return m.ListByBookFn(ctx, bookID)
	}
	return []*response.Response{}, nil
}

// VisitRepositoryMock is a lightweight mock for VisitRepository
type VisitRepositoryMock struct {
	IncrementCountFn func(ctx context.Context, url string, at time.Time) (bool, error)
	CreateFn         func(ctx context.Context, v *visit.Visit) error
	GetByURLFn       func(ctx context.Context, url string) (*visit.Visit, error)
}

func (m *VisitRepositoryMock) IncrementCount(ctx context.Context, url string, at time.Time) (bool, error) {
	if m.IncrementCountFn != nil {
		return m.IncrementCountFn(ctx, url, at)
	}
	return false, nil
}
func (m *VisitRepositoryMock) Create(ctx context.Context, v *visit.Visit) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}
func (m *VisitRepositoryMock) GetByURL(ctx context.Context, url string) (*visit.Visit, error) {
	if m.GetByURLFn != nil {
		return m.GetByURLFn(ctx, url)
	}
	return nil, visit.ErrNotFound
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// BookServiceMock is a lightweight mock for BookService
type BookServiceMock struct {
	ListBooksFn              func(ctx context.Context) ([]*book.Book, error)
	GetBookFn                func(ctx context.Context, id int64) (*book.Book, error)
	CreateBookFn             func(ctx context.Context, req *book.BookRequest) (*book.Book, error)
	CreateBooksBulkFn        func(ctx context.Context, reqs []book.BookRequest) ([]*book.Book, error)
	UpdateBookFn             func(ctx context.Context, id int64, req *book.BookRequest) (*book.Book, error)
	DeleteBookFn             func(ctx context.Context, id int64) error
	ListBooksByCategoryFn    func(ctx context.Context, categoryID int64) ([]*book.Book, error)
	AddCategoryToBookFn      func(ctx context.Context, bookID, categoryID int64) error
	RemoveCategoryFromBookFn func(ctx context.Context, bookID, categoryID int64) error
}

func (m *BookServiceMock) ListBooks(ctx context.Context) ([]*book.Book, error) {
	if m.ListBooksFn != nil {
		return m.ListBooksFn(ctx)
	}
	return []*book.Book{}, nil
}
func (m *BookServiceMock) GetBook(ctx context.Context, id int64) (*book.Book, error) {
	if m.GetBookFn != nil {
		return m.GetBookFn(ctx, id)
	}
	return nil, book.ErrNotFound
}
func (m *BookServiceMock) CreateBook(ctx context.Context, req *book.BookRequest) (*book.Book, error) {
	if m.CreateBookFn != nil {
		return m.CreateBookFn(ctx, req)
	}
	return &book.Book{Title: req.Title, Author: req.Author}, nil
}
func (m *BookServiceMock) CreateBooksBulk(ctx context.Context, reqs []book.BookRequest) ([]*book.Book, error) {
	if m.CreateBooksBulkFn != nil {
		return m.CreateBooksBulkFn(ctx, reqs)
	}
	return []*book.Book{}, nil
}
func (m *BookServiceMock) UpdateBook(ctx context.Context, id int64, req *book.BookRequest) (*book.Book, error) {
	if m.UpdateBookFn != nil {
		return m.UpdateBookFn(ctx, id, req)
	}
	return &book.Book{ID: id, Title: req.Title, Author: req.Author}, nil
}
func (m *BookServiceMock) DeleteBook(ctx context.Context, id int64) error {
	if m.DeleteBookFn != nil {
		return m.DeleteBookFn(ctx, id)
	}
	return nil
}
func (m *BookServiceMock) ListBooksByCategory(ctx context.Context, categoryID int64) ([]*book.Book, error) {
	if m.ListBooksByCategoryFn != nil {
		return m.ListBooksByCategoryFn(ctx, categoryID)
	}
	return []*book.Book{}, nil
}
func (m *BookServiceMock) AddCategoryToBook(ctx context.Context, bookID, categoryID int64) error {
	if m.AddCategoryToBookFn != nil {
		return m.AddCategoryToBookFn(ctx, bookID, categoryID)
	}
	return nil
}
func (m *BookServiceMock) RemoveCategoryFromBook(ctx context.Context, bookID, categoryID int64) error {
	if m.RemoveCategoryFromBookFn != nil {
		return m.RemoveCategoryFromBookFn(ctx, bookID, categoryID)
	}
	return nil
}

// CategoryServiceMock is a lightweight mock for CategoryService
type CategoryServiceMock struct {
	CreateCategoryFn       func(ctx context.Context, req *category.CategoryRequest) (*category.Category, error)
	GetCategoryFn          func(ctx context.Context, id int64) (*category.CategoryWithUsers, error)
	FindByMinUsersFn       func(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error)
	FindByMinUsersNativeFn func(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error)
	UpdateCategoryFn       func(ctx context.Context, id int64, req *category.CategoryRequest) (*category.Category, error)
	DeleteCategoryFn       func(ctx context.Context, id int64) error
	ListCategoriesFn       func(ctx context.Context) ([]*category.Category, error)
	ListCategoriesByUserFn func(ctx context.Context, userID int64) ([]*category.Category, error)
}

func (m *CategoryServiceMock) CreateCategory(ctx context.Context, req *category.CategoryRequest) (*category.Category, error) {
	if m.CreateCategoryFn != nil {
		return m.CreateCategoryFn(ctx, req)
	}
	return &category.Category{Name: req.Name}, nil
}
func (m *CategoryServiceMock) GetCategory(ctx context.Context, id int64) (*category.CategoryWithUsers, error) {
	if m.GetCategoryFn != nil {
		return m.GetCategoryFn(ctx, id)
	}
	return nil, category.ErrNotFound
}
func (m *CategoryServiceMock) FindByMinUsers(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error) {
	if m.FindByMinUsersFn != nil {
		return m.FindByMinUsersFn(ctx, minUsers)
	}
	return []*category.CategoryWithUsers{}, nil
}
func (m *CategoryServiceMock) FindByMinUsersNative(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error) {
	if m.FindByMinUsersNativeFn != nil {
		return m.FindByMinUsersNativeFn(ctx, minUsers)
	}
	return []*category.CategoryWithUsers{}, nil
}
func (m *CategoryServiceMock) UpdateCategory(ctx context.Context, id int64, req *category.CategoryRequest) (*category.Category, error) {
	if m.UpdateCategoryFn != nil {
		return m.UpdateCategoryFn(ctx, id, req)
	}
	return &category.Category{ID: id, Name: req.Name}, nil
}
func (m *CategoryServiceMock) DeleteCategory(ctx context.Context, id int64) error {
	if m.DeleteCategoryFn != nil {
		return m.DeleteCategoryFn(ctx, id)
	}
	return nil
}
func (m *CategoryServiceMock) ListCategories(ctx context.Context) ([]*category.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx)
	}
	return []*category.Category{}, nil
}
func (m *CategoryServiceMock) ListCategoriesByUser(ctx context.Context, userID int64) ([]*category.Category, error) {
	if m.ListCategoriesByUserFn != nil {
		return m.ListCategoriesByUserFn(ctx, userID)
	}
	return []*category.Category{}, nil
}

// UserServiceMock is a lightweight mock for UserService
type UserServiceMock struct {
	RegisterFn           func(ctx context.Context, req *user.CredentialsRequest) (*user.User, error)
	GetUserFn            func(ctx context.Context, id int64) (*user.User, error)
	GetProfileFn         func(ctx context.Context, id int64) (*user.Profile, error)
	UpdateUserFn         func(ctx context.Context, id int64, req *user.CredentialsRequest) (*user.User, error)
	DeleteUserFn         func(ctx context.Context, id int64) error
	AddToCategoryFn      func(ctx context.Context, userID, categoryID int64) error
	RemoveFromCategoryFn func(ctx context.Context, userID, categoryID int64) error
	ListUserCategoriesFn func(ctx context.Context, userID int64) ([]*category.Category, error)
}

func (m *UserServiceMock) Register(ctx context.Context, req *user.CredentialsRequest) (*user.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, req)
	}
	return &user.User{Username: req.Username}, nil
}
func (m *UserServiceMock) GetUser(ctx context.Context, id int64) (*user.User, error) {
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, user.ErrNotFound
}
func (m *UserServiceMock) GetProfile(ctx context.Context, id int64) (*user.Profile, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, id)
	}
	return nil, user.ErrNotFound
}
func (m *UserServiceMock) UpdateUser(ctx context.Context, id int64, req *user.CredentialsRequest) (*user.User, error) {
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, req)
	}
	return &user.User{ID: id, Username: req.Username}, nil
}
func (m *UserServiceMock) DeleteUser(ctx context.Context, id int64) error {
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return nil
}
func (m *UserServiceMock) AddToCategory(ctx context.Context, userID, categoryID int64) error {
	if m.AddToCategoryFn != nil {
		return m.AddToCategoryFn(ctx, userID, categoryID)
	}
	return nil
}
func (m *UserServiceMock) RemoveFromCategory(ctx context.Context, userID, categoryID int64) error {
	if m.RemoveFromCategoryFn != nil {
		return m.RemoveFromCategoryFn(ctx, userID, categoryID)
	}
	return nil
}
func (m *UserServiceMock) ListUserCategories(ctx context.Context, userID int64) ([]*category.Category, error) {
	if m.ListUserCategoriesFn != nil {
		return m.ListUserCategoriesFn(ctx, userID)
	}
	return []*category.Category{}, nil
}

// ResponseServiceMock is a lightweight mock for ResponseService
type ResponseServiceMock struct {
	CreateResponseFn    func(ctx context.Context, userID, bookID int64, req *response.ResponseRequest) (*response.Response, error)
	ListUserResponsesFn func(ctx context.Context, userID int64) ([]*response.Response, error)
	ListBookResponsesFn func(ctx context.Context, bookID int64) ([]*response.Response, error)
	UpdateResponseFn    func(ctx context.Context, id int64, req *response.ResponseRequest) (*response.Response, error)
	DeleteResponseFn    func(ctx context.Context, id int64) error
}

func (m *ResponseServiceMock) CreateResponse(ctx context.Context, userID, bookID int64, req *response.ResponseRequest) (*response.Response, error) {
	if m.CreateResponseFn != nil {
		return m.CreateResponseFn(ctx, userID, bookID, req)
	}
	return &response.Response{UserID: userID, BookID: bookID, Content: req.Content}, nil
}
func (m *ResponseServiceMock) ListUserResponses(ctx context.Context, userID int64) ([]*response.Response, error) {
	if m.ListUserResponsesFn != nil {
		return m.ListUserResponsesFn(ctx, userID)
	}
	return nil, response.ErrNoneForUser
}
func (m *ResponseServiceMock) ListBookResponses(ctx context.Context, bookID int64) ([]*response.Response, error) {
	if m.ListBookResponsesFn != nil {
		return m.ListBookResponsesFn(ctx, bookID)
	}
	return nil, response.ErrNoneForBook
}
func (m *ResponseServiceMock) UpdateResponse(ctx context.Context, id int64, req *response.ResponseRequest) (*response.Response, error) {
	if m.UpdateResponseFn != nil {
		return m.UpdateResponseFn(ctx, id, req)
	}
	return &response.Response{ID: id, Content: req.Content}, nil
}
func (m *ResponseServiceMock) DeleteResponse(ctx context.Context, id int64) error {
	if m.DeleteResponseFn != nil {
		return m.DeleteResponseFn(ctx, id)
	}
	return nil
}

// VisitServiceMock is a lightweight mock for VisitService
type VisitServiceMock struct {
	RecordVisitFn   func(ctx context.Context, url string) error
	GetVisitStatsFn func(ctx context.Context, url string) (*visit.Visit, error)
}

func (m *VisitServiceMock) RecordVisit(ctx context.Context, url string) error {
	if m.RecordVisitFn != nil {
		return m.RecordVisitFn(ctx, url)
	}
	return nil
}
func (m *VisitServiceMock) GetVisitStats(ctx context.Context, url string) (*visit.Visit, error) {
	if m.GetVisitStatsFn != nil {
		return m.GetVisitStatsFn(ctx, url)
	}
	return &visit.Visit{URL: url}, nil
}

// AuthServiceMock is a lightweight mock for AuthService
type AuthServiceMock struct {
	LoginFn         func(ctx context.Context, req *auth.LoginRequest) (*auth.AuthToken, error)
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)
}

func (m *AuthServiceMock) Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthToken, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, req)
	}
	return nil, auth.ErrInvalidCredentials
}
func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return nil, auth.ErrInvalidCredentials
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (allowed bool, remaining int, limit int, reset time.Time, err error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (allowed bool, remaining int, limit int, reset time.Time, err error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 0, 0, time.Time{}, nil
}

// LogExportServiceMock is a lightweight mock for LogExportService
type LogExportServiceMock struct {
	CreateExportFn func(ctx context.Context) (*logexport.Task, error)
	GetTaskFn      func(ctx context.Context, id string) (*logexport.Task, error)
	ExportFileFn   func(ctx context.Context, id string) (string, error)
}

func (m *LogExportServiceMock) CreateExport(ctx context.Context) (*logexport.Task, error) {
	if m.CreateExportFn != nil {
		return m.CreateExportFn(ctx)
	}
	return &logexport.Task{ID: "task-1", Status: logexport.StatusPending}, nil
}
func (m *LogExportServiceMock) GetTask(ctx context.Context, id string) (*logexport.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, logexport.ErrNotFound
}
func (m *LogExportServiceMock) ExportFile(ctx context.Context, id string) (string, error) {
	if m.ExportFileFn != nil {
		return m.ExportFileFn(ctx, id)
	}
	return "", logexport.ErrNotFound
}

var (
	_ ports.BookRepository      = (*BookRepositoryMock)(nil)
	_ ports.CategoryRepository  = (*CategoryRepositoryMock)(nil)
	_ ports.UserRepository      = (*UserRepositoryMock)(nil)
	_ ports.ResponseRepository  = (*ResponseRepositoryMock)(nil)
	_ ports.VisitRepository     = (*VisitRepositoryMock)(nil)
	_ ports.RateLimitRepository = (*RateLimitRepositoryMock)(nil)
	_ ports.BookService         = (*BookServiceMock)(nil)
	_ ports.CategoryService     = (*CategoryServiceMock)(nil)
	_ ports.UserService         = (*UserServiceMock)(nil)
	_ ports.ResponseService     = (*ResponseServiceMock)(nil)
	_ ports.VisitService        = (*VisitServiceMock)(nil)
	_ ports.AuthService         = (*AuthServiceMock)(nil)
	_ ports.RateLimiterService  = (*RateLimiterServiceMock)(nil)
	_ ports.LogExportService    = (*LogExportServiceMock)(nil)
)
