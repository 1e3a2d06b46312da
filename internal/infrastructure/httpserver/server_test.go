package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/bookblog/server/internal/core/domain/auth"
	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/logexport"
	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/domain/visit"
	"github.com/bookblog/server/internal/infrastructure/httpserver"
	"github.com/bookblog/server/test/mocks"
)

const validToken = "valid-token"

// authAs returns an auth mock that accepts validToken for userID.
func authAs(userID int64) *mocks.AuthServiceMock {
	return &mocks.AuthServiceMock{ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
		if token != validToken {
			return nil, auth.ErrInvalidCredentials
		}
		return &auth.Claims{UserID: userID, Username: "reader"}, nil
	}}
}

func newTestServer(t *testing.T, deps httpserver.ServerDeps) *httptest.Server {
	t.Helper()
	fill := func() {
		if deps.BookService == nil {
			deps.BookService = &mocks.BookServiceMock{}
		}
		if deps.CategoryService == nil {
			deps.CategoryService = &mocks.CategoryServiceMock{}
		}
		if deps.UserService == nil {
			deps.UserService = &mocks.UserServiceMock{}
		}
		if deps.ResponseService == nil {
			deps.ResponseService = &mocks.ResponseServiceMock{}
		}
		if deps.VisitService == nil {
			deps.VisitService = &mocks.VisitServiceMock{}
		}
		if deps.AuthService == nil {
			deps.AuthService = authAs(1)
		}
		if deps.LogExportService == nil {
			deps.LogExportService = &mocks.LogExportServiceMock{}
		}
	}
	fill()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	srv := httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0", ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second}, logger, deps)
	ts := httptest.NewServer(srv.Echo())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var b []byte
	if body != nil {
		var err error
		b, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(b))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func TestLogin(t *testing.T) {
	authMock := authAs(1)
	authMock.LoginFn = func(ctx context.Context, req *auth.LoginRequest) (*auth.AuthToken, error) {
		if req.Username == "reader" && req.Password == "secret" {
			return &auth.AuthToken{AccessToken: "access-x", TokenType: "Bearer", ExpiresIn: 3600, UserID: 1}, nil
		}
		return nil, auth.ErrInvalidCredentials
	}
	ts := newTestServer(t, httpserver.ServerDeps{AuthService: authMock})

	resp, body := doJSON(t, ts, http.MethodPost, "/api/auth/login", map[string]string{"username": "reader", "password": "secret"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var token auth.AuthToken
	require.NoError(t, json.Unmarshal(body, &token))
	require.Equal(t, "access-x", token.AccessToken)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/auth/login", map[string]string{"username": "reader", "password": "wrong"}, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBooks_ReadsArePublicWritesNeedToken(t *testing.T) {
	created := false
	bookMock := &mocks.BookServiceMock{
		ListBooksFn: func(ctx context.Context) ([]*book.Book, error) {
			return []*book.Book{{ID: 1, Title: "Dune", Author: "Herbert"}}, nil
		},
		CreateBookFn: func(ctx context.Context, req *book.BookRequest) (*book.Book, error) {
			created = true
			return &book.Book{ID: 2, Title: req.Title, Author: req.Author}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{BookService: bookMock})

	resp, body := doJSON(t, ts, http.MethodGet, "/api/books", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var books []book.Book
	require.NoError(t, json.Unmarshal(body, &books))
	require.Len(t, books, 1)

	req := book.BookRequest{Title: "Emma", Author: "Austen"}
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/books", req, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.False(t, created)

	resp, body = doJSON(t, ts, http.MethodPost, "/api/books", req, validToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var got book.Book
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, int64(2), got.ID)
}

func TestBooks_ErrorMapping(t *testing.T) {
	bookMock := &mocks.BookServiceMock{
		CreateBookFn: func(ctx context.Context, req *book.BookRequest) (*book.Book, error) {
			return nil, book.ErrAlreadyExists
		},
		UpdateBookFn: func(ctx context.Context, id int64, req *book.BookRequest) (*book.Book, error) {
			return nil, book.ErrTitleRequired
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{BookService: bookMock})

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/books/99", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/books/abc", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/books", book.BookRequest{Title: "Dune", Author: "Herbert"}, validToken)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPut, "/api/books/1", book.BookRequest{Author: "Herbert"}, validToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBooks_BulkCreate(t *testing.T) {
	var got []book.BookRequest
	bookMock := &mocks.BookServiceMock{
		CreateBooksBulkFn: func(ctx context.Context, reqs []book.BookRequest) ([]*book.Book, error) {
			got = reqs
			return []*book.Book{{ID: 1, Title: reqs[0].Title, Author: reqs[0].Author}}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{BookService: bookMock})

	payload := []book.BookRequest{{Title: "Dune", Author: "Herbert"}, {Title: "", Author: "Nobody"}}
	resp, _ := doJSON(t, ts, http.MethodPost, "/api/books/bulk", payload, validToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, payload, got)
}

func TestBooks_CategoryLinks(t *testing.T) {
	var linked [2]int64
	bookMock := &mocks.BookServiceMock{
		AddCategoryToBookFn: func(ctx context.Context, bookID, categoryID int64) error {
			linked = [2]int64{bookID, categoryID}
			return nil
		},
		RemoveCategoryFromBookFn: func(ctx context.Context, bookID, categoryID int64) error {
			return category.ErrNotFound
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{BookService: bookMock})

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/books/3/category/4", nil, validToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, [2]int64{3, 4}, linked)

	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/books/3/category/4", nil, validToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategories_FilterByMinUsers(t *testing.T) {
	var joinMin, nativeMin int
	categoryMock := &mocks.CategoryServiceMock{
		FindByMinUsersFn: func(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error) {
			joinMin = minUsers
			return []*category.CategoryWithUsers{}, nil
		},
		FindByMinUsersNativeFn: func(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error) {
			nativeMin = minUsers
			return []*category.CategoryWithUsers{}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{CategoryService: categoryMock})

	resp, _ := doJSON(t, ts, http.MethodGet, "/api/categories/filter-by-users?minUsers=3", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 3, joinMin)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/categories/filter-by-users-native?minUsers=2", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 2, nativeMin)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/categories/filter-by-users?minUsers=many", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsers_WritesRequireSelf(t *testing.T) {
	deleted := int64(0)
	userMock := &mocks.UserServiceMock{
		DeleteUserFn: func(ctx context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{UserService: userMock, AuthService: authAs(5)})

	resp, _ := doJSON(t, ts, http.MethodDelete, "/api/users/6", nil, validToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Zero(t, deleted)

	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/users/5", nil, validToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, int64(5), deleted)
}

func TestUsers_RegisterAndProfile(t *testing.T) {
	userMock := &mocks.UserServiceMock{
		RegisterFn: func(ctx context.Context, req *user.CredentialsRequest) (*user.User, error) {
			if req.Username == "taken" {
				return nil, user.ErrAlreadyExists
			}
			return &user.User{ID: 9, Username: req.Username}, nil
		},
		GetProfileFn: func(ctx context.Context, id int64) (*user.Profile, error) {
			return user.NewProfile(&user.User{ID: id, Username: "reader"}, nil, []user.CategoryRef{{ID: 1, Name: "Sci-Fi"}}), nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{UserService: userMock})

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/users/register", map[string]string{"username": "new", "password": "pw"}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/users", map[string]string{"username": "taken", "password": "pw"}, "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body := doJSON(t, ts, http.MethodGet, "/api/users/9", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), "Sci-Fi")
}

func TestResponses_CreateOnlyAsSelf(t *testing.T) {
	responseMock := &mocks.ResponseServiceMock{
		CreateResponseFn: func(ctx context.Context, userID, bookID int64, req *response.ResponseRequest) (*response.Response, error) {
			return &response.Response{ID: 1, UserID: userID, BookID: bookID, Content: req.Content}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{ResponseService: responseMock, AuthService: authAs(2)})

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/responses/user/3/book/1", map[string]string{"content": "great"}, validToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, ts, http.MethodPost, "/api/responses/user/2/book/1", map[string]string{"content": "great"}, validToken)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var got response.Response
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "great", got.Content)
}

func TestVisits_TrackAndStats(t *testing.T) {
	var tracked string
	visitMock := &mocks.VisitServiceMock{
		RecordVisitFn: func(ctx context.Context, url string) error {
			if url == "" {
				return visit.ErrURLRequired
			}
			tracked = url
			return nil
		},
		GetVisitStatsFn: func(ctx context.Context, url string) (*visit.Visit, error) {
			return &visit.Visit{URL: url, Count: 4}, nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{VisitService: visitMock})

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/visits/track?url=/books/1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/books/1", tracked)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/visits/track", nil, "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, ts, http.MethodGet, "/api/visits/stats?url=/books/1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v visit.Visit
	require.NoError(t, json.Unmarshal(body, &v))
	require.Equal(t, int64(4), v.Count)
}

func TestHealthIsServed(t *testing.T) {
	ts := newTestServer(t, httpserver.ServerDeps{})
	resp, _ := doJSON(t, ts, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFavoritesAliasSharesMembership(t *testing.T) {
	var added, removed [][2]int64
	users := &mocks.UserServiceMock{
		AddToCategoryFn: func(ctx context.Context, userID, categoryID int64) error {
			added = append(added, [2]int64{userID, categoryID})
			return nil
		},
		RemoveFromCategoryFn: func(ctx context.Context, userID, categoryID int64) error {
			removed = append(removed, [2]int64{userID, categoryID})
			return nil
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{UserService: users, AuthService: authAs(1)})

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/users/1/favorites/5", nil, validToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, ts, http.MethodPost, "/api/users/1/categories/6", nil, validToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/users/1/favorites/5", nil, validToken)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, [][2]int64{{1, 5}, {1, 6}}, added)
	require.Equal(t, [][2]int64{{1, 5}}, removed)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/users/2/favorites/5", nil, validToken)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, _ = doJSON(t, ts, http.MethodDelete, "/api/users/1/favorites/5", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Len(t, removed, 1)
}

func TestLogExportRoutes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "log_abc.log")
	require.NoError(t, os.WriteFile(file, []byte("started\n"), 0o600))
	exports := &mocks.LogExportServiceMock{
		CreateExportFn: func(ctx context.Context) (*logexport.Task, error) {
			return &logexport.Task{ID: "abc", Status: logexport.StatusPending}, nil
		},
		GetTaskFn: func(ctx context.Context, id string) (*logexport.Task, error) {
			switch id {
			case "abc":
				return &logexport.Task{ID: id, Status: logexport.StatusCompleted, FilePath: file}, nil
			case "slow":
				return &logexport.Task{ID: id, Status: logexport.StatusProcessing}, nil
			}
			return nil, logexport.ErrNotFound
		},
		ExportFileFn: func(ctx context.Context, id string) (string, error) {
			switch id {
			case "abc":
				return file, nil
			case "slow":
				return "", logexport.ErrNotReady
			}
			return "", logexport.ErrNotFound
		},
	}
	ts := newTestServer(t, httpserver.ServerDeps{LogExportService: exports})

	resp, body := doJSON(t, ts, http.MethodPost, "/api/logs/create", nil, validToken)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "abc", created["task_id"])
	require.Equal(t, "PENDING", created["status"])

	resp, body = doJSON(t, ts, http.MethodGet, "/api/logs/status/abc", nil, validToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"status":"COMPLETED"`)
	require.NotContains(t, string(body), file)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/logs/status/missing", nil, validToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, ts, http.MethodGet, "/api/logs/download/abc", nil, validToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "started\n", string(body))
	require.Contains(t, resp.Header.Get(echo.HeaderContentType), "text/plain")
	require.Contains(t, resp.Header.Get(echo.HeaderContentDisposition), `attachment; filename="log_abc.log"`)

	resp, _ = doJSON(t, ts, http.MethodGet, "/api/logs/download/slow", nil, validToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodPost, "/api/logs/create", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogExportCreate_QueueFull(t *testing.T) {
	exports := &mocks.LogExportServiceMock{CreateExportFn: func(ctx context.Context) (*logexport.Task, error) {
		return nil, logexport.ErrBusy
	}}
	ts := newTestServer(t, httpserver.ServerDeps{LogExportService: exports})

	resp, _ := doJSON(t, ts, http.MethodPost, "/api/logs/create", nil, validToken)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
