package helpers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/bookblog/server/internal/infrastructure/httpserver/helpers"
)

func newContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func requireHTTPCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, code, htErr.Code)
}

func TestParseIDParam(t *testing.T) {
	c := newContext("/")
	c.SetParamNames("id")

	c.SetParamValues("42")
	id, err := helpers.ParseIDParam(c, "id")
	require.NoError(t, err)
	require.Equal(t, int64(42), id)

	for _, bad := range []string{"abc", "0", "-3", ""} {
		c.SetParamValues(bad)
		_, err = helpers.ParseIDParam(c, "id")
		requireHTTPCode(t, err, http.StatusBadRequest)
	}
}

func TestParseIntQuery(t *testing.T) {
	v, err := helpers.ParseIntQuery(newContext("/?minUsers=3"), "minUsers", 0)
	require.NoError(t, err)
	require.Equal(t, 3, v)

	v, err = helpers.ParseIntQuery(newContext("/"), "minUsers", 7)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	_, err = helpers.ParseIntQuery(newContext("/?minUsers=x"), "minUsers", 0)
	requireHTTPCode(t, err, http.StatusBadRequest)
}

func TestRequireSelf(t *testing.T) {
	c := newContext("/")
	requireHTTPCode(t, helpers.RequireSelf(c, 1), http.StatusUnauthorized)

	helpers.SetUserID(c, 1)
	require.NoError(t, helpers.RequireSelf(c, 1))
	requireHTTPCode(t, helpers.RequireSelf(c, 2), http.StatusForbidden)
}

func TestGetJWTTokenFromContext(t *testing.T) {
	c := newContext("/")
	_, err := helpers.GetJWTTokenFromContext(c)
	requireHTTPCode(t, err, http.StatusUnauthorized)

	c.Request().Header.Set("Authorization", "Basic abc")
	_, err = helpers.GetJWTTokenFromContext(c)
	requireHTTPCode(t, err, http.StatusUnauthorized)

	c.Request().Header.Set("Authorization", "Bearer tok")
	tok, err := helpers.GetJWTTokenFromContext(c)
	require.NoError(t, err)
	require.Equal(t, "tok", tok)
}
