package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/domain/auth"
	"github.com/bookblog/server/internal/core/domain/domainerr"
)

// httpError maps a service error to the echo error returned to the client.
// Unclassified errors are logged and hidden behind a generic 500.
func (s *Server) httpError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domainerr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domainerr.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, domainerr.ErrInvalid):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domainerr.ErrUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"method": c.Request().Method, "path": c.Path()}).WithError(err).Error("request failed")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func badRequestBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
}
