package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookblog/server/internal/core/domain/auth"
)

// Auth handlers
func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}

	token, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, token)
}
