package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/infrastructure/httpserver/helpers"
)

// User handlers
func (s *Server) registerUser(c echo.Context) error {
	var req user.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	created, err := s.userService.Register(c.Request().Context(), &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) getUserProfile(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := s.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := helpers.RequireSelf(c, id); err != nil {
		return err
	}
	var req user.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	updated, err := s.userService.UpdateUser(c.Request().Context(), id, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := helpers.RequireSelf(c, id); err != nil {
		return err
	}
	if err := s.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listUserCategories(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	categories, err := s.userService.ListUserCategories(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) addUserToCategory(c echo.Context) error {
	return s.changeMembership(c, s.userService.AddToCategory)
}

func (s *Server) removeUserFromCategory(c echo.Context) error {
	return s.changeMembership(c, s.userService.RemoveFromCategory)
}

func (s *Server) changeMembership(c echo.Context, change func(ctx context.Context, userID, categoryID int64) error) error {
	userID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := helpers.ParseIDParam(c, "categoryId")
	if err != nil {
		return err
	}
	if err := helpers.RequireSelf(c, userID); err != nil {
		return err
	}
	if err := change(c.Request().Context(), userID, categoryID); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
