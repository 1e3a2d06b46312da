package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/infrastructure/httpserver/helpers"
)

// Category handlers
func (s *Server) listCategories(c echo.Context) error {
	categories, err := s.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	view, err := s.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) listCategoriesByUser(c echo.Context) error {
	userID, err := helpers.ParseIDParam(c, "userId")
	if err != nil {
		return err
	}
	categories, err := s.categoryService.ListCategoriesByUser(c.Request().Context(), userID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) findCategoriesByMinUsers(c echo.Context) error {
	return s.searchCategories(c, s.categoryService.FindByMinUsers)
}

func (s *Server) findCategoriesByMinUsersNative(c echo.Context) error {
	return s.searchCategories(c, s.categoryService.FindByMinUsersNative)
}

func (s *Server) searchCategories(c echo.Context, find func(ctx context.Context, minUsers int) ([]*category.CategoryWithUsers, error)) error {
	minUsers, err := helpers.ParseIntQuery(c, "minUsers", 0)
	if err != nil {
		return err
	}
	found, err := find(c.Request().Context(), minUsers)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, found)
}

func (s *Server) createCategory(c echo.Context) error {
	var req category.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	created, err := s.categoryService.CreateCategory(c.Request().Context(), &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateCategory(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req category.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	updated, err := s.categoryService.UpdateCategory(c.Request().Context(), id, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCategory(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
