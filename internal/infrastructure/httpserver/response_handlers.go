package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/infrastructure/httpserver/helpers"
)

// Review handlers
func (s *Server) createResponse(c echo.Context) error {
	userID, err := helpers.ParseIDParam(c, "userId")
	if err != nil {
		return err
	}
	bookID, err := helpers.ParseIDParam(c, "bookId")
	if err != nil {
		return err
	}
	if err := helpers.RequireSelf(c, userID); err != nil {
		return err
	}
	var req response.ResponseRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	created, err := s.responseService.CreateResponse(c.Request().Context(), userID, bookID, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) listUserResponses(c echo.Context) error {
	userID, err := helpers.ParseIDParam(c, "userId")
	if err != nil {
		return err
	}
	list, err := s.responseService.ListUserResponses(c.Request().Context(), userID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) listBookResponses(c echo.Context) error {
	bookID, err := helpers.ParseIDParam(c, "bookId")
	if err != nil {
		return err
	}
	list, err := s.responseService.ListBookResponses(c.Request().Context(), bookID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) updateResponse(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req response.ResponseRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	updated, err := s.responseService.UpdateResponse(c.Request().Context(), id, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteResponse(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.responseService.DeleteResponse(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
