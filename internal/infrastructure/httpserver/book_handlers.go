package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/infrastructure/httpserver/helpers"
)

// Book handlers
func (s *Server) listBooks(c echo.Context) error {
	books, err := s.bookService.ListBooks(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (s *Server) getBook(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	b, err := s.bookService.GetBook(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) listBooksByCategory(c echo.Context) error {
	categoryID, err := helpers.ParseIDParam(c, "categoryId")
	if err != nil {
		return err
	}
	books, err := s.bookService.ListBooksByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (s *Server) createBook(c echo.Context) error {
	var req book.BookRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	b, err := s.bookService.CreateBook(c.Request().Context(), &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (s *Server) createBooksBulk(c echo.Context) error {
	var reqs []book.BookRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &reqs); err != nil {
		return badRequestBody()
	}
	books, err := s.bookService.CreateBooksBulk(c.Request().Context(), reqs)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, books)
}

func (s *Server) updateBook(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var req book.BookRequest
	if err := c.Bind(&req); err != nil {
		return badRequestBody()
	}
	b, err := s.bookService.UpdateBook(c.Request().Context(), id, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBook(c echo.Context) error {
	id, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.bookService.DeleteBook(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) addCategoryToBook(c echo.Context) error {
	return s.changeBookCategory(c, s.bookService.AddCategoryToBook)
}

func (s *Server) removeCategoryFromBook(c echo.Context) error {
	return s.changeBookCategory(c, s.bookService.RemoveCategoryFromBook)
}

func (s *Server) changeBookCategory(c echo.Context, change func(ctx context.Context, bookID, categoryID int64) error) error {
	bookID, err := helpers.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := helpers.ParseIDParam(c, "categoryId")
	if err != nil {
		return err
	}
	if err := change(c.Request().Context(), bookID, categoryID); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
