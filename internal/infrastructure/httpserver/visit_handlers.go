package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Visit handlers
func (s *Server) trackVisit(c echo.Context) error {
	url := c.QueryParam("url")
	if err := s.visitService.RecordVisit(c.Request().Context(), url); err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "tracked", "url": url})
}

func (s *Server) visitStats(c echo.Context) error {
	stats, err := s.visitService.GetVisitStats(c.Request().Context(), c.QueryParam("url"))
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
