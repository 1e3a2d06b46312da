package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Log export handlers
func (s *Server) createLogExport(c echo.Context) error {
	task, err := s.logExports.CreateExport(c.Request().Context())
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusAccepted, task)
}

func (s *Server) logExportStatus(c echo.Context) error {
	task, err := s.logExports.GetTask(c.Request().Context(), c.Param("taskId"))
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) downloadLogExport(c echo.Context) error {
	id := c.Param("taskId")
	path, err := s.logExports.ExportFile(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	return c.Attachment(path, "log_"+id+".log")
}
