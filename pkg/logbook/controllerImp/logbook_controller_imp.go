package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"cuaderno/pkg/apperr"
	"cuaderno/pkg/logbook/service"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type LogbookCtrl struct{ svc service.Service }

func New(svc service.Service) *LogbookCtrl { return &LogbookCtrl{svc} }

// ExportXLSX serves GET /cuaderno/:file where file is "<year>.xlsx".
func (h *LogbookCtrl) ExportXLSX(c echo.Context) error {
	file := c.Param("file")
	year, err := strconv.Atoi(strings.TrimSuffix(file, ".xlsx"))
	if err != nil || !strings.HasSuffix(file, ".xlsx") {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "expected /cuaderno/<year>.xlsx"})
	}
	b, err := h.svc.ExportXLSX(c.Request().Context(), year)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": apperr.Text(err)})
	case errors.Is(err, apperr.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": apperr.Text(err)})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": apperr.Text(err)})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=cuaderno-%d.xlsx", year))
	return c.Blob(http.StatusOK, xlsxMime, b)
}
