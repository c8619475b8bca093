package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// New mounts the HTTP surface. mcp is the streamable MCP handler served on
// mcpPath for every method.
func New(
	e *echo.Echo,
	healthCtrl interface{ Health(echo.Context) error },
	toolsCtrl interface {
		List(echo.Context) error
		Call(echo.Context) error
	},
	logbookCtrl interface{ ExportXLSX(echo.Context) error },
	mcpPath string,
	mcp http.Handler,
	metrics http.Handler,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.GET("/tools", toolsCtrl.List)
	e.POST("/tools/:name", toolsCtrl.Call)

	e.GET("/cuaderno/:file", logbookCtrl.ExportXLSX)

	e.Any(mcpPath, echo.WrapHandler(mcp))
	e.GET("/metrics", echo.WrapHandler(metrics))
	return e
}
