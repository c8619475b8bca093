package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"cuaderno/pkg/tools"
)

// ToolsCtrl serves the MCP tools as plain JSON endpoints.
type ToolsCtrl struct{ reg *tools.Registry }

func New(reg *tools.Registry) *ToolsCtrl { return &ToolsCtrl{reg} }

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema"`
}

func (h *ToolsCtrl) List(c echo.Context) error {
	defs := h.reg.Definitions()
	out := make([]toolInfo, len(defs))
	for i, d := range defs {
		out[i] = toolInfo{Name: d.Name, Description: d.Description, InputSchema: d.InputSchema}
	}
	return c.JSON(http.StatusOK, out)
}

// Call runs the tool named in the path with the JSON body as arguments. Tool
// failures still answer 200 with the "Error: ..." text.
func (h *ToolsCtrl) Call(c echo.Context) error {
	arguments := map[string]any{}
	// body only; path params must not leak into the arguments
	if err := (&echo.DefaultBinder{}).BindBody(c, &arguments); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	name := c.Param("name")
	text, err := h.reg.Call(c.Request().Context(), name, arguments)
	if errors.Is(err, tools.ErrUnknownTool) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown tool: " + name})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"tool": name, "result": text})
}
