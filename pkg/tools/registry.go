// Package tools exposes the record-keeping operations as MCP tools. Every
// tool answers with a single text; failures are rendered as "Error: ..."
// text instead of protocol errors.
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	activity "cuaderno/pkg/activity/service"
	"cuaderno/pkg/apperr"
	logbook "cuaderno/pkg/logbook/service"
	masterdata "cuaderno/pkg/masterdata/service"
	"cuaderno/pkg/metrics"
	transport "cuaderno/pkg/transport/service"
)

// Services are the operations the tools call into.
type Services struct {
	Master    masterdata.Service
	Activity  activity.Service
	Transport transport.Service
	Logbook   logbook.Service
}

// Tool pairs a definition with its handler.
type Tool struct {
	Def    mcp.Tool
	Handle server.ToolHandlerFunc
}

type handlerFunc func(ctx context.Context, a args) (string, error)

// Registry holds every tool by name.
type Registry struct {
	svc     Services
	log     *zap.Logger
	byName  map[string]Tool
	order   []string
	metrics *metrics.Metrics
}

// NewRegistry builds every tool. m may be nil.
func NewRegistry(svc Services, log *zap.Logger, m *metrics.Metrics) *Registry {
	r := &Registry{svc: svc, log: log.With(zap.String("svc", "tools")), byName: map[string]Tool{}, metrics: m}
	r.masterdataTools()
	r.activityTools()
	r.documentTools()
	return r
}

func (r *Registry) add(def mcp.Tool, fn handlerFunc) {
	r.byName[def.Name] = Tool{Def: def, Handle: r.wrap(def.Name, fn)}
	r.order = append(r.order, def.Name)
}

// wrap turns every error and panic into result text.
func (r *Registry) wrap(name string, fn handlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		log := r.log.With(zap.String("tool", name))
		start := time.Now()
		outcome := metrics.OutcomeOK
		defer func() {
			if p := recover(); p != nil {
				log.Error("tool panicked", zap.Any("panic", p))
				outcome = metrics.OutcomePanic
				res, err = mcp.NewToolResultText(apperr.Text(fmt.Errorf("%v", p))), nil
			}
			r.metrics.Observe(name, outcome, time.Since(start))
		}()
		text, callErr := fn(ctx, args(req.GetArguments()))
		if callErr != nil {
			if errors.Is(callErr, apperr.ErrValidation) || errors.Is(callErr, apperr.ErrNotFound) {
				outcome = metrics.OutcomeRejected
				log.Info("tool rejected", zap.Error(callErr))
			} else {
				outcome = metrics.OutcomeFailed
				log.Error("tool failed", zap.Error(callErr))
			}
			return mcp.NewToolResultText(apperr.Text(callErr)), nil
		}
		log.Debug("tool done")
		return mcp.NewToolResultText(text), nil
	}
}

// Register adds every tool to s.
func (r *Registry) Register(s *server.MCPServer) {
	for _, name := range r.order {
		t := r.byName[name]
		s.AddTool(t.Def, t.Handle)
	}
}

// Definitions lists the tools sorted by name.
func (r *Registry) Definitions() []mcp.Tool {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	out := make([]mcp.Tool, len(names))
	for i, n := range names {
		out[i] = r.byName[n].Def
	}
	return out
}

// ErrUnknownTool is returned by Call for names that are not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Call runs a tool outside MCP and returns its text.
func (r *Registry) Call(ctx context.Context, name string, arguments map[string]any) (string, error) {
	t, ok := r.byName[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = arguments
	res, err := t.Handle(ctx, req)
	if err != nil {
		return "", err
	}
	return ResultText(res), nil
}

// ResultText joins the text contents of a tool result.
func ResultText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var out string
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			out += tc.Text
		}
	}
	return out
}

// NewServer builds the MCP server with every tool registered.
func NewServer(name, version string, r *Registry) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	r.Register(s)
	return s
}

const instructions = `Cuaderno de explotación agrícola y documentos de transporte (DAT).
Configura primero la explotación principal (configurar_explotacion_principal) y sus parcelas
(crear_parcela). Después registra tratamientos, riegos, siembras, análisis y ventas, genera DAT
para cada envío y consulta el cuaderno anual o el historial. Las fechas usan el formato YYYY-MM-DD.
Los campos sin dato aparecen como VACÍO, (Rellenar) o N/A.`
