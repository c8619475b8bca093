package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"cuaderno/config"
	"cuaderno/database"
	"cuaderno/pkg/logger"
	"cuaderno/pkg/metrics"
	"cuaderno/pkg/middleware"
	"cuaderno/pkg/resolve"
	"cuaderno/pkg/tools"
	"cuaderno/router"

	activityRepoImp "cuaderno/pkg/activity/repositoryImp"
	activitySvcImp "cuaderno/pkg/activity/serviceImp"
	healthCtrlImp "cuaderno/pkg/health/controllerImp"
	logbookCtrlImp "cuaderno/pkg/logbook/controllerImp"
	logbookRepoImp "cuaderno/pkg/logbook/repositoryImp"
	logbookSvcImp "cuaderno/pkg/logbook/serviceImp"
	masterRepoImp "cuaderno/pkg/masterdata/repositoryImp"
	masterSvcImp "cuaderno/pkg/masterdata/serviceImp"
	resolveRepoImp "cuaderno/pkg/resolve/repositoryImp"
	toolsCtrlImp "cuaderno/pkg/tools/controllerImp"
	transportRepoImp "cuaderno/pkg/transport/repositoryImp"
	transportSvcImp "cuaderno/pkg/transport/serviceImp"
)

const version = "1.0.0"

// app is everything a subcommand needs.
type app struct {
	cfg config.AppConfig
	log *zap.Logger
	db  *gorm.DB
	svc tools.Services
	reg *tools.Registry
	met *metrics.Metrics
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	engine := resolve.New(resolveRepoImp.New(db), log)
	svc := tools.Services{
		Master:    masterSvcImp.New(masterRepoImp.New(db), log),
		Activity:  activitySvcImp.New(activityRepoImp.New(db), engine, log),
		Transport: transportSvcImp.New(transportRepoImp.New(db), engine, func() time.Time { return time.Now().In(loc) }, log),
		Logbook:   logbookSvcImp.New(logbookRepoImp.New(db), log),
	}
	log.Info("database ready", zap.String("path", cfg.DBPath), zap.String("tz", cfg.Timezone))
	met := metrics.New()
	return &app{cfg: cfg, log: log, db: db, svc: svc, reg: tools.NewRegistry(svc, log, met), met: met}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

func main() {
	root := &cobra.Command{
		Use:           "cuaderno",
		Short:         "Registro de explotación agrícola: DAT y cuaderno de campo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), stdioCmd(), exportCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tools over HTTP (REST and streamable MCP)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			mcpSrv := tools.NewServer(a.cfg.ServerName, version, a.reg)

			e := echo.New()
			e.HideBanner = true
			e.Use(echoMiddleware.Recover())
			e.Use(middleware.RequestLog(a.log))

			r := router.New(
				e,
				healthCtrlImp.NewHealthCtrl(a.db, len(a.reg.Definitions())),
				toolsCtrlImp.New(a.reg),
				logbookCtrlImp.New(a.svc.Logbook),
				a.cfg.MCPPath,
				server.NewStreamableHTTPServer(mcpSrv),
				a.met.Handler(),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = r.Shutdown(shutdown)
			}()

			a.log.Info("listening", zap.String("port", a.cfg.Port), zap.String("mcp", a.cfg.MCPPath))
			if err := r.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve the tools as an MCP server on stdin/stdout",
		RunE: func(*cobra.Command, []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			a.log.Info("serving mcp on stdio", zap.Int("tools", len(a.reg.Definitions())))
			return server.ServeStdio(tools.NewServer(a.cfg.ServerName, version, a.reg))
		},
	}
}

func exportCmd() *cobra.Command {
	var year int
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the annual logbook workbook for a year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			if out == "" {
				out = fmt.Sprintf("cuaderno-%d.xlsx", year)
			}
			b, err := a.svc.Logbook.ExportXLSX(cmd.Context(), year)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			a.log.Info("logbook exported", zap.Int("year", year), zap.String("out", out))
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "logbook year")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default cuaderno-<year>.xlsx)")
	return cmd
}
