package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestLog logs one line per request with status and latency.
func RequestLog(log *zap.Logger) echo.MiddlewareFunc {
	log = log.With(zap.String("svc", "http"))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				log.Warn("request failed", append(fields, zap.Error(err))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		}
	}
}
