package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "BizPulse/pkg/logger"
)

// RequestLogging emits one structured line per request. The /metrics scrape
// is skipped to keep the log readable under frequent polling.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.URL.Path == "/metrics" {
				return next(c)
			}
			start := time.Now()

			err := next(c)

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("path", req.URL.Path),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("latency", time.Since(start)),
			}
			if err != nil {
				fields = append(fields, applogger.Error(err))
			}
			l.Info("http request", fields...)
			return err
		}
	}
}
