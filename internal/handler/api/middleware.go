package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"BizPulse/internal/service/metrics"
)

// MetricsMiddleware records per-route latency and error counts for the
// pipeline endpoints.
func MetricsMiddleware() echo.MiddlewareFunc {
	metrics.Register()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			endpoint := c.Path()
			metrics.PipelineLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
			if err != nil || c.Response().Status >= 500 {
				metrics.PipelineErrors.WithLabelValues(endpoint).Inc()
			}
			return err
		}
	}
}
