package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	xhttp "BizPulse/pkg/http"
)

// HealthChecker reports liveness of one infrastructure dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Router bundles the pipeline handlers behind one route registrar.
type Router struct {
	predictions *PredictionsHandler
	reports     *ReportsHandler
	alerts      *AlertsHandler
	insight     *InsightHandler
	checks      map[string]HealthChecker
}

func NewRouter(
	predictions *PredictionsHandler,
	reports *ReportsHandler,
	alerts *AlertsHandler,
	insight *InsightHandler,
) *Router {
	return &Router{
		predictions: predictions,
		reports:     reports,
		alerts:      alerts,
		insight:     insight,
		checks:      make(map[string]HealthChecker),
	}
}

// AddHealthCheck registers a named dependency for /healthz.
func (r *Router) AddHealthCheck(name string, hc HealthChecker) {
	r.checks[name] = hc
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.Use(MetricsMiddleware())

	r.predictions.RegisterRoutes(e)
	r.reports.RegisterRoutes(e)
	r.alerts.RegisterRoutes(e)
	r.insight.RegisterRoutes(e)

	e.GET("/healthz", r.Healthz)
}

func (r *Router) Healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	deps := make(map[string]string, len(r.checks))
	for name, hc := range r.checks {
		if err := hc.Health(ctx); err != nil {
			deps[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			deps[name] = "ok"
		}
	}
	return xhttp.DataResponse(c, status, deps)
}

var _ xhttp.Handler = (*Router)(nil)
