package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	models "BizPulse/internal/domain/models"
	"BizPulse/internal/usecase"
	xhttp "BizPulse/pkg/http"
	xlogger "BizPulse/pkg/logger"
	xutil "BizPulse/pkg/util"
)

// AlertsHandler exposes the alert snapshot endpoint and a websocket stream
// that pushes fresh snapshots on an interval.
type AlertsHandler struct {
	logger   *xlogger.Logger
	alerts   *usecase.AlertsUseCase
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewAlertsHandler(logger *xlogger.Logger, alerts *usecase.AlertsUseCase, interval time.Duration) *AlertsHandler {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &AlertsHandler{
		logger:   logger,
		alerts:   alerts,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *AlertsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/alerts")
	g.GET("", h.List)
	g.GET("/stream", h.Stream)
}

func (h *AlertsHandler) List(c echo.Context) error {
	req := &models.AlertsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	asOf := xutil.ParseTimeDefault(c.QueryParam("as_of"), time.Now())
	alerts, err := h.alerts.SynthesizeAt(c.Request().Context(), asOf)
	if err != nil {
		h.logger.Error("alert synthesis error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	alerts = usecase.FilterBySeverity(alerts, req.Severity)
	return xhttp.ListResponse(c, alerts, int64(len(alerts)))
}

type alertSnapshot struct {
	At     time.Time      `json:"at"`
	Alerts []models.Alert `json:"alerts"`
}

// Stream upgrades to a websocket and pushes one snapshot immediately, then
// one per interval until the client disconnects.
func (h *AlertsHandler) Stream(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	interval := h.interval
	if secs := xutil.ParseIntDefault(c.QueryParam("interval"), 0); secs > 0 {
		interval = time.Duration(secs) * time.Second
	}

	ctx := c.Request().Context()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		alerts, err := h.alerts.Synthesize(ctx)
		if err != nil {
			h.logger.Error("alert stream synthesis error", xlogger.Error(err))
			return nil
		}
		if err := conn.WriteJSON(alertSnapshot{At: time.Now().UTC(), Alerts: alerts}); err != nil {
			return nil // client went away
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
