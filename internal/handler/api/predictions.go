package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	models "BizPulse/internal/domain/models"
	"BizPulse/internal/service/ratelimit"
	"BizPulse/internal/usecase"
	xhttp "BizPulse/pkg/http"
	xlogger "BizPulse/pkg/logger"
)

// Prediction runs are expensive upstream calls; keep a small token bucket
// per run kind and caller address.
const (
	runBucketCapacity = 5
	runBucketRefill   = 0.2 // one token every 5s
)

// PredictionsHandler exposes the churn and forecast pipeline endpoints.
type PredictionsHandler struct {
	logger   *xlogger.Logger
	churn    *usecase.ChurnUseCase
	forecast *usecase.ForecastUseCase
	limiter  *ratelimit.Limiter
}

func NewPredictionsHandler(
	logger *xlogger.Logger,
	churn *usecase.ChurnUseCase,
	forecast *usecase.ForecastUseCase,
	limiter *ratelimit.Limiter,
) *PredictionsHandler {
	return &PredictionsHandler{logger: logger, churn: churn, forecast: forecast, limiter: limiter}
}

func (h *PredictionsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/predictions")
	g.POST("/churn", h.RunChurn)
	g.GET("/churn", h.ListChurn)
	g.POST("/forecast", h.RunForecast)
}

func (h *PredictionsHandler) RunChurn(c echo.Context) error {
	if !h.limiter.Allow("predictions:churn:"+c.RealIP(), runBucketCapacity, runBucketRefill) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "churn runs throttled, retry shortly")
	}

	req := &models.ChurnRunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.churn.Run(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("churn run error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsHandler) ListChurn(c echo.Context) error {
	req := &models.ChurnListRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.churn.List(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("churn list error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, res.Predictions, res.Total)
}

func (h *PredictionsHandler) RunForecast(c echo.Context) error {
	if !h.limiter.Allow("predictions:forecast:"+c.RealIP(), runBucketCapacity, runBucketRefill) {
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "forecast runs throttled, retry shortly")
	}

	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecast.Run(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("forecast run error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
