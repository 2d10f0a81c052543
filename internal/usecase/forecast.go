package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	domsvc "BizPulse/internal/domain/service"
	xhttp "BizPulse/pkg/http"
	applogger "BizPulse/pkg/logger"
)

// Forecasting requires enough history to fit a model on.
const (
	forecastLookbackYears = 2
	forecastMinPoints     = 10
)

// ForecastUseCase builds a historical revenue series and persists the
// service's forecast for it. Forecast batches are append-only.
type ForecastUseCase struct {
	orders     domrepo.OrderStore
	forecaster domsvc.SalesForecaster
	store      domrepo.PredictionStore
	audit      domrepo.AuditSink // optional
	events     domrepo.EventPublisher
	metrics    domrepo.Metrics
	l          *applogger.Logger
	now        func() time.Time
}

func NewForecastUseCase(
	orders domrepo.OrderStore,
	forecaster domsvc.SalesForecaster,
	store domrepo.PredictionStore,
	events domrepo.EventPublisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *ForecastUseCase {
	return &ForecastUseCase{
		orders:     orders,
		forecaster: forecaster,
		store:      store,
		events:     events,
		metrics:    metrics,
		l:          l,
		now:        time.Now,
	}
}

// SetAuditSink enables best-effort mirroring of completed batches.
func (uc *ForecastUseCase) SetAuditSink(audit domrepo.AuditSink) { uc.audit = audit }

type ForecastRunResult struct {
	BatchID  string                 `json:"batch_id"`
	Period   string                 `json:"period"`
	Horizon  int                    `json:"horizon"`
	Points   []models.ForecastPoint `json:"points"`
	Metadata models.ModelMetadata   `json:"metadata"`
}

// Run validates scope, gates on history size, calls the forecaster and
// persists the returned points tagged with one batch ID.
func (uc *ForecastUseCase) Run(ctx context.Context, req models.ForecastRequest) (*ForecastRunResult, error) {
	if req.Horizon < 1 || req.Horizon > 365 {
		uc.metrics.RecordPredictionRun("forecast", "invalid")
		return nil, xhttp.ValidationError("horizon", "horizon must be within [1,365]")
	}
	period := domrepo.NormalizePeriod(req.Period)

	now := uc.now().UTC()
	from := now.AddDate(-forecastLookbackYears, 0, 0)
	points, err := uc.orders.Points(ctx, domrepo.OrderFilter{ClientID: req.ClientID, From: &from, To: &now})
	if err != nil {
		uc.metrics.RecordPredictionRun("forecast", "error")
		return nil, err
	}
	if len(points) < forecastMinPoints {
		uc.metrics.RecordPredictionRun("forecast", "insufficient")
		return nil, xhttp.InsufficientDataError(
			fmt.Sprintf("need at least %d orders in the last %d years, have %d",
				forecastMinPoints, forecastLookbackYears, len(points)))
	}

	series := BucketOrders(points, period)

	start := uc.now()
	result, err := uc.forecaster.Forecast(ctx, series, string(period), req.Horizon, req.ModelType)
	uc.metrics.RecordUpstreamLatency("forecast", time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordPredictionRun("forecast", "upstream_error")
		return nil, err
	}

	batchID := uuid.NewString()
	rows := make([]models.ForecastPoint, 0, len(result.Points))
	for _, p := range result.Points {
		rows = append(rows, models.ForecastPoint{
			BatchID:    batchID,
			ClientID:   req.ClientID,
			Date:       p.Date,
			Amount:     p.Amount,
			Confidence: p.Confidence,
			Period:     string(period),
			ModelType:  result.Metadata.ModelType,
		})
	}
	if err := uc.store.InsertForecasts(ctx, rows); err != nil {
		uc.metrics.RecordPredictionRun("forecast", "persistence_error")
		return nil, err
	}

	uc.mirrorForecast(ctx, batchID, rows)
	uc.publishCompleted(ctx, batchID, len(rows))
	uc.metrics.RecordPredictionRun("forecast", "ok")

	uc.l.Info("forecast batch completed",
		applogger.String("batch_id", batchID),
		applogger.String("period", string(period)),
		applogger.Int("horizon", req.Horizon),
		applogger.Int("points", len(rows)),
	)
	return &ForecastRunResult{
		BatchID:  batchID,
		Period:   string(period),
		Horizon:  req.Horizon,
		Points:   rows,
		Metadata: result.Metadata,
	}, nil
}

func (uc *ForecastUseCase) mirrorForecast(ctx context.Context, batchID string, rows []models.ForecastPoint) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.RecordForecastBatch(ctx, batchID, rows); err != nil {
		uc.metrics.RecordError("audit_mirror")
		uc.l.Warn("forecast audit mirror failed",
			applogger.String("batch_id", batchID),
			applogger.Error(err),
		)
	}
}

func (uc *ForecastUseCase) publishCompleted(ctx context.Context, batchID string, n int) {
	if uc.events == nil {
		return
	}
	payload := map[string]interface{}{
		"event":    "prediction.forecast.completed",
		"batch_id": batchID,
		"count":    n,
		"at":       uc.now().UTC(),
	}
	if err := uc.events.PublishEvent(ctx, batchID, payload); err != nil {
		uc.metrics.RecordError("event_publish")
		uc.l.Warn("event publish failed",
			applogger.String("event", "prediction.forecast.completed"),
			applogger.Error(err),
		)
	}
}
