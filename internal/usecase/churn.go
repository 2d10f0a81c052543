package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	domsvc "BizPulse/internal/domain/service"
	"BizPulse/internal/services/features"
	xhttp "BizPulse/pkg/http"
	applogger "BizPulse/pkg/logger"
)

// ChurnUseCase runs a churn prediction batch end to end: select subjects,
// extract features, call the prediction service, replace active predictions.
type ChurnUseCase struct {
	clients   domrepo.ClientStore
	extractor *features.Extractor
	predictor domsvc.ChurnPredictor
	store     domrepo.PredictionStore
	audit     domrepo.AuditSink // optional
	events    domrepo.EventPublisher
	metrics   domrepo.Metrics
	l         *applogger.Logger
	now       func() time.Time
}

func NewChurnUseCase(
	clients domrepo.ClientStore,
	extractor *features.Extractor,
	predictor domsvc.ChurnPredictor,
	store domrepo.PredictionStore,
	events domrepo.EventPublisher,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *ChurnUseCase {
	return &ChurnUseCase{
		clients:   clients,
		extractor: extractor,
		predictor: predictor,
		store:     store,
		events:    events,
		metrics:   metrics,
		l:         l,
		now:       time.Now,
	}
}

// SetAuditSink enables best-effort mirroring of completed batches.
func (uc *ChurnUseCase) SetAuditSink(audit domrepo.AuditSink) { uc.audit = audit }

type ChurnRunResult struct {
	BatchID     string                   `json:"batch_id"`
	Predictions []models.ChurnPrediction `json:"predictions"`
	Metadata    models.ModelMetadata     `json:"metadata"`
}

// Run scores the requested clients (default: all active) and atomically
// replaces their active predictions. An upstream or persistence failure
// leaves prior predictions untouched.
func (uc *ChurnUseCase) Run(ctx context.Context, req models.ChurnRunRequest) (*ChurnRunResult, error) {
	subjects, err := uc.selectSubjects(ctx, req.ClientIDs)
	if err != nil {
		uc.metrics.RecordPredictionRun("churn", "error")
		return nil, err
	}
	if len(subjects) == 0 {
		uc.metrics.RecordPredictionRun("churn", "insufficient")
		return nil, xhttp.InsufficientDataError("no subjects to score")
	}

	vectors, err := uc.extractor.ExtractBatch(ctx, subjects)
	if err != nil {
		uc.metrics.RecordPredictionRun("churn", "error")
		return nil, fmt.Errorf("extract features: %w", err)
	}

	start := uc.now()
	result, err := uc.predictor.PredictBatch(ctx, vectors, req.ModelType)
	uc.metrics.RecordUpstreamLatency("churn", time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordPredictionRun("churn", "upstream_error")
		return nil, err
	}

	predictedAt := uc.now().UTC()
	preds := make([]models.ChurnPrediction, 0, len(result.Scores))
	for _, s := range result.Scores {
		preds = append(preds, models.ChurnPrediction{
			ClientID:    s.ClientID,
			Score:       s.Score,
			Tier:        models.TierForScore(s.Score),
			Factors:     s.Factors,
			ModelType:   result.Metadata.ModelType,
			PredictedAt: predictedAt,
			Active:      true,
		})
	}

	if err := uc.store.ReplaceActive(ctx, preds); err != nil {
		uc.metrics.RecordPredictionRun("churn", "persistence_error")
		return nil, err
	}

	batchID := uuid.NewString()
	uc.mirrorChurn(ctx, batchID, preds)
	uc.publishCompleted(ctx, "prediction.churn.completed", batchID, len(preds))
	uc.metrics.RecordPredictionRun("churn", "ok")

	uc.l.Info("churn batch completed",
		applogger.String("batch_id", batchID),
		applogger.Int("subjects", len(subjects)),
		applogger.Int("predictions", len(preds)),
	)
	return &ChurnRunResult{BatchID: batchID, Predictions: preds, Metadata: result.Metadata}, nil
}

type ChurnListResult struct {
	Predictions []models.ChurnPrediction `json:"predictions"`
	Total       int64                    `json:"total"`
}

// List returns active predictions, optionally filtered by tier or client.
func (uc *ChurnUseCase) List(ctx context.Context, req models.ChurnListRequest) (*ChurnListResult, error) {
	f := domrepo.ChurnFilter{MinTier: "", Limit: req.Limit, Offset: req.Offset}
	if req.Tier != "" {
		f.MinTier = req.Tier
	}
	if req.ClientID != 0 {
		id := req.ClientID
		f.ClientID = &id
	}
	preds, total, err := uc.store.ListActiveChurn(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ChurnListResult{Predictions: preds, Total: total}, nil
}

func (uc *ChurnUseCase) selectSubjects(ctx context.Context, ids []uint) ([]models.Client, error) {
	if len(ids) == 0 {
		return uc.clients.ListActive(ctx)
	}
	subjects, err := uc.clients.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(subjects) < len(ids) {
		return nil, xhttp.NotFoundErrorf("%d of %d requested clients not found", len(ids)-len(subjects), len(ids))
	}
	return subjects, nil
}

func (uc *ChurnUseCase) mirrorChurn(ctx context.Context, batchID string, preds []models.ChurnPrediction) {
	if uc.audit == nil {
		return
	}
	if err := uc.audit.RecordChurnBatch(ctx, batchID, preds); err != nil {
		uc.metrics.RecordError("audit_mirror")
		uc.l.Warn("churn audit mirror failed",
			applogger.String("batch_id", batchID),
			applogger.Error(err),
		)
	}
}

func (uc *ChurnUseCase) publishCompleted(ctx context.Context, event, batchID string, n int) {
	if uc.events == nil {
		return
	}
	payload := map[string]interface{}{
		"event":    event,
		"batch_id": batchID,
		"count":    n,
		"at":       uc.now().UTC(),
	}
	if err := uc.events.PublishEvent(ctx, batchID, payload); err != nil {
		uc.metrics.RecordError("event_publish")
		uc.l.Warn("event publish failed",
			applogger.String("event", event),
			applogger.Error(err),
		)
	}
}
