package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	domsvc "BizPulse/internal/domain/service"
	xhttp "BizPulse/pkg/http"
	applogger "BizPulse/pkg/logger"
)

// SentimentUseCase scores free-form text and optionally attaches the result
// to a feedback record.
type SentimentUseCase struct {
	analyzer domsvc.SentimentAnalyzer
	feedback domrepo.FeedbackStore
	metrics  domrepo.Metrics
	l        *applogger.Logger
}

func NewSentimentUseCase(
	analyzer domsvc.SentimentAnalyzer,
	feedback domrepo.FeedbackStore,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *SentimentUseCase {
	return &SentimentUseCase{analyzer: analyzer, feedback: feedback, metrics: metrics, l: l}
}

func (uc *SentimentUseCase) Analyze(ctx context.Context, req models.SentimentRequest) (*models.SentimentResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, xhttp.ValidationError("text", "text is required")
	}

	start := time.Now()
	result, err := uc.analyzer.Analyze(ctx, text)
	uc.metrics.RecordUpstreamLatency("sentiment", time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordPredictionRun("sentiment", "upstream_error")
		return nil, err
	}
	uc.metrics.RecordPredictionRun("sentiment", "ok")

	if req.FeedbackID != 0 {
		err := uc.feedback.UpdateSentiment(ctx, req.FeedbackID, result.Label, result.Score)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xhttp.NotFoundErrorf("feedback %d not found", req.FeedbackID)
		}
		if err != nil {
			return nil, xhttp.PersistenceError(err)
		}
		uc.l.Debug("sentiment attached to feedback",
			applogger.Uint("feedback_id", req.FeedbackID),
			applogger.String("label", result.Label),
		)
	}
	return result, nil
}
