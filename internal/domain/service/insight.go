package service

import (
	"context"
	"io"

	"BizPulse/internal/domain/models"
)

// ChurnPredictor scores a batch of client feature vectors for churn risk.
type ChurnPredictor interface {
	PredictBatch(ctx context.Context, features map[uint]map[string]float64, modelType string) (*models.ChurnBatchResult, error)
}

// SalesForecaster produces a revenue forecast from a historical series.
type SalesForecaster interface {
	Forecast(ctx context.Context, series []models.SalesBucket, period string, horizon int, modelType string) (*models.ForecastResult, error)
}

// DocumentExtractor extracts text and structured fields from an uploaded
// document. mimeType is the declared upload content type, docType an optional
// caller hint (invoice, contract, ...).
type DocumentExtractor interface {
	Extract(ctx context.Context, filename, mimeType, docType string, content io.Reader) (*models.DocumentResult, error)
}

// SentimentAnalyzer classifies free-form feedback text.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text string) (*models.SentimentResult, error)
}
