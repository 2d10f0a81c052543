package models

import "time"

// ModelMetadata describes the upstream model that produced a result.
type ModelMetadata struct {
	ModelType string             `json:"model_type"`
	Version   string             `json:"version,omitempty"`
	Accuracy  map[string]float64 `json:"accuracy_metrics,omitempty"`
}

// ChurnScore is one client's raw score as returned by the prediction service.
type ChurnScore struct {
	ClientID uint               `json:"client_id"`
	Score    float64            `json:"score"`
	Factors  map[string]float64 `json:"factors"`
}

// ChurnBatchResult is the decoded churn response for a whole batch.
type ChurnBatchResult struct {
	Scores   []ChurnScore
	Metadata ModelMetadata
}

// ForecastSeriesPoint is one predicted point as returned by the service.
type ForecastSeriesPoint struct {
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Confidence float64   `json:"confidence"`
}

// ForecastResult is the decoded forecast response.
type ForecastResult struct {
	Points   []ForecastSeriesPoint
	Metadata ModelMetadata
}

// DocumentResult is the decoded document-extraction response.
type DocumentResult struct {
	Text       string            `json:"text"`
	Fields     map[string]string `json:"structured_fields"`
	Confidence float64           `json:"confidence"`
	Metadata   ModelMetadata     `json:"-"`
}

// SentimentResult is the decoded sentiment response.
type SentimentResult struct {
	Label      string             `json:"label"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	Emotions   map[string]float64 `json:"emotions,omitempty"`
	Metadata   ModelMetadata      `json:"-"`
}
