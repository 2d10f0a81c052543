package repository

import (
	"context"
	"time"

	"BizPulse/internal/domain/models"
)

// OrderFilter narrows order projections. Nil fields mean "no constraint".
type OrderFilter struct {
	ClientID *uint
	From     *time.Time
	To       *time.Time
	Status   string
}

// ChurnFilter narrows active churn prediction listings.
type ChurnFilter struct {
	ClientID *uint
	MinTier  string
	Limit    int
	Offset   int
}

// ClientStore provides read access to clients and their activity history.
type ClientStore interface {
	GetByID(ctx context.Context, id uint) (*models.Client, error)
	ListByIDs(ctx context.Context, ids []uint) ([]models.Client, error)
	ListActive(ctx context.Context) ([]models.Client, error)
	CountVisits(ctx context.Context, clientID uint) (int64, error)
	FeedbackStats(ctx context.Context, clientID uint) (count int64, avgRating float64, err error)
}

// OrderStore provides order projections for feature extraction and reports.
type OrderStore interface {
	Points(ctx context.Context, f OrderFilter) ([]models.OrderPoint, error)
	LineItems(ctx context.Context, f OrderFilter) ([]models.LineItemPoint, error)
	CountByClient(ctx context.Context, clientID uint, from, to time.Time) (int64, error)
}

// PredictionStore persists churn predictions and forecast points.
type PredictionStore interface {
	// ReplaceActive deactivates any active churn prediction for the
	// affected clients and inserts the new rows, atomically.
	ReplaceActive(ctx context.Context, preds []models.ChurnPrediction) error
	ListActiveChurn(ctx context.Context, f ChurnFilter) ([]models.ChurnPrediction, int64, error)
	InsertForecasts(ctx context.Context, points []models.ForecastPoint) error
}

// BillingStore provides invoice lookups for alert synthesis.
type BillingStore interface {
	OverdueInvoices(ctx context.Context, asOf time.Time, limit int) ([]models.Invoice, int64, error)
}

// DeliveryStore provides delivery lookups for alert synthesis.
type DeliveryStore interface {
	FailedSince(ctx context.Context, since time.Time) ([]models.Delivery, error)
}

// FeedbackStore persists sentiment annotations back onto feedback rows.
type FeedbackStore interface {
	UpdateSentiment(ctx context.Context, feedbackID uint, label string, score float64) error
}

// AuditSink mirrors completed prediction batches to an append-only store.
type AuditSink interface {
	RecordChurnBatch(ctx context.Context, batchID string, preds []models.ChurnPrediction) error
	RecordForecastBatch(ctx context.Context, batchID string, points []models.ForecastPoint) error
	Health(ctx context.Context) error
	Close() error
}

// EventPublisher emits pipeline lifecycle events.
type EventPublisher interface {
	PublishEvent(ctx context.Context, key string, payload any) error
	Close() error
}

// Metrics records pipeline-level counters and timings.
type Metrics interface {
	RecordPredictionRun(kind, outcome string)
	RecordUpstreamLatency(endpoint string, seconds float64)
	RecordReportServed(report string, cached bool)
	RecordAlertsSynthesized(n int)
	RecordError(kind string)
}
