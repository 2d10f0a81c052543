package usecase

import (
	"context"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	applogger "BizPulse/pkg/logger"
)

func testLogger() *applogger.Logger {
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stdout"})
	if err != nil {
		panic(err)
	}
	return l
}

type nopEvents struct{}

func (nopEvents) PublishEvent(ctx context.Context, key string, payload any) error { return nil }
func (nopEvents) Close() error                                                    { return nil }

var _ domrepo.EventPublisher = nopEvents{}

type nopMetrics struct{}

func (nopMetrics) RecordPredictionRun(kind, outcome string)         {}
func (nopMetrics) RecordUpstreamLatency(endpoint string, s float64) {}
func (nopMetrics) RecordReportServed(report string, cached bool)    {}
func (nopMetrics) RecordAlertsSynthesized(n int)                    {}
func (nopMetrics) RecordError(kind string)                          {}

type fakeClientStore struct {
	clients []models.Client
	visits  map[uint]int64
}

func (s *fakeClientStore) GetByID(ctx context.Context, id uint) (*models.Client, error) {
	for i := range s.clients {
		if s.clients[i].ID == id {
			return &s.clients[i], nil
		}
	}
	return nil, nil
}

func (s *fakeClientStore) ListByIDs(ctx context.Context, ids []uint) ([]models.Client, error) {
	out := make([]models.Client, 0, len(ids))
	for _, id := range ids {
		for _, c := range s.clients {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (s *fakeClientStore) ListActive(ctx context.Context) ([]models.Client, error) {
	out := make([]models.Client, 0)
	for _, c := range s.clients {
		if c.Status == models.ClientStatusActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeClientStore) CountVisits(ctx context.Context, clientID uint) (int64, error) {
	return s.visits[clientID], nil
}

func (s *fakeClientStore) FeedbackStats(ctx context.Context, clientID uint) (int64, float64, error) {
	return 0, 0, nil
}

type fakeOrderStore struct {
	points []models.OrderPoint
	items  []models.LineItemPoint
}

func (s *fakeOrderStore) Points(ctx context.Context, f domrepo.OrderFilter) ([]models.OrderPoint, error) {
	out := make([]models.OrderPoint, 0, len(s.points))
	for _, p := range s.points {
		if f.ClientID != nil && p.ClientID != *f.ClientID {
			continue
		}
		if f.From != nil && p.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !p.Date.Before(*f.To) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeOrderStore) LineItems(ctx context.Context, f domrepo.OrderFilter) ([]models.LineItemPoint, error) {
	return s.items, nil
}

func (s *fakeOrderStore) CountByClient(ctx context.Context, clientID uint, from, to time.Time) (int64, error) {
	return 0, nil
}

// fakePredictionStore keeps replace-active semantics in memory so tests can
// assert the one-active-per-client invariant.
type fakePredictionStore struct {
	rows      []models.ChurnPrediction
	forecasts []models.ForecastPoint
	failNext  error
}

func (s *fakePredictionStore) ReplaceActive(ctx context.Context, preds []models.ChurnPrediction) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	affected := make(map[uint]struct{}, len(preds))
	for _, p := range preds {
		affected[p.ClientID] = struct{}{}
	}
	for i := range s.rows {
		if _, ok := affected[s.rows[i].ClientID]; ok {
			s.rows[i].Active = false
		}
	}
	for _, p := range preds {
		p.Active = true
		s.rows = append(s.rows, p)
	}
	return nil
}

func (s *fakePredictionStore) ListActiveChurn(ctx context.Context, f domrepo.ChurnFilter) ([]models.ChurnPrediction, int64, error) {
	out := make([]models.ChurnPrediction, 0)
	for _, r := range s.rows {
		if !r.Active {
			continue
		}
		if f.ClientID != nil && r.ClientID != *f.ClientID {
			continue
		}
		if f.MinTier != "" && !models.TierAtLeast(r.Tier, f.MinTier) {
			continue
		}
		out = append(out, r)
	}
	total := int64(len(out))
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (s *fakePredictionStore) InsertForecasts(ctx context.Context, points []models.ForecastPoint) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	s.forecasts = append(s.forecasts, points...)
	return nil
}

func (s *fakePredictionStore) activeFor(clientID uint) []models.ChurnPrediction {
	out := make([]models.ChurnPrediction, 0)
	for _, r := range s.rows {
		if r.ClientID == clientID && r.Active {
			out = append(out, r)
		}
	}
	return out
}

type fakeChurnPredictor struct {
	scores map[uint]float64
	err    error
	calls  int
}

func (p *fakeChurnPredictor) PredictBatch(ctx context.Context, features map[uint]map[string]float64, modelType string) (*models.ChurnBatchResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	result := &models.ChurnBatchResult{Metadata: models.ModelMetadata{ModelType: "stub"}}
	for id := range features {
		result.Scores = append(result.Scores, models.ChurnScore{
			ClientID: id,
			Score:    p.scores[id],
			Factors:  map[string]float64{"recency": 0.5},
		})
	}
	return result, nil
}

type fakeForecaster struct {
	points []models.ForecastSeriesPoint
	err    error
	calls  int
}

func (f *fakeForecaster) Forecast(ctx context.Context, series []models.SalesBucket, period string, horizon int, modelType string) (*models.ForecastResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.ForecastResult{Points: f.points, Metadata: models.ModelMetadata{ModelType: "stub"}}, nil
}

type fakeBillingStore struct {
	invoices []models.Invoice
}

func (s *fakeBillingStore) OverdueInvoices(ctx context.Context, asOf time.Time, limit int) ([]models.Invoice, int64, error) {
	out := make([]models.Invoice, 0)
	for _, inv := range s.invoices {
		if inv.Status == models.InvoiceStatusSent && inv.DueDate.Before(asOf) {
			out = append(out, inv)
		}
	}
	total := int64(len(out))
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeDeliveryStore struct {
	deliveries []models.Delivery
}

func (s *fakeDeliveryStore) FailedSince(ctx context.Context, since time.Time) ([]models.Delivery, error) {
	out := make([]models.Delivery, 0)
	for _, d := range s.deliveries {
		if d.Status == models.DeliveryStatusFailed && !d.AttemptedAt.Before(since) {
			out = append(out, d)
		}
	}
	return out, nil
}
