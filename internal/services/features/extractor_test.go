package features

import (
	"context"
	"math"
	"testing"
	"time"

	"BizPulse/internal/domain/models"
	"BizPulse/internal/domain/repository"
)

type stubClients struct {
	visits  int64
	fbCount int64
	fbAvg   float64
}

func (s *stubClients) GetByID(ctx context.Context, id uint) (*models.Client, error) { return nil, nil }
func (s *stubClients) ListByIDs(ctx context.Context, ids []uint) ([]models.Client, error) {
	return nil, nil
}
func (s *stubClients) ListActive(ctx context.Context) ([]models.Client, error) { return nil, nil }
func (s *stubClients) CountVisits(ctx context.Context, clientID uint) (int64, error) {
	return s.visits, nil
}
func (s *stubClients) FeedbackStats(ctx context.Context, clientID uint) (int64, float64, error) {
	return s.fbCount, s.fbAvg, nil
}

type stubOrders struct {
	points []models.OrderPoint
}

func (s *stubOrders) Points(ctx context.Context, f repository.OrderFilter) ([]models.OrderPoint, error) {
	return s.points, nil
}
func (s *stubOrders) LineItems(ctx context.Context, f repository.OrderFilter) ([]models.LineItemPoint, error) {
	return nil, nil
}
func (s *stubOrders) CountByClient(ctx context.Context, clientID uint, from, to time.Time) (int64, error) {
	return 0, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newTestExtractor(clients *stubClients, orders *stubOrders) *Extractor {
	e := NewExtractor(clients, orders)
	e.now = fixedNow
	return e
}

func TestExtractDefaultsForEmptyHistory(t *testing.T) {
	e := newTestExtractor(&stubClients{}, &stubOrders{})
	client := &models.Client{ID: 1, CreatedAt: fixedNow().AddDate(0, 0, -30)}

	fv, err := e.Extract(context.Background(), client)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fv[FeatAvgOrderValue] != 0 {
		t.Errorf("avg_order_value = %v, want 0", fv[FeatAvgOrderValue])
	}
	if fv[FeatDaysSinceLastOrder] != 999 {
		t.Errorf("days_since_last_order = %v, want 999", fv[FeatDaysSinceLastOrder])
	}
	if fv[FeatAvgFeedbackRating] != 3 {
		t.Errorf("avg_feedback_rating = %v, want 3", fv[FeatAvgFeedbackRating])
	}
	if fv[FeatDaysSinceSignup] != 30 {
		t.Errorf("days_since_signup = %v, want 30", fv[FeatDaysSinceSignup])
	}
}

func TestExtractOrderWindows(t *testing.T) {
	now := fixedNow()
	orders := &stubOrders{points: []models.OrderPoint{
		{Date: now.AddDate(0, 0, -10), Amount: 100}, // last 3m
		{Date: now.AddDate(0, 0, -80), Amount: 200}, // last 3m
		{Date: now.AddDate(0, -4, 0), Amount: 300},  // prev 3m
		{Date: now.AddDate(0, -7, 0), Amount: 400},  // older than both windows
	}}
	e := newTestExtractor(&stubClients{}, orders)

	fv, err := e.Extract(context.Background(), &models.Client{ID: 1, CreatedAt: now.AddDate(-1, 0, 0)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fv[FeatTotalOrders] != 4 {
		t.Errorf("total_orders = %v, want 4", fv[FeatTotalOrders])
	}
	if fv[FeatOrdersLast3M] != 2 {
		t.Errorf("orders_last_3m = %v, want 2", fv[FeatOrdersLast3M])
	}
	if fv[FeatOrdersPrev3M] != 1 {
		t.Errorf("orders_prev_3m = %v, want 1", fv[FeatOrdersPrev3M])
	}
	if math.Abs(fv[FeatAvgOrderValue]-250) > 1e-9 {
		t.Errorf("avg_order_value = %v, want 250", fv[FeatAvgOrderValue])
	}
	if fv[FeatDaysSinceLastOrder] != 10 {
		t.Errorf("days_since_last_order = %v, want 10", fv[FeatDaysSinceLastOrder])
	}
}

func TestExtractWindowBoundaryIsHalfOpen(t *testing.T) {
	now := fixedNow()
	// An order exactly at now-3m belongs to the recent window, not the previous one.
	orders := &stubOrders{points: []models.OrderPoint{
		{Date: now.AddDate(0, -3, 0), Amount: 50},
	}}
	e := newTestExtractor(&stubClients{}, orders)

	fv, err := e.Extract(context.Background(), &models.Client{ID: 1, CreatedAt: now.AddDate(-1, 0, 0)})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fv[FeatOrdersLast3M] != 1 || fv[FeatOrdersPrev3M] != 0 {
		t.Errorf("boundary order: last=%v prev=%v, want last=1 prev=0",
			fv[FeatOrdersLast3M], fv[FeatOrdersPrev3M])
	}
}

func TestExtractFeedbackAndVisits(t *testing.T) {
	e := newTestExtractor(&stubClients{visits: 7, fbCount: 3, fbAvg: 4.5}, &stubOrders{})
	client := &models.Client{ID: 2, CreatedAt: fixedNow().AddDate(0, 0, -1), MonthlyConsumption: 120.5}

	fv, err := e.Extract(context.Background(), client)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if fv[FeatTotalVisits] != 7 {
		t.Errorf("total_visits = %v, want 7", fv[FeatTotalVisits])
	}
	if fv[FeatAvgFeedbackRating] != 4.5 {
		t.Errorf("avg_feedback_rating = %v, want 4.5", fv[FeatAvgFeedbackRating])
	}
	if fv[FeatMonthlyConsumption] != 120.5 {
		t.Errorf("monthly_consumption = %v, want 120.5", fv[FeatMonthlyConsumption])
	}
}

func TestExtractBatchKeyedByClient(t *testing.T) {
	e := newTestExtractor(&stubClients{}, &stubOrders{})
	clients := []models.Client{
		{ID: 1, CreatedAt: fixedNow().AddDate(0, 0, -10)},
		{ID: 2, CreatedAt: fixedNow().AddDate(0, 0, -20)},
	}

	out, err := e.ExtractBatch(context.Background(), clients)
	if err != nil {
		t.Fatalf("ExtractBatch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d vectors, want 2", len(out))
	}
	if out[1][FeatDaysSinceSignup] != 10 || out[2][FeatDaysSinceSignup] != 20 {
		t.Errorf("per-client signup days wrong: %v / %v",
			out[1][FeatDaysSinceSignup], out[2][FeatDaysSinceSignup])
	}
}
