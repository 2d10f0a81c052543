package features

import (
	"context"
	"time"

	"BizPulse/internal/domain/models"
	"BizPulse/internal/domain/repository"
	"BizPulse/pkg/util"
)

// Feature names as consumed by the prediction service. Changing these breaks
// the trained models, so treat them as a wire contract.
const (
	FeatDaysSinceSignup    = "days_since_signup"
	FeatTotalOrders        = "total_orders"
	FeatOrdersLast3M       = "orders_last_3m"
	FeatOrdersPrev3M       = "orders_prev_3m"
	FeatAvgOrderValue      = "avg_order_value"
	FeatDaysSinceLastOrder = "days_since_last_order"
	FeatTotalVisits        = "total_visits"
	FeatAvgFeedbackRating  = "avg_feedback_rating"
	FeatMonthlyConsumption = "monthly_consumption"
)

// Sentinel values for clients with no history.
const (
	noOrdersDays     = 999
	noFeedbackRating = 3
)

// Extractor builds per-client feature vectors from relational history.
type Extractor struct {
	clients repository.ClientStore
	orders  repository.OrderStore
	now     func() time.Time
}

func NewExtractor(clients repository.ClientStore, orders repository.OrderStore) *Extractor {
	return &Extractor{clients: clients, orders: orders, now: time.Now}
}

// Extract computes the feature vector for a single client.
func (e *Extractor) Extract(ctx context.Context, client *models.Client) (map[string]float64, error) {
	now := e.now().UTC()

	cid := client.ID
	points, err := e.orders.Points(ctx, repository.OrderFilter{ClientID: &cid})
	if err != nil {
		return nil, err
	}

	visits, err := e.clients.CountVisits(ctx, cid)
	if err != nil {
		return nil, err
	}
	fbCount, fbAvg, err := e.clients.FeedbackStats(ctx, cid)
	if err != nil {
		return nil, err
	}

	// Window edges are half-open: [now-3m, now) and [now-6m, now-3m).
	last3mStart := now.AddDate(0, -3, 0)
	prev3mStart := now.AddDate(0, -6, 0)

	var (
		totalOrders int
		last3m      int
		prev3m      int
		sum         float64
		lastOrder   time.Time
	)
	for _, p := range points {
		totalOrders++
		sum += p.Amount
		if !p.Date.Before(last3mStart) && p.Date.Before(now) {
			last3m++
		} else if !p.Date.Before(prev3mStart) && p.Date.Before(last3mStart) {
			prev3m++
		}
		if p.Date.After(lastOrder) {
			lastOrder = p.Date
		}
	}

	avgOrder := 0.0
	if totalOrders > 0 {
		avgOrder = sum / float64(totalOrders)
	}
	daysSinceLast := float64(noOrdersDays)
	if !lastOrder.IsZero() {
		daysSinceLast = float64(util.DaysBetween(lastOrder, now))
	}
	rating := float64(noFeedbackRating)
	if fbCount > 0 {
		rating = fbAvg
	}

	return map[string]float64{
		FeatDaysSinceSignup:    float64(util.DaysBetween(client.CreatedAt, now)),
		FeatTotalOrders:        float64(totalOrders),
		FeatOrdersLast3M:       float64(last3m),
		FeatOrdersPrev3M:       float64(prev3m),
		FeatAvgOrderValue:      avgOrder,
		FeatDaysSinceLastOrder: daysSinceLast,
		FeatTotalVisits:        float64(visits),
		FeatAvgFeedbackRating:  rating,
		FeatMonthlyConsumption: client.MonthlyConsumption,
	}, nil
}

// ExtractBatch computes feature vectors for all given clients, keyed by client ID.
func (e *Extractor) ExtractBatch(ctx context.Context, clients []models.Client) (map[uint]map[string]float64, error) {
	out := make(map[uint]map[string]float64, len(clients))
	for i := range clients {
		fv, err := e.Extract(ctx, &clients[i])
		if err != nil {
			return nil, err
		}
		out[clients[i].ID] = fv
	}
	return out, nil
}
