package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	"BizPulse/internal/service/cache"
	xhttp "BizPulse/pkg/http"
	applogger "BizPulse/pkg/logger"
	"BizPulse/pkg/util"
)

const profitabilityMaxRows = 20

// ReportsUseCase serves the aggregation endpoints. Results are recomputed
// from transactional rows and held in a short-TTL cache.
type ReportsUseCase struct {
	orders  domrepo.OrderStore
	clients domrepo.ClientStore
	cache   cache.BytesCache
	ttl     time.Duration
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewReportsUseCase(
	orders domrepo.OrderStore,
	clients domrepo.ClientStore,
	c cache.BytesCache,
	ttl time.Duration,
	metrics domrepo.Metrics,
	l *applogger.Logger,
) *ReportsUseCase {
	return &ReportsUseCase{orders: orders, clients: clients, cache: c, ttl: ttl, metrics: metrics, l: l}
}

type SalesTrendResult struct {
	Period  string               `json:"period"`
	Buckets []models.SalesBucket `json:"buckets"`
}

func (uc *ReportsUseCase) SalesTrend(ctx context.Context, req models.SalesTrendRequest) (*SalesTrendResult, error) {
	period := domrepo.NormalizePeriod(req.Period)
	filter, err := rangeFilter(req.From, req.To)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:sales-trend:%s:%s:%s", period, req.From, req.To)
	var result SalesTrendResult
	if uc.cached(ctx, "sales_trend", key, &result) {
		return &result, nil
	}

	points, err := uc.orders.Points(ctx, filter)
	if err != nil {
		return nil, err
	}
	result = SalesTrendResult{Period: string(period), Buckets: BucketOrders(points, period)}
	uc.put(ctx, key, &result)
	uc.metrics.RecordReportServed("sales_trend", false)
	return &result, nil
}

type ProfitabilityResult struct {
	Products []models.ProductProfit `json:"products"`
}

func (uc *ReportsUseCase) Profitability(ctx context.Context, req models.ProfitabilityRequest) (*ProfitabilityResult, error) {
	filter, err := rangeFilter(req.From, req.To)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 || limit > profitabilityMaxRows {
		limit = profitabilityMaxRows
	}

	key := fmt.Sprintf("report:profitability:%s:%s:%d", req.From, req.To, limit)
	var result ProfitabilityResult
	if uc.cached(ctx, "profitability", key, &result) {
		return &result, nil
	}

	items, err := uc.orders.LineItems(ctx, filter)
	if err != nil {
		return nil, err
	}
	result = ProfitabilityResult{Products: GroupProfitability(items, limit)}
	uc.put(ctx, key, &result)
	uc.metrics.RecordReportServed("profitability", false)
	return &result, nil
}

type TopClientsResult struct {
	Clients []models.ClientRank `json:"clients"`
}

func (uc *ReportsUseCase) TopClients(ctx context.Context, req models.TopClientsRequest) (*TopClientsResult, error) {
	filter, err := rangeFilter(req.From, req.To)
	if err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("report:top-clients:%s:%s:%d", req.From, req.To, limit)
	var result TopClientsResult
	if uc.cached(ctx, "top_clients", key, &result) {
		return &result, nil
	}

	points, err := uc.orders.Points(ctx, filter)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{})
	ids := make([]uint, 0)
	for _, p := range points {
		if _, ok := seen[p.ClientID]; !ok {
			seen[p.ClientID] = struct{}{}
			ids = append(ids, p.ClientID)
		}
	}
	names := make(map[uint]string, len(ids))
	clients, err := uc.clients.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	result = TopClientsResult{Clients: RankClients(points, names, limit)}
	uc.put(ctx, key, &result)
	uc.metrics.RecordReportServed("top_clients", false)
	return &result, nil
}

// rangeFilter turns optional from/to strings into a [from,to) order filter.
func rangeFilter(from, to string) (domrepo.OrderFilter, error) {
	var f domrepo.OrderFilter
	if from != "" {
		t, ok := util.ParseTime(from)
		if !ok {
			return f, xhttp.ValidationError("from", "unparseable date")
		}
		f.From = &t
	}
	if to != "" {
		t, ok := util.ParseTime(to)
		if !ok {
			return f, xhttp.ValidationError("to", "unparseable date")
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, xhttp.ValidationError("from", "from must be before to")
	}
	return f, nil
}

func (uc *ReportsUseCase) cached(ctx context.Context, report, key string, dest interface{}) bool {
	if uc.cache == nil {
		return false
	}
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false
	}
	uc.metrics.RecordReportServed(report, true)
	return true
}

func (uc *ReportsUseCase) put(ctx context.Context, key string, value interface{}) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
		uc.l.Debug("report cache set failed", applogger.String("key", key), applogger.Error(err))
	}
}
