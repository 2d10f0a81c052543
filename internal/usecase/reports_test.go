package usecase

import (
	"context"
	"testing"
	"time"

	"BizPulse/internal/domain/models"
	"BizPulse/internal/service/cache"
	xhttp "BizPulse/pkg/http"
)

func newReportsFixture(orders *fakeOrderStore, clients *fakeClientStore) *ReportsUseCase {
	return NewReportsUseCase(orders, clients, cache.NewMemoryCache(), 30*time.Second, nopMetrics{}, testLogger())
}

func TestSalesTrendServedFromCacheOnRepeat(t *testing.T) {
	orders := &fakeOrderStore{points: []models.OrderPoint{
		{ClientID: 1, Date: day(2025, 1, 10), Amount: 100},
	}}
	uc := newReportsFixture(orders, &fakeClientStore{})

	first, err := uc.SalesTrend(context.Background(), models.SalesTrendRequest{Period: "monthly"})
	if err != nil {
		t.Fatalf("SalesTrend: %v", err)
	}

	// Mutate the backing store; the cached answer must not change.
	orders.points = append(orders.points, models.OrderPoint{ClientID: 1, Date: day(2025, 1, 11), Amount: 900})
	second, err := uc.SalesTrend(context.Background(), models.SalesTrendRequest{Period: "monthly"})
	if err != nil {
		t.Fatalf("SalesTrend (cached): %v", err)
	}
	if len(second.Buckets) != len(first.Buckets) || second.Buckets[0].Sum != first.Buckets[0].Sum {
		t.Errorf("cached result diverged: %+v vs %+v", second.Buckets, first.Buckets)
	}
}

func TestSalesTrendRejectsBadRange(t *testing.T) {
	uc := newReportsFixture(&fakeOrderStore{}, &fakeClientStore{})

	_, err := uc.SalesTrend(context.Background(), models.SalesTrendRequest{From: "not-a-date"})
	if !xhttp.HasCode(err, xhttp.CodeValidation) {
		t.Errorf("bad from: got %v", err)
	}

	_, err = uc.SalesTrend(context.Background(), models.SalesTrendRequest{From: "2025-06-01", To: "2025-01-01"})
	if !xhttp.HasCode(err, xhttp.CodeValidation) {
		t.Errorf("inverted range: got %v", err)
	}
}

func TestTopClientsResolvesNames(t *testing.T) {
	orders := &fakeOrderStore{points: []models.OrderPoint{
		{ClientID: 1, Date: day(2025, 2, 1), Amount: 10},
		{ClientID: 2, Date: day(2025, 2, 2), Amount: 99},
	}}
	clients := &fakeClientStore{clients: []models.Client{
		{ID: 1, Name: "acme"},
		{ID: 2, Name: "globex"},
	}}
	uc := newReportsFixture(orders, clients)

	result, err := uc.TopClients(context.Background(), models.TopClientsRequest{Limit: 10})
	if err != nil {
		t.Fatalf("TopClients: %v", err)
	}
	if len(result.Clients) != 2 {
		t.Fatalf("got %d rows, want 2", len(result.Clients))
	}
	if result.Clients[0].ClientName != "globex" {
		t.Errorf("top client = %q, want globex", result.Clients[0].ClientName)
	}
}

func TestProfitabilityLimitClampedToCap(t *testing.T) {
	items := make([]models.LineItemPoint, 0, 30)
	for i := 1; i <= 30; i++ {
		items = append(items, models.LineItemPoint{ProductID: uint(i), Quantity: 1, UnitPrice: float64(i)})
	}
	uc := newReportsFixture(&fakeOrderStore{items: items}, &fakeClientStore{})

	result, err := uc.Profitability(context.Background(), models.ProfitabilityRequest{Limit: 999})
	if err != nil {
		t.Fatalf("Profitability: %v", err)
	}
	if len(result.Products) != profitabilityMaxRows {
		t.Errorf("got %d rows, want %d", len(result.Products), profitabilityMaxRows)
	}
}
