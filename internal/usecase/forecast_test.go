package usecase

import (
	"context"
	"testing"
	"time"

	"BizPulse/internal/domain/models"
	xhttp "BizPulse/pkg/http"
)

func orderSeries(n int, daysApart int) []models.OrderPoint {
	now := time.Now().UTC()
	out := make([]models.OrderPoint, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.OrderPoint{
			OrderID:  uint(i + 1),
			ClientID: 1,
			Date:     now.AddDate(0, 0, -(i+1)*daysApart),
			Amount:   100,
		})
	}
	return out
}

func newForecastFixture(points []models.OrderPoint, forecaster *fakeForecaster) (*ForecastUseCase, *fakePredictionStore) {
	store := &fakePredictionStore{}
	uc := NewForecastUseCase(
		&fakeOrderStore{points: points},
		forecaster,
		store,
		nopEvents{},
		nopMetrics{},
		testLogger(),
	)
	return uc, store
}

func TestForecastRejectsNineOrders(t *testing.T) {
	forecaster := &fakeForecaster{}
	uc, _ := newForecastFixture(orderSeries(9, 7), forecaster)

	_, err := uc.Run(context.Background(), models.ForecastRequest{Period: "monthly", Horizon: 30})
	if !xhttp.HasCode(err, xhttp.CodeInsufficientData) {
		t.Fatalf("got %v, want %s", err, xhttp.CodeInsufficientData)
	}
	if forecaster.calls != 0 {
		t.Errorf("forecaster called %d times before the gate, want 0", forecaster.calls)
	}
}

func TestForecastProceedsWithTenOrders(t *testing.T) {
	forecaster := &fakeForecaster{points: []models.ForecastSeriesPoint{
		{Date: time.Now().AddDate(0, 1, 0), Amount: 1000, Confidence: 0.8},
	}}
	uc, store := newForecastFixture(orderSeries(10, 7), forecaster)

	result, err := uc.Run(context.Background(), models.ForecastRequest{Period: "monthly", Horizon: 30})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if forecaster.calls != 1 {
		t.Errorf("forecaster calls = %d, want 1", forecaster.calls)
	}
	if len(store.forecasts) != 1 {
		t.Fatalf("persisted %d points, want 1", len(store.forecasts))
	}
	if store.forecasts[0].BatchID != result.BatchID {
		t.Errorf("persisted batch id %q != result batch id %q", store.forecasts[0].BatchID, result.BatchID)
	}
	if store.forecasts[0].Period != "monthly" {
		t.Errorf("period tag = %q, want monthly", store.forecasts[0].Period)
	}
}

func TestForecastIgnoresOrdersOutsideLookback(t *testing.T) {
	// 10 orders but spaced ~100 days apart: only the first 7 fall inside
	// the 2-year lookback window.
	forecaster := &fakeForecaster{}
	uc, _ := newForecastFixture(orderSeries(10, 100), forecaster)

	_, err := uc.Run(context.Background(), models.ForecastRequest{Period: "monthly", Horizon: 30})
	if !xhttp.HasCode(err, xhttp.CodeInsufficientData) {
		t.Fatalf("got %v, want %s", err, xhttp.CodeInsufficientData)
	}
}

func TestForecastHorizonBounds(t *testing.T) {
	uc, _ := newForecastFixture(orderSeries(20, 7), &fakeForecaster{})

	for _, horizon := range []int{0, -1, 366} {
		_, err := uc.Run(context.Background(), models.ForecastRequest{Period: "daily", Horizon: horizon})
		if !xhttp.HasCode(err, xhttp.CodeValidation) {
			t.Errorf("horizon %d: got %v, want %s", horizon, err, xhttp.CodeValidation)
		}
	}
}

func TestForecastAppendsAcrossRuns(t *testing.T) {
	forecaster := &fakeForecaster{points: []models.ForecastSeriesPoint{
		{Date: time.Now().AddDate(0, 1, 0), Amount: 500, Confidence: 0.7},
	}}
	uc, store := newForecastFixture(orderSeries(12, 7), forecaster)

	first, err := uc.Run(context.Background(), models.ForecastRequest{Period: "weekly", Horizon: 14})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := uc.Run(context.Background(), models.ForecastRequest{Period: "weekly", Horizon: 14})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.BatchID == second.BatchID {
		t.Error("batch ids must differ between runs")
	}
	if len(store.forecasts) != 2 {
		t.Errorf("persisted %d points after two runs, want 2 (append-only)", len(store.forecasts))
	}
}

func TestForecastUpstreamFailurePersistsNothing(t *testing.T) {
	forecaster := &fakeForecaster{err: xhttp.UpstreamError(500, "model blew up")}
	uc, store := newForecastFixture(orderSeries(15, 7), forecaster)

	_, err := uc.Run(context.Background(), models.ForecastRequest{Period: "monthly", Horizon: 30})
	if !xhttp.HasCode(err, xhttp.CodeUpstream) {
		t.Fatalf("got %v, want %s", err, xhttp.CodeUpstream)
	}
	if len(store.forecasts) != 0 {
		t.Errorf("persisted %d points after upstream failure, want 0", len(store.forecasts))
	}
}
