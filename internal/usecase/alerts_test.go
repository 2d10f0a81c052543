package usecase

import (
	"context"
	"testing"
	"time"

	"BizPulse/internal/domain/models"
)

func TestSynthesizeFixedOrderAndSkipsEmptySources(t *testing.T) {
	now := time.Now().UTC()
	billing := &fakeBillingStore{invoices: []models.Invoice{
		{ID: 1, ClientID: 1, Status: models.InvoiceStatusSent, DueDate: now.AddDate(0, 0, -5)},
	}}
	deliveries := &fakeDeliveryStore{} // empty, contributes nothing
	preds := &fakePredictionStore{rows: []models.ChurnPrediction{
		{ClientID: 1, Score: 0.7, Tier: models.TierHigh, Active: true},
		{ClientID: 2, Score: 0.9, Tier: models.TierCritical, Active: true},
	}}

	uc := NewAlertsUseCase(billing, deliveries, preds, nopMetrics{})
	alerts, err := uc.Synthesize(context.Background())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].Type != models.AlertOverdueInvoices {
		t.Errorf("first alert = %s, want %s", alerts[0].Type, models.AlertOverdueInvoices)
	}
	if alerts[1].Type != models.AlertHighChurnRisk {
		t.Errorf("second alert = %s, want %s", alerts[1].Type, models.AlertHighChurnRisk)
	}
	if alerts[1].Count != 2 {
		t.Errorf("churn alert count = %d, want 2", alerts[1].Count)
	}
}

func TestSynthesizeSeverities(t *testing.T) {
	now := time.Now().UTC()
	billing := &fakeBillingStore{invoices: []models.Invoice{
		{ID: 1, Status: models.InvoiceStatusSent, DueDate: now.AddDate(0, 0, -1)},
	}}
	deliveries := &fakeDeliveryStore{deliveries: []models.Delivery{
		{ID: 1, Status: models.DeliveryStatusFailed, AttemptedAt: now.AddDate(0, 0, -2)},
	}}
	preds := &fakePredictionStore{}

	uc := NewAlertsUseCase(billing, deliveries, preds, nopMetrics{})
	alerts, err := uc.Synthesize(context.Background())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].Severity != models.SeverityHigh || alerts[1].Severity != models.SeverityMedium {
		t.Errorf("severities = %s, %s", alerts[0].Severity, alerts[1].Severity)
	}
}

func TestSynthesizeIgnoresOldFailedDeliveries(t *testing.T) {
	now := time.Now().UTC()
	deliveries := &fakeDeliveryStore{deliveries: []models.Delivery{
		{ID: 1, Status: models.DeliveryStatusFailed, AttemptedAt: now.AddDate(0, 0, -10)},
	}}

	uc := NewAlertsUseCase(&fakeBillingStore{}, deliveries, &fakePredictionStore{}, nopMetrics{})
	alerts, err := uc.Synthesize(context.Background())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(alerts) != 0 {
		t.Errorf("got %d alerts, want 0 (failure outside trailing window)", len(alerts))
	}
}

func TestSynthesizeCapsInvoiceItemsButCountsAll(t *testing.T) {
	now := time.Now().UTC()
	billing := &fakeBillingStore{}
	for i := 1; i <= 14; i++ {
		billing.invoices = append(billing.invoices, models.Invoice{
			ID: uint(i), Status: models.InvoiceStatusSent, DueDate: now.AddDate(0, 0, -i),
		})
	}

	uc := NewAlertsUseCase(billing, &fakeDeliveryStore{}, &fakePredictionStore{}, nopMetrics{})
	alerts, err := uc.Synthesize(context.Background())
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1", len(alerts))
	}
	if alerts[0].Count != 14 {
		t.Errorf("count = %d, want 14", alerts[0].Count)
	}
	items, ok := alerts[0].Data.([]models.Invoice)
	if !ok {
		t.Fatalf("data payload type %T", alerts[0].Data)
	}
	if len(items) != alertInvoiceCap {
		t.Errorf("attached items = %d, want %d", len(items), alertInvoiceCap)
	}
}

func TestFilterBySeverity(t *testing.T) {
	alerts := []models.Alert{
		{Type: models.AlertOverdueInvoices, Severity: models.SeverityHigh},
		{Type: models.AlertFailedDeliveries, Severity: models.SeverityMedium},
	}
	if got := FilterBySeverity(alerts, models.SeverityMedium); len(got) != 1 || got[0].Type != models.AlertFailedDeliveries {
		t.Errorf("filtered = %+v", got)
	}
	if got := FilterBySeverity(alerts, ""); len(got) != 2 {
		t.Errorf("empty filter dropped alerts: %+v", got)
	}
}
