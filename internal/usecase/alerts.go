package usecase

import (
	"context"
	"fmt"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
)

const (
	alertInvoiceCap   = 10
	alertChurnCap     = 10
	alertDeliveryDays = 7
)

// AlertsUseCase recomputes the operational alert list on every call. Sources
// are evaluated in a fixed order and never deduplicated against each other.
type AlertsUseCase struct {
	billing    domrepo.BillingStore
	deliveries domrepo.DeliveryStore
	preds      domrepo.PredictionStore
	metrics    domrepo.Metrics
	now        func() time.Time
}

func NewAlertsUseCase(
	billing domrepo.BillingStore,
	deliveries domrepo.DeliveryStore,
	preds domrepo.PredictionStore,
	metrics domrepo.Metrics,
) *AlertsUseCase {
	return &AlertsUseCase{
		billing:    billing,
		deliveries: deliveries,
		preds:      preds,
		metrics:    metrics,
		now:        time.Now,
	}
}

// Synthesize evaluates the three signal sources in order: overdue invoices,
// failed deliveries, high-risk churn predictions. Empty sources contribute
// no alert.
func (uc *AlertsUseCase) Synthesize(ctx context.Context) ([]models.Alert, error) {
	return uc.SynthesizeAt(ctx, uc.now())
}

// SynthesizeAt evaluates the sources against a caller-supplied reference
// time. Used by the snapshot endpoint's as_of override.
func (uc *AlertsUseCase) SynthesizeAt(ctx context.Context, asOf time.Time) ([]models.Alert, error) {
	now := asOf.UTC()
	alerts := make([]models.Alert, 0, 3)

	invoices, invoiceTotal, err := uc.billing.OverdueInvoices(ctx, now, alertInvoiceCap)
	if err != nil {
		return nil, err
	}
	if len(invoices) > 0 {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertOverdueInvoices,
			Severity: models.SeverityHigh,
			Count:    int(invoiceTotal),
			Message:  fmt.Sprintf("%d invoice(s) past due and unpaid", invoiceTotal),
			Data:     invoices,
		})
	}

	since := now.AddDate(0, 0, -alertDeliveryDays)
	failed, err := uc.deliveries.FailedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertFailedDeliveries,
			Severity: models.SeverityMedium,
			Count:    len(failed),
			Message:  fmt.Sprintf("%d delivery attempt(s) failed in the last %d days", len(failed), alertDeliveryDays),
			Data:     failed,
		})
	}

	risky, riskyTotal, err := uc.preds.ListActiveChurn(ctx, domrepo.ChurnFilter{
		MinTier: models.TierHigh,
		Limit:   alertChurnCap,
	})
	if err != nil {
		return nil, err
	}
	if len(risky) > 0 {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertHighChurnRisk,
			Severity: models.SeverityHigh,
			Count:    int(riskyTotal),
			Message:  fmt.Sprintf("%d client(s) at HIGH or CRITICAL churn risk", riskyTotal),
			Data:     risky,
		})
	}

	uc.metrics.RecordAlertsSynthesized(len(alerts))
	return alerts, nil
}

// FilterBySeverity narrows an alert list; empty severity passes everything.
func FilterBySeverity(alerts []models.Alert, severity string) []models.Alert {
	if severity == "" {
		return alerts
	}
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Severity == severity {
			out = append(out, a)
		}
	}
	return out
}
