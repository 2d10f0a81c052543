package models

// Alert types, in their fixed evaluation order.
const (
	AlertOverdueInvoices  = "overdue_invoices"
	AlertFailedDeliveries = "failed_deliveries"
	AlertHighChurnRisk    = "high_churn_risk"
)

// Alert severities.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
)

// Alert is a transient operational signal, recomputed on every query.
type Alert struct {
	Type     string      `json:"type"`
	Severity string      `json:"severity"`
	Count    int         `json:"count"`
	Message  string      `json:"message"`
	Data     interface{} `json:"data"`
}
