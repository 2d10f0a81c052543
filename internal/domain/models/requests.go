package models

// Requests for the pipeline HTTP endpoints. Defined in domain for consistency and reuse.

type ChurnRunRequest struct {
	ClientIDs []uint `json:"client_ids" validate:"omitempty,dive,gt=0"`
	ModelType string `json:"model_type" default:"gradient_boost" validate:"omitempty,max=64"`
}

type ChurnListRequest struct {
	Tier     string `query:"tier" json:"tier" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
	ClientID uint   `query:"client_id" json:"client_id" validate:"omitempty,gt=0"`
	Limit    int    `query:"limit" json:"limit" default:"100" validate:"gte=1,lte=1000"`
	Offset   int    `query:"offset" json:"offset" validate:"gte=0"`
}

type ForecastRequest struct {
	Period    string `json:"period" default:"monthly" validate:"oneof=daily weekly monthly"`
	Horizon   int    `json:"horizon" default:"30" validate:"gte=1,lte=365"`
	ClientID  *uint  `json:"client_id" validate:"omitempty,gt=0"`
	ModelType string `json:"model_type" default:"prophet" validate:"omitempty,max=64"`
}

type SalesTrendRequest struct {
	Period string `query:"period" json:"period" default:"monthly" validate:"oneof=daily weekly monthly"`
	From   string `query:"from" json:"from" validate:"omitempty"`
	To     string `query:"to" json:"to" validate:"omitempty"`
}

type ProfitabilityRequest struct {
	From  string `query:"from" json:"from" validate:"omitempty"`
	To    string `query:"to" json:"to" validate:"omitempty"`
	Limit int    `query:"limit" json:"limit" default:"20" validate:"gte=1,lte=20"`
}

type TopClientsRequest struct {
	From  string `query:"from" json:"from" validate:"omitempty"`
	To    string `query:"to" json:"to" validate:"omitempty"`
	Limit int    `query:"limit" json:"limit" default:"10" validate:"gte=1,lte=100"`
}

type SentimentRequest struct {
	Text       string `json:"text" validate:"required,max=10000"`
	FeedbackID uint   `json:"feedback_id" validate:"omitempty,gt=0"`
}

type AlertsRequest struct {
	Severity string `query:"severity" json:"severity" validate:"omitempty,oneof=HIGH MEDIUM"`
}
