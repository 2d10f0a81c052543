package insight

import (
	"context"
	"fmt"

	"BizPulse/internal/domain/models"
	domsvc "BizPulse/internal/domain/service"
	"BizPulse/pkg/config"
)

type HTTPSalesForecaster struct{ base *HTTPServiceBase }

func NewHTTPSalesForecaster(cfg *config.Config) *HTTPSalesForecaster {
	return &HTTPSalesForecaster{base: NewHTTPServiceBase(cfg)}
}

type forecastSeriesEntry struct {
	Period string  `json:"period"`
	Sum    float64 `json:"sum"`
	Count  int     `json:"count"`
}

type forecastRequest struct {
	Series    []forecastSeriesEntry `json:"series"`
	Period    string                `json:"period"`
	Horizon   int                   `json:"horizon"`
	ModelType string                `json:"model_type,omitempty"`
}

type forecastResponse struct {
	Points   []models.ForecastSeriesPoint `json:"points"`
	Metadata models.ModelMetadata         `json:"metadata"`
}

func (f *HTTPSalesForecaster) Forecast(ctx context.Context, series []models.SalesBucket, period string, horizon int, modelType string) (*models.ForecastResult, error) {
	req := forecastRequest{
		Series:    make([]forecastSeriesEntry, 0, len(series)),
		Period:    period,
		Horizon:   horizon,
		ModelType: modelType,
	}
	for _, b := range series {
		req.Series = append(req.Series, forecastSeriesEntry{Period: b.Period, Sum: b.Sum, Count: b.Count})
	}

	var resp forecastResponse
	if err := f.base.PostJSON(ctx, "/predict/forecast", req, &resp); err != nil {
		return nil, fmt.Errorf("sales forecast: %w", err)
	}
	return &models.ForecastResult{Points: resp.Points, Metadata: resp.Metadata}, nil
}

var _ domsvc.SalesForecaster = (*HTTPSalesForecaster)(nil)
