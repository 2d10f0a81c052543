package insight

import (
	"context"
	"fmt"

	"BizPulse/internal/domain/models"
	domsvc "BizPulse/internal/domain/service"
	"BizPulse/pkg/config"
)

type HTTPChurnPredictor struct{ base *HTTPServiceBase }

func NewHTTPChurnPredictor(cfg *config.Config) *HTTPChurnPredictor {
	return &HTTPChurnPredictor{base: NewHTTPServiceBase(cfg)}
}

type churnClientPayload struct {
	ClientID uint               `json:"client_id"`
	Features map[string]float64 `json:"features"`
}

type churnRequest struct {
	Clients   []churnClientPayload `json:"clients"`
	ModelType string               `json:"model_type,omitempty"`
}

type churnResponse struct {
	Predictions []models.ChurnScore  `json:"predictions"`
	Metadata    models.ModelMetadata `json:"metadata"`
}

func (p *HTTPChurnPredictor) PredictBatch(ctx context.Context, features map[uint]map[string]float64, modelType string) (*models.ChurnBatchResult, error) {
	req := churnRequest{ModelType: modelType, Clients: make([]churnClientPayload, 0, len(features))}
	for id, fv := range features {
		req.Clients = append(req.Clients, churnClientPayload{ClientID: id, Features: fv})
	}

	var resp churnResponse
	if err := p.base.PostJSON(ctx, "/predict/churn", req, &resp); err != nil {
		return nil, fmt.Errorf("churn batch: %w", err)
	}
	return &models.ChurnBatchResult{Scores: resp.Predictions, Metadata: resp.Metadata}, nil
}

var _ domsvc.ChurnPredictor = (*HTTPChurnPredictor)(nil)
