package insight

import (
	"context"
	"fmt"

	"BizPulse/internal/domain/models"
	domsvc "BizPulse/internal/domain/service"
	"BizPulse/pkg/config"
)

type HTTPSentimentAnalyzer struct{ base *HTTPServiceBase }

func NewHTTPSentimentAnalyzer(cfg *config.Config) *HTTPSentimentAnalyzer {
	return &HTTPSentimentAnalyzer{base: NewHTTPServiceBase(cfg)}
}

type sentimentRequest struct {
	Text string `json:"text"`
}

func (a *HTTPSentimentAnalyzer) Analyze(ctx context.Context, text string) (*models.SentimentResult, error) {
	var result models.SentimentResult
	if err := a.base.PostJSON(ctx, "/analyze/sentiment", sentimentRequest{Text: text}, &result); err != nil {
		return nil, fmt.Errorf("sentiment: %w", err)
	}
	return &result, nil
}

var _ domsvc.SentimentAnalyzer = (*HTTPSentimentAnalyzer)(nil)
