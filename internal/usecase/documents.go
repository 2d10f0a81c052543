package usecase

import (
	"context"
	"io"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	domsvc "BizPulse/internal/domain/service"
	xhttp "BizPulse/pkg/http"
)

// Upload size ceiling for document extraction.
const maxDocumentBytes = 20 << 20

// DocumentsUseCase forwards uploaded documents to the extraction service.
// Purely pass-through; nothing is persisted.
type DocumentsUseCase struct {
	extractor domsvc.DocumentExtractor
	metrics   domrepo.Metrics
}

func NewDocumentsUseCase(extractor domsvc.DocumentExtractor, metrics domrepo.Metrics) *DocumentsUseCase {
	return &DocumentsUseCase{extractor: extractor, metrics: metrics}
}

func (uc *DocumentsUseCase) Extract(ctx context.Context, filename, mimeType, docType string, size int64, content io.Reader) (*models.DocumentResult, error) {
	if filename == "" {
		return nil, xhttp.ValidationError("file", "filename is required")
	}
	if size > maxDocumentBytes {
		return nil, xhttp.ValidationError("file", "document exceeds 20MB limit")
	}

	start := time.Now()
	result, err := uc.extractor.Extract(ctx, filename, mimeType, docType, content)
	uc.metrics.RecordUpstreamLatency("document", time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordPredictionRun("document", "upstream_error")
		return nil, err
	}
	uc.metrics.RecordPredictionRun("document", "ok")
	return result, nil
}
