package insight

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"

	"BizPulse/internal/domain/models"
	domsvc "BizPulse/internal/domain/service"
	"BizPulse/pkg/config"
)

type HTTPDocumentExtractor struct{ base *HTTPServiceBase }

func NewHTTPDocumentExtractor(cfg *config.Config) *HTTPDocumentExtractor {
	return &HTTPDocumentExtractor{base: NewHTTPServiceBase(cfg)}
}

func (d *HTTPDocumentExtractor) Extract(ctx context.Context, filename, mimeType, docType string, content io.Reader) (*models.DocumentResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	hdr.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if docType != "" {
		if err := mw.WriteField("doc_type", docType); err != nil {
			return nil, fmt.Errorf("multipart field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("multipart close: %w", err)
	}

	var result models.DocumentResult
	if err := d.base.PostRaw(ctx, "/extract/document", mw.FormDataContentType(), &buf, &result); err != nil {
		return nil, fmt.Errorf("document extract: %w", err)
	}
	return &result, nil
}

var _ domsvc.DocumentExtractor = (*HTTPDocumentExtractor)(nil)
