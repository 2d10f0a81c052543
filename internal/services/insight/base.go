package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"BizPulse/pkg/config"
	xhttp "BizPulse/pkg/http"
)

// HTTPServiceBase provides a DRY foundation for the prediction-service HTTP
// clients. Every call is single-attempt; callers own any retry policy.
type HTTPServiceBase struct {
	baseURL   string
	client    *xhttp.Client // standard calls
	docClient *xhttp.Client // document-heavy calls, longer timeout
}

// NewHTTPServiceBase builds clients with timeouts and base URL from config.
func NewHTTPServiceBase(cfg *config.Config) *HTTPServiceBase {
	return &HTTPServiceBase{
		baseURL:   cfg.Insight.BaseURL,
		client:    xhttp.NewClient(xhttp.WithTimeout(cfg.Insight.Timeout)),
		docClient: xhttp.NewClient(xhttp.WithTimeout(cfg.Insight.DocumentTimeout)),
	}
}

// PostJSON posts the payload to `path` under baseURL and decodes JSON into
// dest, mapping transport and status failures onto API error codes.
func (b *HTTPServiceBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	return b.post(ctx, b.client, path, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     b.baseURL + path,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    payload,
	}, dest)
}

// PostRaw posts a pre-encoded body (e.g. multipart) using the document client.
func (b *HTTPServiceBase) PostRaw(ctx context.Context, path, contentType string, body io.Reader, dest interface{}) error {
	return b.post(ctx, b.docClient, path, &xhttp.RequestOptions{
		Method:  xhttp.MethodPost,
		URL:     b.baseURL + path,
		Headers: map[string]string{"Content-Type": contentType},
		Body:    body,
	}, dest)
}

func (b *HTTPServiceBase) post(ctx context.Context, client *xhttp.Client, path string, opts *xhttp.RequestOptions, dest interface{}) error {
	if client == nil || b.baseURL == "" {
		return fmt.Errorf("insight http client not initialized")
	}

	resp, err := client.SendRequest(ctx, opts)
	if err != nil {
		// Connection refused, DNS failure, timeout: the service is not
		// reachable and the caller should surface 503.
		return xhttp.UpstreamUnavailableError(fmt.Errorf("post %s: %w", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return upstreamFailure(path, resp)
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return xhttp.UpstreamError(resp.StatusCode, fmt.Sprintf("decode %s response: %v", path, err))
	}
	return nil
}

// upstreamFailure maps a non-2xx reply onto ERR_UPSTREAM, preserving the
// upstream's own error message when it sent one.
func upstreamFailure(path string, resp *http.Response) error {
	msg := fmt.Sprintf("upstream %s returned %d", path, resp.StatusCode)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		switch {
		case parsed.Error != "":
			msg = parsed.Error
		case parsed.Message != "":
			msg = parsed.Message
		}
	}
	return xhttp.UpstreamError(resp.StatusCode, msg)
}
