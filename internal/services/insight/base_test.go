package insight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"BizPulse/pkg/config"
	xhttp "BizPulse/pkg/http"
)

func testConfig(baseURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Insight.BaseURL = baseURL
	cfg.Insight.Timeout = 5 * time.Second
	cfg.Insight.DocumentTimeout = 10 * time.Second
	return cfg
}

func TestPostJSONUnreachableMapsToUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	base := NewHTTPServiceBase(testConfig(srv.URL))
	err := base.PostJSON(context.Background(), "/predict/churn", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error for unreachable upstream")
	}
	if !xhttp.HasCode(err, xhttp.CodeUpstreamUnavailable) {
		t.Errorf("got %v, want code %s", err, xhttp.CodeUpstreamUnavailable)
	}
}

func TestPostJSONNon2xxMapsToUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"model not loaded"}`))
	}))
	defer srv.Close()

	base := NewHTTPServiceBase(testConfig(srv.URL))
	err := base.PostJSON(context.Background(), "/predict/churn", map[string]string{}, nil)
	if err == nil {
		t.Fatal("expected error for 500 upstream")
	}
	if !xhttp.HasCode(err, xhttp.CodeUpstream) {
		t.Fatalf("got %v, want code %s", err, xhttp.CodeUpstream)
	}
	if !strings.Contains(err.Error(), "model not loaded") {
		t.Errorf("upstream message not preserved: %v", err)
	}
}

func TestPostJSONDecodesSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %s", ct)
		}
		w.Write([]byte(`{"label":"positive","score":0.91}`))
	}))
	defer srv.Close()

	base := NewHTTPServiceBase(testConfig(srv.URL))
	var out struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := base.PostJSON(context.Background(), "/analyze/sentiment", map[string]string{"text": "great"}, &out); err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if out.Label != "positive" || out.Score != 0.91 {
		t.Errorf("decoded %+v", out)
	}
}

func TestPostRawUsesGivenContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "multipart/form-data") {
			t.Errorf("content-type = %s, want multipart", ct)
		}
		w.Write([]byte(`{"text":"hello","confidence":0.8}`))
	}))
	defer srv.Close()

	base := NewHTTPServiceBase(testConfig(srv.URL))
	var out struct {
		Text string `json:"text"`
	}
	body := strings.NewReader("--x--")
	if err := base.PostRaw(context.Background(), "/extract/document", "multipart/form-data; boundary=x", body, &out); err != nil {
		t.Fatalf("PostRaw: %v", err)
	}
	if out.Text != "hello" {
		t.Errorf("decoded text = %q", out.Text)
	}
}
