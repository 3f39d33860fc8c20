package cricinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/platform/resilience"
)

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled: false,
		},
	})
}

func TestClient_FetchFieldingDocument(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.RequestURI())
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	doc, err := client.FetchFieldingDocument(context.Background(), 52337, career.FormatTest)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(doc.Rows) != 4 {
		t.Fatalf("want 4 rows, got %d", len(doc.Rows))
	}
	want := "/ci/engine/player/52337.json?class=1;template=results;type=fielding;view=innings"
	if got, _ := gotPath.Load().(string); got != want {
		t.Fatalf("unexpected request path:\n got %s\nwant %s", got, want)
	}
}

func TestClient_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2)
	if _, err := client.FetchFieldingDocument(context.Background(), 52337, career.FormatODI); err != nil {
		t.Fatalf("fetch after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("want 2 attempts, got %d", calls.Load())
	}
}

func TestClient_DoesNotRetryHardFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 3)
	if _, err := client.FetchFieldingDocument(context.Background(), 52337, career.FormatT20I); err == nil {
		t.Fatal("want error on 404")
	}
	if calls.Load() != 1 {
		t.Fatalf("404 must not be retried, got %d attempts", calls.Load())
	}
}

func TestClient_ValidatesInput(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://127.0.0.1:0", 0)
	if _, err := client.FetchFieldingDocument(context.Background(), 0, career.FormatTest); err == nil {
		t.Fatal("want error for zero player ref")
	}
	if _, err := client.FetchFieldingDocument(context.Background(), 52337, career.Format(9)); err == nil {
		t.Fatal("want error for unknown format")
	}
}
