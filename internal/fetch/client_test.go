package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sigidayo/sources/internal/config"
	"github.com/sigidayo/sources/internal/proxy"
)

func testConfig() config.DynastyConfig {
	return config.DynastyConfig{
		Timeout:              5 * time.Second,
		UserAgent:            "sources-test",
		MaxWorkers:           4,
		MaxRequestsPerSecond: 1000,
		RateLimitPer:         time.Second,
	}
}

func TestSendAllPreservesOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "sources-test" {
			t.Errorf("unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		if r.URL.Path == "/slow" {
			time.Sleep(50 * time.Millisecond)
		}
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"path":%q}`, r.URL.Path)
	}))
	defer server.Close()

	fetcher := New(testConfig(), nil)
	urls := []string{server.URL + "/slow", server.URL + "/fast", server.URL + "/missing"}

	responses, err := fetcher.SendAll(context.Background(), urls)
	if err != nil {
		t.Fatalf("SendAll returned error: %v", err)
	}
	if len(responses) != len(urls) {
		t.Fatalf("expected %d responses, got %d", len(urls), len(responses))
	}

	if responses[0].URL != urls[0] || string(responses[0].Body) != `{"path":"/slow"}` {
		t.Fatalf("unexpected first response: %+v", responses[0])
	}
	if responses[1].URL != urls[1] || !responses[1].OK() {
		t.Fatalf("unexpected second response: %+v", responses[1])
	}
	if responses[2].StatusCode != http.StatusNotFound || responses[2].OK() {
		t.Fatalf("expected 404 for third response, got %d", responses[2].StatusCode)
	}
}

func TestSendAllTransportError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	fetcher := New(testConfig(), nil)
	_, err := fetcher.SendAll(context.Background(), []string{server.URL + "/a", closedURL + "/b", server.URL + "/c"})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected sibling requests to complete, got %d hits", hits.Load())
	}
}

func TestSendAllEmpty(t *testing.T) {
	fetcher := New(testConfig(), nil)
	responses, err := fetcher.SendAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("SendAll returned error: %v", err)
	}
	if len(responses) != 0 {
		t.Fatalf("expected no responses, got %d", len(responses))
	}
}

func TestExpect200(t *testing.T) {
	if err := Expect200(Response{StatusCode: http.StatusOK}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Expect200(Response{URL: "https://example.com", StatusCode: http.StatusServiceUnavailable})
	if !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("expected ErrHTTPStatus, got %v", err)
	}
}

func TestSendAllIsRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxRequestsPerSecond = 10

	urls := make([]string, 6)
	for i := range urls {
		urls[i] = fmt.Sprintf("%s/%d", server.URL, i)
	}

	start := time.Now()
	responses, err := New(cfg, nil).SendAll(context.Background(), urls)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("SendAll returned error: %v", err)
	}
	if len(responses) != len(urls) {
		t.Fatalf("expected %d responses, got %d", len(urls), len(responses))
	}

	// 6 requests at 10/s leave 5 gaps of 100ms.
	if elapsed < 450*time.Millisecond {
		t.Fatalf("expected requests to be throttled, finished in %s", elapsed)
	}
}

func TestRateLimitedProxyIsRotated(t *testing.T) {
	var limitedHits, healthyHits atomic.Int32

	// A plain HTTP server also answers absolute-form proxy requests.
	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limitedHits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer limited.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		healthyHits.Add(1)
		fmt.Fprintf(w, `{"path":%q}`, r.URL.Path)
	}))
	defer healthy.Close()

	valid := func(context.Context, string, string) bool { return true }
	proxies := proxy.NewSupplier(context.Background(), []string{limited.URL, healthy.URL}, "http://dynasty-scans.invalid/", valid)

	fetcher := New(testConfig(), proxies)
	target := "http://dynasty-scans.invalid/series/citrus.json"

	first, err := fetcher.Get(context.Background(), target)
	if err != nil {
		t.Fatalf("first Get returned error: %v", err)
	}
	if first.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 through the first proxy, got %d", first.StatusCode)
	}

	second, err := fetcher.Get(context.Background(), target)
	if err != nil {
		t.Fatalf("second Get returned error: %v", err)
	}
	if !second.OK() || string(second.Body) != `{"path":"/series/citrus.json"}` {
		t.Fatalf("expected success through the second proxy, got %d %s", second.StatusCode, second.Body)
	}

	if limitedHits.Load() != 1 || healthyHits.Load() != 1 {
		t.Fatalf("unexpected proxy hits: limited=%d healthy=%d", limitedHits.Load(), healthyHits.Load())
	}
}

func TestSingleProxyIsKeptOn429(t *testing.T) {
	var hits atomic.Int32
	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer limited.Close()

	valid := func(context.Context, string, string) bool { return true }
	proxies := proxy.NewSupplier(context.Background(), []string{limited.URL}, "http://dynasty-scans.invalid/", valid)

	fetcher := New(testConfig(), proxies)
	for range 2 {
		resp, err := fetcher.Get(context.Background(), "http://dynasty-scans.invalid/")
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", resp.StatusCode)
		}
	}
	if hits.Load() != 2 {
		t.Fatalf("expected both requests through the only proxy, got %d", hits.Load())
	}
}
