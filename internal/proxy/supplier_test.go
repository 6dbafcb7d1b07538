package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSupplierRoundRobinKeepsWorkingProxies(t *testing.T) {
	check := func(_ context.Context, proxyURL, _ string) bool {
		return !strings.Contains(proxyURL, "dead")
	}

	s := NewSupplier(context.Background(), []string{
		"http://a:8080", "http://dead:8080", "http://b:8080", "http://c:8080",
	}, "https://dynasty-scans.com", check)

	if s.Len() != 3 {
		t.Fatalf("expected 3 working proxies, got %d", s.Len())
	}

	want := []string{"http://a:8080", "http://b:8080", "http://c:8080", "http://a:8080"}
	for i, w := range want {
		if got := s.Get(); got != w {
			t.Fatalf("Get #%d = %s, want %s", i, got, w)
		}
	}
}

func TestSupplierEmpty(t *testing.T) {
	s := NewSupplier(context.Background(), nil, "https://dynasty-scans.com", nil)
	if s.Get() != "" || s.Len() != 0 {
		t.Fatalf("expected empty supplier")
	}
}

func TestIsProxyValid(t *testing.T) {
	// A plain HTTP server also answers absolute-form proxy requests.
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer proxy.Close()

	if !isProxyValid(context.Background(), proxy.URL, "http://dynasty-scans.invalid/") {
		t.Fatalf("expected proxy to be valid")
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer failing.Close()

	if isProxyValid(context.Background(), failing.URL, "http://dynasty-scans.invalid/") {
		t.Fatalf("expected proxy returning 403 to be invalid")
	}
}
