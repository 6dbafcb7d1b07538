package container

import (
	"context"
	"testing"
	"time"

	"github.com/sigidayo/sources/internal/config"

	log "github.com/sirupsen/logrus"
)

func TestNewWiresClient(t *testing.T) {
	cfg := &config.Config{
		Dynasty: config.DynastyConfig{
			BaseURL:              "https://dynasty-scans.com",
			Timeout:              time.Second,
			MaxAttempts:          4,
			MaxWorkers:           2,
			MaxRequestsPerSecond: 5,
			RateLimitPer:         time.Second,
		},
		Log: config.LogConfig{Level: "warn", Format: "json"},
	}

	c, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.Client == nil || c.Fetcher == nil || c.Proxies == nil {
		t.Fatalf("expected all components to be wired: %+v", c)
	}
	if log.GetLevel() != log.WarnLevel {
		t.Fatalf("expected warn level, got %s", log.GetLevel())
	}

	home, err := c.Client.GetHome(context.Background())
	if err != nil || len(home.Components) != 2 {
		t.Fatalf("unexpected home: %+v, %v", home, err)
	}
}

func TestConfigureLoggingRejectsInvalid(t *testing.T) {
	if err := ConfigureLogging(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatalf("expected error for invalid level")
	}
	if err := ConfigureLogging(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}
