package container

import (
	"context"
	"fmt"
	"strings"

	"github.com/sigidayo/sources/internal/client"
	"github.com/sigidayo/sources/internal/config"
	"github.com/sigidayo/sources/internal/fetch"
	"github.com/sigidayo/sources/internal/proxy"

	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Proxies proxy.Supplier
	Fetcher fetch.Fetcher
	Client  client.DynastyClient
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	if err := ConfigureLogging(cfg.Log); err != nil {
		return nil, err
	}

	proxies := proxy.NewSupplier(ctx, cfg.Dynasty.Proxies, cfg.Dynasty.BaseURL, nil)
	if len(cfg.Dynasty.Proxies) > 0 && proxies.Len() == 0 {
		return nil, fmt.Errorf("none of the %d configured proxies is working", len(cfg.Dynasty.Proxies))
	}

	fetcher := fetch.New(cfg.Dynasty, proxies)

	log.Debugf("Rate limit: %d requests per %s", cfg.Dynasty.MaxRequestsPerSecond, cfg.Dynasty.RateLimitPer)

	return &Container{
		Config:  cfg,
		Proxies: proxies,
		Fetcher: fetcher,
		Client:  client.NewDynastyClient(cfg.Dynasty, fetcher),
	}, nil
}

// ConfigureLogging applies the log level and format to the standard logrus logger
func ConfigureLogging(cfg config.LogConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return nil
}
