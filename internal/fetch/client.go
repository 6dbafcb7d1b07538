package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sigidayo/sources/internal/config"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

var (
	// ErrTransport marks network or connection failures. These are never retried.
	ErrTransport = errors.New("transport error")
	// ErrHTTPStatus marks a completed request whose status was not 200.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Response is a fully read HTTP response.
type Response struct {
	URL        string
	StatusCode int
	Body       []byte
}

func (r Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Fetcher issues GET requests, singly or as a batch.
type Fetcher interface {
	Get(ctx context.Context, url string) (Response, error)
	SendAll(ctx context.Context, urls []string) ([]Response, error)
}

// ProxySupplier hands out proxy URLs in rotation.
type ProxySupplier interface {
	Get() string
	Len() int
}

type client struct {
	cfg        config.DynastyConfig
	rl         ratelimit.Limiter
	maxWorkers int

	proxies ProxySupplier
	mutex   sync.RWMutex
	proxy   string
	current *resty.Client
	clients map[string]*resty.Client
}

// New builds a Fetcher whose outbound traffic is limited to
// cfg.MaxRequestsPerSecond requests per cfg.RateLimitPer. When proxies is
// non-nil the first proxy is used, and a 429 response moves all later
// requests to the next one.
func New(cfg config.DynastyConfig, proxies ProxySupplier) Fetcher {
	per := cfg.RateLimitPer
	if per <= 0 {
		per = time.Second
	}

	c := &client{
		cfg:        cfg,
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond, ratelimit.Per(per)),
		maxWorkers: max(1, cfg.MaxWorkers),
		proxies:    proxies,
		clients:    make(map[string]*resty.Client),
	}

	var initial string
	if proxies != nil {
		initial = proxies.Get()
	}
	c.useLocked(initial)

	return c
}

func (c *client) newHTTPClient(proxyURL string) *resty.Client {
	httpClient := resty.New().
		SetTimeout(c.cfg.Timeout).
		SetRetryCount(0).
		SetLogger(log.StandardLogger()).
		SetHeader("User-Agent", c.cfg.UserAgent).
		SetHeader("Accept", "text/html,application/json;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.5")

	if proxyURL != "" {
		httpClient.SetProxy(proxyURL)
	}

	return httpClient
}

// useLocked points outbound traffic at proxyURL, one resty client per proxy.
// Callers hold c.mutex for writing, except during construction.
func (c *client) useLocked(proxyURL string) {
	httpClient, ok := c.clients[proxyURL]
	if !ok {
		httpClient = c.newHTTPClient(proxyURL)
		c.clients[proxyURL] = httpClient
	}
	if proxyURL != "" {
		log.Infof("🔗 Using proxy: %s", proxyURL)
	}

	c.proxy = proxyURL
	c.current = httpClient
}

func (c *client) active() (string, *resty.Client) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.proxy, c.current
}

// rotateFrom switches to the next proxy after used was rate limited. Requests
// of the same pass that were also limited through used rotate only once.
func (c *client) rotateFrom(used string) {
	if c.proxies == nil || c.proxies.Len() < 2 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.proxy != used {
		return
	}

	next := c.proxies.Get()
	if next == "" || next == used {
		return
	}

	log.Warnf("🚫 Rate limited through proxy %s, switching to %s", used, next)
	c.useLocked(next)
}

func (c *client) Get(ctx context.Context, url string) (Response, error) {
	c.rl.Take()

	proxyURL, httpClient := c.active()

	resp, err := httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, fmt.Errorf("%w: request cancelled: %w", ErrTransport, ctx.Err())
		}
		return Response{}, fmt.Errorf("%w: failed to fetch %s: %w", ErrTransport, url, err)
	}

	log.Debugf("GET %s -> %d (%s)", url, resp.StatusCode(), resp.Duration().Round(time.Millisecond))

	if resp.StatusCode() == http.StatusTooManyRequests {
		c.rotateFrom(proxyURL)
	}

	return Response{
		URL:        url,
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
	}, nil
}

// SendAll fetches every URL concurrently and returns once all of them have
// completed. Responses are in input order. Any transport error fails the
// whole call, but sibling requests are still allowed to finish.
func (c *client) SendAll(ctx context.Context, urls []string) ([]Response, error) {
	responses := make([]Response, len(urls))

	g := new(errgroup.Group)
	g.SetLimit(c.maxWorkers)

	for i, url := range urls {
		g.Go(func() error {
			resp, err := c.Get(ctx, url)
			if err != nil {
				return err
			}
			responses[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return responses, nil
}

// Expect200 turns a non-200 response into an ErrHTTPStatus error.
func Expect200(resp Response) error {
	if resp.OK() {
		return nil
	}
	return fmt.Errorf("%w: %d for %s", ErrHTTPStatus, resp.StatusCode, resp.URL)
}
