package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/sigidayo/sources/internal/fetch"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultMaxAttempts = 4
	DefaultBackoff     = time.Second
)

var (
	ErrRetriesExhausted = errors.New("too many request attempts")
	ErrDecode           = errors.New("failed to decode response")
)

// Sender submits a set of GET requests and waits for all of them.
type Sender interface {
	SendAll(ctx context.Context, urls []string) ([]fetch.Response, error)
}

type Options struct {
	MaxAttempts int
	Backoff     time.Duration

	// sleep is replaced in tests
	sleep func(ctx context.Context, d time.Duration) error
}

type unit struct {
	url      string
	response *fetch.Response
}

// Request fetches a fixed list of URLs as one all-or-nothing unit. Only
// non-200 responses are retried, and only the still-pending subset is
// resubmitted on each pass. A Request is single use.
type Request struct {
	sender  Sender
	opts    Options
	units   []unit
	pending []int
}

func New(sender Sender, urls []string, opts Options) *Request {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.sleep == nil {
		opts.sleep = sleepContext
	}

	units := make([]unit, len(urls))
	pending := make([]int, len(urls))
	for i, url := range urls {
		units[i] = unit{url: url}
		pending[i] = i
	}

	return &Request{
		sender:  sender,
		opts:    opts,
		units:   units,
		pending: pending,
	}
}

// GetJSONs runs the batch and decodes every body as T, in input order.
func GetJSONs[T any](ctx context.Context, r *Request) ([]T, error) {
	if err := r.send(ctx); err != nil {
		return nil, err
	}

	results := make([]T, len(r.units))
	for i, u := range r.units {
		if err := json.Unmarshal(u.response.Body, &results[i]); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecode, u.url, err)
		}
	}

	return results, nil
}

func (r *Request) send(ctx context.Context) error {
	for attempt := 1; !r.completed(); attempt++ {
		urls := make([]string, len(r.pending))
		for i, idx := range r.pending {
			urls[i] = r.units[idx].url
		}

		responses, err := r.sender.SendAll(ctx, urls)
		if err != nil {
			return fmt.Errorf("batch pass %d failed: %w", attempt, err)
		}
		if len(responses) != len(urls) {
			return fmt.Errorf("batch pass %d: sender returned %d responses for %d requests", attempt, len(responses), len(urls))
		}

		stillPending := r.pending[:0:0]
		for i, idx := range r.pending {
			resp := responses[i]
			if resp.StatusCode != http.StatusOK {
				log.Warnf("⚠️ Bad response for %s (index %d): status %d", r.units[idx].url, idx, resp.StatusCode)
				stillPending = append(stillPending, idx)
				continue
			}

			log.Debugf("Valid response for %s", r.units[idx].url)
			r.units[idx].response = &resp
		}
		r.pending = stillPending

		if r.completed() {
			break
		}

		if attempt >= r.opts.MaxAttempts {
			return fmt.Errorf("%w: %d of %d requests still failing after %d attempts",
				ErrRetriesExhausted, len(r.pending), len(r.units), attempt)
		}

		log.Infof("🔄 Retrying %d of %d requests (attempt %d/%d)",
			len(r.pending), len(r.units), attempt+1, r.opts.MaxAttempts)

		if err := r.opts.sleep(ctx, r.opts.Backoff); err != nil {
			return fmt.Errorf("batch cancelled: %w", err)
		}
	}

	log.Debugf("Successfully sent all %d requests", len(r.units))
	return nil
}

func (r *Request) completed() bool {
	return !slices.ContainsFunc(r.units, func(u unit) bool { return u.response == nil })
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
