package cover

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sigidayo/sources/internal/domain"
	"github.com/sigidayo/sources/internal/fetch"

	log "github.com/sirupsen/logrus"
)

// DeferredFlag marks a cover URL that still points at the manga page rather
// than the image. Search results carry it so the host can show the list
// before any detail request is made.
const DeferredFlag = "?dsCover"

// Placeholder builds the deferred cover URL for a manga href such as "/series/citrus".
func Placeholder(baseURL, href string) string {
	return baseURL + href + DeferredFlag
}

func IsDeferred(url string) bool {
	return strings.Contains(url, DeferredFlag)
}

type Resolver struct {
	baseURL string
	fetcher fetch.Fetcher
}

func NewResolver(baseURL string, fetcher fetch.Fetcher) *Resolver {
	return &Resolver{
		baseURL: baseURL,
		fetcher: fetcher,
	}
}

// Resolve returns the real image URL for a deferred placeholder. Any other
// URL is returned as is.
func (r *Resolver) Resolve(ctx context.Context, url string) (string, error) {
	if !IsDeferred(url) {
		return url, nil
	}

	prefix, _, _ := strings.Cut(url, DeferredFlag)
	detailsURL := prefix + ".json"
	log.Debugf("Resolving deferred cover via %s", detailsURL)

	resp, err := r.fetcher.Get(ctx, detailsURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch cover details: %w", err)
	}
	if err := fetch.Expect200(resp); err != nil {
		return "", fmt.Errorf("failed to fetch cover details: %w", err)
	}

	var details domain.DynastyManga
	if err := json.Unmarshal(resp.Body, &details); err != nil {
		return "", fmt.Errorf("failed to decode cover details for %s: %w", detailsURL, err)
	}

	if details.CoverURL == nil || *details.CoverURL == "" {
		return "", fmt.Errorf("%w: missing cover image for %s", domain.ErrMissingField, details.Permalink)
	}

	return r.baseURL + *details.CoverURL, nil
}
