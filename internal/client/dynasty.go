package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/sigidayo/sources/internal/batch"
	"github.com/sigidayo/sources/internal/config"
	"github.com/sigidayo/sources/internal/cover"
	"github.com/sigidayo/sources/internal/domain"
	"github.com/sigidayo/sources/internal/fetch"
	"github.com/sigidayo/sources/internal/query"

	log "github.com/sirupsen/logrus"
)

type DynastyClient interface {
	GetSearchFilters(ctx context.Context) ([]domain.Filter, error)
	GetSearchMangaList(ctx context.Context, search string, page int, filters []domain.FilterValue) (*domain.MangaPageResult, error)
	ResolveDetails(ctx context.Context, page *domain.MangaPageResult) (*domain.MangaPageResult, error)
	GetMangaDetails(ctx context.Context, keys []string) ([]domain.Manga, error)
	GetMangaUpdate(ctx context.Context, manga domain.Manga, needsDetails, needsChapters bool) (domain.Manga, error)
	GetPageList(ctx context.Context, manga domain.Manga, chapter domain.Chapter) ([]domain.Page, error)
	GetMangaList(ctx context.Context, listing domain.Listing, page int) (*domain.MangaPageResult, error)
	GetImageRequest(ctx context.Context, imageURL string) (*domain.ImageRequest, error)
	HandleDeepLink(rawURL string) (*domain.DeepLinkResult, error)
	GetHome(ctx context.Context) (*domain.HomeLayout, error)
}

type dynastyClient struct {
	config   config.DynastyConfig
	baseURL  string
	fetcher  fetch.Fetcher
	parser   *searchParser
	resolver *cover.Resolver
}

func NewDynastyClient(cfg config.DynastyConfig, fetcher fetch.Fetcher) DynastyClient {
	return &dynastyClient{
		config:   cfg,
		baseURL:  cfg.BaseURL,
		fetcher:  fetcher,
		parser:   newSearchParser(cfg.BaseURL),
		resolver: cover.NewResolver(cfg.BaseURL, fetcher),
	}
}

// GetSearchFilters describes the filters GetSearchMangaList accepts.
func (c *dynastyClient) GetSearchFilters(_ context.Context) ([]domain.Filter, error) {
	return query.SearchFilters(), nil
}

func (c *dynastyClient) GetSearchMangaList(ctx context.Context, search string, page int, filters []domain.FilterValue) (*domain.MangaPageResult, error) {
	log.Debugf("Search query=%q page=%d filters=%+v", search, page, filters)

	params, err := query.BuildSearch(query.SearchRequest{
		Query:   search,
		Page:    page,
		Filters: filters,
		Classes: c.config.Classes,
	})
	if err != nil {
		log.Errorf("❌ Rejected search filters: %v", err)
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())
	resp, err := c.fetcher.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch search page: %w", err)
	}
	if err := fetch.Expect200(resp); err != nil {
		return nil, fmt.Errorf("failed to fetch search page: %w", err)
	}

	parsed, err := c.parser.ParseSearchPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search page: %w", err)
	}

	log.Infof("🔎 Search %q page %d: %d entries, %d pages", search, max(page, 1), len(parsed.Entries), parsed.TotalPages)

	return &domain.MangaPageResult{
		Entries:     parsed.Entries,
		HasNextPage: max(page, 1) < parsed.TotalPages,
	}, nil
}

// ResolveDetails is the second phase of a search: it batch-fetches the detail
// record of every entry and replaces the deferred covers with real ones.
func (c *dynastyClient) ResolveDetails(ctx context.Context, page *domain.MangaPageResult) (*domain.MangaPageResult, error) {
	if page == nil {
		return &domain.MangaPageResult{Entries: []domain.Manga{}}, nil
	}

	keys := make([]string, len(page.Entries))
	for i, entry := range page.Entries {
		keys[i] = entry.Key
	}

	details, err := c.GetMangaDetails(ctx, keys)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.Manga, len(details))
	for i, manga := range details {
		manga.Key = page.Entries[i].Key
		manga.Chapters = nil
		entries[i] = manga
	}

	return &domain.MangaPageResult{
		Entries:     entries,
		HasNextPage: page.HasNextPage,
	}, nil
}

func (c *dynastyClient) GetMangaDetails(ctx context.Context, keys []string) ([]domain.Manga, error) {
	urls := make([]string, len(keys))
	for i, key := range keys {
		urls[i] = c.detailsURL(key)
	}

	req := batch.New(c.fetcher, urls, batch.Options{
		MaxAttempts: c.config.MaxAttempts,
		Backoff:     c.config.RetryBackoff,
	})

	records, err := batch.GetJSONs[domain.DynastyManga](ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manga details: %w", err)
	}

	mangas := make([]domain.Manga, len(records))
	for i, record := range records {
		mangas[i] = record.ToManga(c.baseURL)
	}

	log.Debugf("Fetched details for %d manga", len(mangas))
	return mangas, nil
}

func (c *dynastyClient) GetMangaUpdate(ctx context.Context, manga domain.Manga, needsDetails, needsChapters bool) (domain.Manga, error) {
	if !needsDetails && !needsChapters {
		return manga, nil
	}

	details, err := c.GetMangaDetails(ctx, []string{manga.Key})
	if err != nil {
		return manga, err
	}
	fresh := details[0]

	if needsDetails {
		manga.Title = fresh.Title
		manga.URL = fresh.URL
		manga.Cover = fresh.Cover
		manga.Description = fresh.Description
		manga.Tags = fresh.Tags
		manga.Authors = fresh.Authors
		manga.Artists = fresh.Artists
		manga.Status = fresh.Status
		manga.ContentRating = fresh.ContentRating
	}
	if needsChapters {
		manga.Chapters = fresh.Chapters
	}

	return manga, nil
}

func (c *dynastyClient) GetPageList(_ context.Context, manga domain.Manga, chapter domain.Chapter) ([]domain.Page, error) {
	return nil, fmt.Errorf("page list for %s/%s: %w", manga.Key, chapter.Key, domain.ErrUnimplemented)
}

func (c *dynastyClient) GetMangaList(_ context.Context, listing domain.Listing, _ int) (*domain.MangaPageResult, error) {
	return nil, fmt.Errorf("listing %q: %w", listing.ID, domain.ErrUnimplemented)
}

// GetImageRequest turns an image URL into a request the host can load,
// resolving deferred covers first.
func (c *dynastyClient) GetImageRequest(ctx context.Context, imageURL string) (*domain.ImageRequest, error) {
	resolved, err := c.resolver.Resolve(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	return &domain.ImageRequest{
		URL: resolved,
		Headers: map[string]string{
			"Referer": c.baseURL + "/",
		},
	}, nil
}

// HandleDeepLink maps site URLs onto manga or chapter keys. URLs for other
// hosts or unknown sections yield nil without error.
func (c *dynastyClient) HandleDeepLink(rawURL string) (*domain.DeepLinkResult, error) {
	link, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid deep link %q: %w", rawURL, err)
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", c.baseURL, err)
	}

	if !strings.EqualFold(strings.TrimPrefix(link.Host, "www."), strings.TrimPrefix(base.Host, "www.")) {
		return nil, nil
	}

	segments := strings.Split(strings.Trim(link.Path, "/"), "/")
	if len(segments) != 2 || segments[1] == "" {
		return nil, nil
	}
	section, slug := segments[0], strings.TrimSuffix(segments[1], ".json")

	if section == "chapters" {
		return &domain.DeepLinkResult{ChapterKey: slug}, nil
	}
	if mangaType, ok := domain.ParseMangaTypePath(section); ok {
		return &domain.DeepLinkResult{MangaKey: mangaType.PathSegment() + "/" + slug}, nil
	}

	return nil, nil
}

func (c *dynastyClient) GetHome(_ context.Context) (*domain.HomeLayout, error) {
	return &domain.HomeLayout{
		Components: []domain.HomeComponent{
			{
				Title: "Popular New Titles",
				Kind:  domain.HomeComponentBigScroller,
			},
			{
				Title: "Latest Updates",
				Kind:  domain.HomeComponentMangaChapterList,
			},
		},
	}, nil
}

func (c *dynastyClient) detailsURL(key string) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, strings.TrimPrefix(key, "/"))
}
