package client

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/sigidayo/sources/internal/cover"
	"github.com/sigidayo/sources/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const (
	searchEntrySelector     = ".chapter-list a.name"
	paginationCountSelector = "div.pagination a"
)

type searchPage struct {
	Entries    []domain.Manga
	TotalPages int
}

type searchParser struct {
	baseURL string
}

func newSearchParser(baseURL string) *searchParser {
	return &searchParser{
		baseURL: baseURL,
	}
}

func (p *searchParser) ParseSearchPage(html []byte) (*searchPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &searchPage{
		Entries:    p.extractEntries(doc),
		TotalPages: p.extractTotalPages(doc),
	}

	log.Debugf("Parsed search page with %d entries, %d total pages", len(page.Entries), page.TotalPages)
	return page, nil
}

// extractTotalPages takes the highest number among the pagination links.
// Pages without pagination are a single page.
func (p *searchParser) extractTotalPages(doc *goquery.Document) int {
	totalPages := 1
	doc.Find(paginationCountSelector).Each(func(_ int, a *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(a.Text())); err == nil && n > totalPages {
			totalPages = n
		}
	})
	return totalPages
}

func (p *searchParser) extractEntries(doc *goquery.Document) []domain.Manga {
	entries := make([]domain.Manga, 0)

	doc.Find(searchEntrySelector).Each(func(_ int, a *goquery.Selection) {
		href, exists := a.Attr("href")
		title := strings.TrimSpace(a.Text())
		if !exists || !strings.HasPrefix(href, "/") || len(href) < 2 || title == "" {
			return
		}

		entries = append(entries, domain.Manga{
			Key:   href[1:],
			Title: title,
			URL:   p.baseURL + href,
			Cover: cover.Placeholder(p.baseURL, href),
		})
	})

	return entries
}
