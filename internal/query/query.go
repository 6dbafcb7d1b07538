package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sigidayo/sources/internal/domain"
)

const (
	SortFilterID = "Sort"
	TagFilterID  = "Tag"
)

type SortingOption int

const (
	SortAlphabetical SortingOption = iota
	SortBestMatch
	SortDateAdded
	SortReleaseDate
)

// DefaultSort is used when no sort filter is supplied.
const DefaultSort = SortReleaseDate

// ParseSortingOption maps the host's sort index onto a SortingOption.
func ParseSortingOption(index int) (SortingOption, error) {
	switch SortingOption(index) {
	case SortAlphabetical, SortBestMatch, SortDateAdded, SortReleaseDate:
		return SortingOption(index), nil
	default:
		return 0, fmt.Errorf("%w: sort index %d", domain.ErrUnsupportedFilter, index)
	}
}

// Value returns the "sort" query value. Best match has none and ok is false.
func (s SortingOption) Value() (value string, ok bool) {
	switch s {
	case SortAlphabetical:
		return "name", true
	case SortDateAdded:
		return "created_at", true
	case SortReleaseDate:
		return "released_on", true
	default:
		return "", false
	}
}

func (s SortingOption) String() string {
	switch s {
	case SortAlphabetical:
		return "Alphabetical"
	case SortBestMatch:
		return "Best Match"
	case SortDateAdded:
		return "Date Added"
	case SortReleaseDate:
		return "Release Date"
	default:
		return "Unknown"
	}
}

// SortOptions lists the sort options in index order.
var SortOptions = []SortingOption{SortAlphabetical, SortBestMatch, SortDateAdded, SortReleaseDate}

// SearchFilters describes the sort and tag filters accepted by BuildSearch.
func SearchFilters() []domain.Filter {
	labels := make([]string, len(SortOptions))
	for i, sort := range SortOptions {
		labels[i] = sort.String()
	}

	return []domain.Filter{
		{
			ID:           SortFilterID,
			Title:        "Sort",
			Kind:         domain.FilterKindSort,
			Options:      labels,
			DefaultIndex: int(DefaultSort),
		},
		{
			ID:    TagFilterID,
			Title: "Tags",
			Kind:  domain.FilterKindMultiSelect,
		},
	}
}

type param struct {
	key   string
	value string
}

// Parameters is an insertion-ordered query string. Unlike url.Values it keeps
// repeated keys such as "with[]" in the order they were pushed.
type Parameters struct {
	params []param
}

// Push appends key=value; empty values are skipped.
func (p *Parameters) Push(key, value string) {
	if value == "" {
		return
	}
	p.params = append(p.params, param{key: key, value: value})
}

// Get returns every value for key in insertion order.
func (p *Parameters) Get(key string) []string {
	var values []string
	for _, prm := range p.params {
		if prm.key == key {
			values = append(values, prm.value)
		}
	}
	return values
}

func (p *Parameters) Has(key string) bool {
	return len(p.Get(key)) > 0
}

func (p *Parameters) Keys() []string {
	keys := make([]string, len(p.params))
	for i, prm := range p.params {
		keys[i] = prm.key
	}
	return keys
}

func (p *Parameters) Len() int {
	return len(p.params)
}

// Encode renders the parameters as a query string. Keys are kept verbatim so
// that "with[]" stays readable; values are escaped.
func (p *Parameters) Encode() string {
	var sb strings.Builder
	for i, prm := range p.params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(prm.key)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(prm.value))
	}
	return sb.String()
}

func (p *Parameters) String() string {
	return p.Encode()
}

// SearchRequest is a search as issued by the host.
type SearchRequest struct {
	Query   string
	Page    int
	Filters []domain.FilterValue
	Classes []string
}

type searchOptions struct {
	sort     SortingOption
	included []string
	excluded []string
}

func parseFilters(filters []domain.FilterValue) (searchOptions, error) {
	opts := searchOptions{sort: DefaultSort}

	for _, filter := range filters {
		switch f := filter.(type) {
		case domain.SortFilter:
			if f.ID != SortFilterID {
				return opts, fmt.Errorf("%w: sort filter %q", domain.ErrUnsupportedFilter, f.ID)
			}
			sort, err := ParseSortingOption(f.Index)
			if err != nil {
				return opts, err
			}
			opts.sort = sort
		case domain.MultiSelectFilter:
			if f.ID != TagFilterID {
				return opts, fmt.Errorf("%w: multi-select filter %q", domain.ErrUnsupportedFilter, f.ID)
			}
			opts.included = append(opts.included, f.Included...)
			opts.excluded = append(opts.excluded, f.Excluded...)
		default:
			return opts, fmt.Errorf("%w: %T %q", domain.ErrUnsupportedFilter, filter, filter.FilterID())
		}
	}

	return opts, nil
}

// BuildSearch translates a search request into the site's query dialect:
// page, q, classes[], with[], without[], sort.
func BuildSearch(req SearchRequest) (*Parameters, error) {
	opts, err := parseFilters(req.Filters)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	params := &Parameters{}
	params.Push("page", strconv.Itoa(page))
	params.Push("q", strings.TrimSpace(req.Query))
	for _, class := range req.Classes {
		params.Push("classes[]", class)
	}
	for _, tag := range opts.included {
		params.Push("with[]", tag)
	}
	for _, tag := range opts.excluded {
		params.Push("without[]", tag)
	}
	if value, ok := opts.sort.Value(); ok {
		params.Push("sort", value)
	}

	return params, nil
}
