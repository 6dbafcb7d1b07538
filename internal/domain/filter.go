package domain

type FilterKind string

const (
	FilterKindSort        FilterKind = "sort"
	FilterKindMultiSelect FilterKind = "multi_select"
)

// Filter describes a filter the host renders in its search UI. Options are
// listed in index order; multi-select tag filters take free-form values.
type Filter struct {
	ID           string     `json:"id" yaml:"id"`
	Title        string     `json:"title" yaml:"title"`
	Kind         FilterKind `json:"kind" yaml:"kind"`
	Options      []string   `json:"options,omitempty" yaml:"options,omitempty"`
	DefaultIndex int        `json:"default_index,omitempty" yaml:"default_index,omitempty"`
}

// FilterValue is a single filter selection coming from the host's filter UI.
// Exactly one of the concrete types below implements it.
type FilterValue interface {
	FilterID() string
}

type SortFilter struct {
	ID        string
	Index     int
	Ascending bool
}

func (f SortFilter) FilterID() string { return f.ID }

type MultiSelectFilter struct {
	ID       string
	Included []string
	Excluded []string
}

func (f MultiSelectFilter) FilterID() string { return f.ID }

// TextFilter is accepted by the host protocol but not by this source.
type TextFilter struct {
	ID    string
	Value string
}

func (f TextFilter) FilterID() string { return f.ID }
