package domain

type HomeComponentKind string

const (
	HomeComponentBigScroller      HomeComponentKind = "big_scroller"
	HomeComponentMangaChapterList HomeComponentKind = "manga_chapter_list"
)

type HomeComponent struct {
	Title    string            `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle string            `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Kind     HomeComponentKind `json:"kind" yaml:"kind"`
}

type HomeLayout struct {
	Components []HomeComponent `json:"components" yaml:"components"`
}
