package domain

import (
	"fmt"
	"strings"
	"time"
)

const releaseDateLayout = "2006-01-02"

// DynastyManga is the JSON record served at "<base>/<type>/<permalink>.json".
type DynastyManga struct {
	Name        string           `json:"name"`
	Permalink   string           `json:"permalink"`
	Type        MangaType        `json:"type"`
	CoverURL    *string          `json:"cover"`
	Description *string          `json:"description"`
	Tags        []DynastyTag     `json:"tags,omitempty"`
	Taggings    []DynastyTagging `json:"taggings,omitempty"`
}

// DynastyTag is a classification attached to a manga: "General", "Author", "Status", ...
type DynastyTag struct {
	Type      string `json:"type"`
	Name      string `json:"name"`
	Permalink string `json:"permalink"`
}

// DynastyTagging is one row of the chapter list. Section rows only carry Header.
type DynastyTagging struct {
	Title      string `json:"title,omitempty"`
	Permalink  string `json:"permalink,omitempty"`
	ReleasedOn string `json:"released_on,omitempty"`
	Header     string `json:"header,omitempty"`
}

// Path returns the site-relative path of the manga page, e.g. "series/citrus".
func (m DynastyManga) Path() string {
	return fmt.Sprintf("%s/%s", m.Type.PathSegment(), m.Permalink)
}

// ToManga maps the record onto the normalized catalog entry.
func (m DynastyManga) ToManga(baseURL string) Manga {
	manga := Manga{
		Key:   m.Path(),
		Title: m.Name,
		URL:   fmt.Sprintf("%s/%s", baseURL, m.Path()),
	}

	if m.CoverURL != nil && *m.CoverURL != "" {
		manga.Cover = baseURL + *m.CoverURL
	}
	if m.Description != nil {
		manga.Description = *m.Description
	}

	for _, tag := range m.Tags {
		switch tag.Type {
		case "General":
			manga.Tags = append(manga.Tags, tag.Name)
		case "Author":
			manga.Authors = append(manga.Authors, tag.Name)
			manga.Artists = append(manga.Artists, tag.Name)
		case "Status":
			manga.Status = parseStatus(tag.Name)
		}
	}

	manga.Chapters = m.chapters(baseURL)

	return manga
}

func (m DynastyManga) chapters(baseURL string) []Chapter {
	var chapters []Chapter
	for _, tagging := range m.Taggings {
		if tagging.Permalink == "" {
			continue
		}

		chapter := Chapter{
			Key:   tagging.Permalink,
			Title: tagging.Title,
			URL:   fmt.Sprintf("%s/chapters/%s", baseURL, tagging.Permalink),
		}
		if released, err := time.Parse(releaseDateLayout, tagging.ReleasedOn); err == nil {
			chapter.DateUploaded = released
		}

		chapters = append(chapters, chapter)
	}
	return chapters
}

func parseStatus(name string) PublishingStatus {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ongoing":
		return StatusOngoing
	case "completed":
		return StatusCompleted
	case "cancelled", "canceled", "dropped":
		return StatusCancelled
	case "hiatus", "on hiatus":
		return StatusHiatus
	default:
		return StatusUnknown
	}
}
