package domain

import "time"

// Manga is the normalized catalog entry handed to the host application.
type Manga struct {
	Key           string           `json:"key" yaml:"key"`
	Title         string           `json:"title" yaml:"title"`
	URL           string           `json:"url,omitempty" yaml:"url,omitempty"`
	Cover         string           `json:"cover,omitempty" yaml:"cover,omitempty"`
	Description   string           `json:"description,omitempty" yaml:"description,omitempty"`
	Tags          []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Artists       []string         `json:"artists,omitempty" yaml:"artists,omitempty"`
	Authors       []string         `json:"authors,omitempty" yaml:"authors,omitempty"`
	Status        PublishingStatus `json:"status" yaml:"status"`
	ContentRating ContentRating    `json:"content_rating" yaml:"content_rating"`
	Chapters      []Chapter        `json:"chapters,omitempty" yaml:"chapters,omitempty"`
}

type Chapter struct {
	Key          string    `json:"key" yaml:"key"`
	Title        string    `json:"title" yaml:"title"`
	URL          string    `json:"url" yaml:"url"`
	DateUploaded time.Time `json:"date_uploaded,omitzero" yaml:"date_uploaded,omitempty"`
}

// MangaPageResult is one page of search or listing results.
type MangaPageResult struct {
	Entries     []Manga `json:"entries" yaml:"entries"`
	HasNextPage bool    `json:"has_next_page" yaml:"has_next_page"`
}

type Listing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Page struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
}

// ImageRequest describes how the host should load an image.
type ImageRequest struct {
	URL     string            `json:"url" yaml:"url"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// DeepLinkResult points at either a manga or a chapter; the other key is empty.
type DeepLinkResult struct {
	MangaKey   string `json:"manga_key,omitempty" yaml:"manga_key,omitempty"`
	ChapterKey string `json:"chapter_key,omitempty" yaml:"chapter_key,omitempty"`
}
