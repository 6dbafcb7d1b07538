package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDynastyMangaToManga(t *testing.T) {
	payload := []byte(`{
  "name": "Citrus",
  "type": "Series",
  "permalink": "citrus",
  "cover": "/system/tag_contents_covers/000/001/citrus.jpg",
  "description": "Yuzu transfers to a new school.",
  "tags": [
    {"type": "General", "name": "Yuri", "permalink": "yuri"},
    {"type": "General", "name": "School Life", "permalink": "school_life"},
    {"type": "Author", "name": "Saburouta", "permalink": "saburouta"},
    {"type": "Status", "name": "Completed", "permalink": "completed"}
  ],
  "taggings": [
    {"header": "Volume 1"},
    {"title": "Chapter 1", "permalink": "citrus_ch01", "released_on": "2013-05-04"},
    {"title": "Chapter 2", "permalink": "citrus_ch02", "released_on": "not a date"}
  ]
}`)

	var record DynastyManga
	if err := json.Unmarshal(payload, &record); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	manga := record.ToManga("https://dynasty-scans.com")

	if manga.Key != "series/citrus" {
		t.Fatalf("unexpected key: %s", manga.Key)
	}
	if manga.URL != "https://dynasty-scans.com/series/citrus" {
		t.Fatalf("unexpected url: %s", manga.URL)
	}
	if manga.Cover != "https://dynasty-scans.com/system/tag_contents_covers/000/001/citrus.jpg" {
		t.Fatalf("unexpected cover: %s", manga.Cover)
	}
	if manga.Description != "Yuzu transfers to a new school." {
		t.Fatalf("unexpected description: %s", manga.Description)
	}
	if len(manga.Tags) != 2 || manga.Tags[0] != "Yuri" || manga.Tags[1] != "School Life" {
		t.Fatalf("unexpected tags: %+v", manga.Tags)
	}
	if len(manga.Authors) != 1 || manga.Authors[0] != "Saburouta" {
		t.Fatalf("unexpected authors: %+v", manga.Authors)
	}
	if manga.Status != StatusCompleted {
		t.Fatalf("unexpected status: %s", manga.Status)
	}
	if len(manga.Chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(manga.Chapters))
	}
	if manga.Chapters[0].URL != "https://dynasty-scans.com/chapters/citrus_ch01" {
		t.Fatalf("unexpected chapter url: %s", manga.Chapters[0].URL)
	}
	if !manga.Chapters[0].DateUploaded.Equal(time.Date(2013, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected chapter date: %v", manga.Chapters[0].DateUploaded)
	}
	if !manga.Chapters[1].DateUploaded.IsZero() {
		t.Fatalf("expected zero date for unparsable release, got %v", manga.Chapters[1].DateUploaded)
	}
}

func TestDynastyMangaOptionalFields(t *testing.T) {
	var record DynastyManga
	if err := json.Unmarshal([]byte(`{"name":"Kase-san","type":"Doujin","permalink":"kase_san","cover":null}`), &record); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	manga := record.ToManga("https://dynasty-scans.com")
	if manga.Cover != "" || manga.Description != "" {
		t.Fatalf("expected empty cover and description, got %+v", manga)
	}
	if manga.Key != "doujin/kase_san" {
		t.Fatalf("unexpected key: %s", manga.Key)
	}
	if manga.Status != StatusUnknown {
		t.Fatalf("unexpected status: %s", manga.Status)
	}
}

func TestMangaTypeRejectsUnknown(t *testing.T) {
	var record DynastyManga
	err := json.Unmarshal([]byte(`{"name":"x","type":"Issue","permalink":"x"}`), &record)
	if err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestParseMangaTypePath(t *testing.T) {
	tests := []struct {
		segment string
		want    MangaType
		ok      bool
	}{
		{"series", MangaTypeSeries, true},
		{"anthology", MangaTypeAnthology, true},
		{"doujin", MangaTypeDoujin, true},
		{"chapters", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseMangaTypePath(tt.segment)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseMangaTypePath(%q) = %q, %v; want %q, %v", tt.segment, got, ok, tt.want, tt.ok)
		}
	}
}
