package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

type MangaType string

func (t MangaType) String() string {
	return string(t)
}

const (
	MangaTypeAnthology MangaType = "Anthology"
	MangaTypeDoujin    MangaType = "Doujin"
	MangaTypeSeries    MangaType = "Series"
)

var MangaTypes = []MangaType{
	MangaTypeAnthology,
	MangaTypeDoujin,
	MangaTypeSeries,
}

// PathSegment returns the lowercase form used in site URLs, e.g. "series".
func (t MangaType) PathSegment() string {
	return strings.ToLower(string(t))
}

func (t *MangaType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for _, known := range MangaTypes {
		if raw == string(known) {
			*t = known
			return nil
		}
	}

	return fmt.Errorf("unknown manga type %q", raw)
}

// ParseMangaTypePath maps a URL path segment back to its MangaType.
func ParseMangaTypePath(segment string) (MangaType, bool) {
	for _, known := range MangaTypes {
		if known.PathSegment() == segment {
			return known, true
		}
	}
	return "", false
}

type PublishingStatus int

const (
	StatusUnknown PublishingStatus = iota
	StatusOngoing
	StatusCompleted
	StatusCancelled
	StatusHiatus
)

func (s PublishingStatus) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	case StatusHiatus:
		return "hiatus"
	default:
		return "unknown"
	}
}

func (s PublishingStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ContentRating int

const (
	ContentRatingUnknown ContentRating = iota
	ContentRatingSafe
	ContentRatingSuggestive
	ContentRatingNSFW
)

func (r ContentRating) String() string {
	switch r {
	case ContentRatingSafe:
		return "safe"
	case ContentRatingSuggestive:
		return "suggestive"
	case ContentRatingNSFW:
		return "nsfw"
	default:
		return "unknown"
	}
}

func (r ContentRating) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
