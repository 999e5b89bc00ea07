package model

import "fmt"

// PlaceholderImage is shown in place of a cover when an entry has no images.
const PlaceholderImage = "/placeholder.svg?height=200&width=150"

// Title holds the localized titles of an entry.
type Title struct {
	Romaji    string  `json:"romaji"`
	English   *string `json:"english"` // nil = no english title
	Native    string  `json:"native"`
	Preferred string  `json:"userPreferred"`
}

// Entry is a single catalog item.
type Entry struct {
	ID     int      `json:"id"`
	Title  Title    `json:"title"`
	Images []string `json:"images"`
}

// HasImages reports whether the entry carries at least one image reference.
func (e Entry) HasImages() bool {
	return len(e.Images) > 0
}

// Cover returns the first image reference, or PlaceholderImage when there is none.
func (e Entry) Cover() string {
	if len(e.Images) == 0 {
		return PlaceholderImage
	}
	return e.Images[0]
}

// DisplayTitle returns the title shown on cards and lists.
func (e Entry) DisplayTitle() string {
	return e.Title.Preferred
}

// Subtitle returns the english title when it exists and differs from the
// preferred one. Otherwise it returns "".
func (e Entry) Subtitle() string {
	if e.Title.English == nil || *e.Title.English == e.Title.Preferred {
		return ""
	}
	return *e.Title.English
}

// SearchableTitles returns every title field a query is matched against.
func (e Entry) SearchableTitles() []string {
	titles := []string{e.Title.Romaji, e.Title.Native, e.Title.Preferred}
	if e.Title.English != nil {
		titles = append(titles, *e.Title.English)
	}
	return titles
}

// ImageAlt returns the alt text for the image at index i (0-based).
func (e Entry) ImageAlt(i int) string {
	return fmt.Sprintf("%s - Image %d", e.Title.Preferred, i+1)
}

// StringPtr returns a pointer to s. Handy for optional english titles.
func StringPtr(s string) *string {
	return &s
}
