package domain

import (
	"net/url"
	"strings"
)

type RecipeLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RecipeLinks is the reply of GET /recipes for one video.
type RecipeLinks struct {
	VideoID string       `json:"video_id"`
	Query   string       `json:"query"`
	Links   []RecipeLink `json:"links"`
}

type RecipeKind int

const (
	RecipeKindRead RecipeKind = iota
	RecipeKindWatch
)

// Kind classifies a link as something to read or something to watch,
// from the URL host first and the title prefix as a fallback.
func (l RecipeLink) Kind() RecipeKind {
	if u, err := url.Parse(l.URL); err == nil {
		host := strings.ToLower(u.Hostname())
		if strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be") {
			return RecipeKindWatch
		}
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(l.Title)), "watch:") {
		return RecipeKindWatch
	}
	return RecipeKindRead
}

// DisplayTitle strips the "read:"/"watch:" routing prefix some backends
// put in front of the title.
func (l RecipeLink) DisplayTitle() string {
	t := strings.TrimSpace(l.Title)
	lower := strings.ToLower(t)
	switch {
	case strings.HasPrefix(lower, "read:"):
		return strings.TrimSpace(t[len("read:"):])
	case strings.HasPrefix(lower, "watch:"):
		return strings.TrimSpace(t[len("watch:"):])
	}
	return t
}
