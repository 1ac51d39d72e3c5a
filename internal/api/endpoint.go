package api

import (
	"net/http"
	"net/url"
)

// Endpoint describes one backend route: resolved path, method and query
// parameters. The client joins it onto the configured base address.
type Endpoint struct {
	Path   string
	Method string
	Query  url.Values
}

func Feed() Endpoint {
	return Endpoint{Path: "/feed", Method: http.MethodGet}
}

func OrderOptions(videoID, title string) Endpoint {
	q := url.Values{}
	q.Set("video_id", videoID)
	if title != "" {
		q.Set("title", title)
	}
	return Endpoint{Path: "/order/options", Method: http.MethodGet, Query: q}
}

func CreateOrder() Endpoint {
	return Endpoint{Path: "/orders", Method: http.MethodPost}
}

func LLMText() Endpoint {
	return Endpoint{Path: "/llm/text", Method: http.MethodPost}
}

func LLMVoice() Endpoint {
	return Endpoint{Path: "/llm/voice", Method: http.MethodPost}
}

func Recipes(videoID, title, description string) Endpoint {
	q := url.Values{}
	q.Set("video_id", videoID)
	if title != "" {
		q.Set("title", title)
	}
	if description != "" {
		q.Set("description", description)
	}
	return Endpoint{Path: "/recipes", Method: http.MethodGet, Query: q}
}

func Profile() Endpoint {
	return Endpoint{Path: "/profile", Method: http.MethodGet}
}

func OrderHistory() Endpoint {
	return Endpoint{Path: "/orders/history", Method: http.MethodGet}
}

func Recommend() Endpoint {
	return Endpoint{Path: "/recommend", Method: http.MethodPost}
}

func Confirm() Endpoint {
	return Endpoint{Path: "/confirm", Method: http.MethodPost}
}
