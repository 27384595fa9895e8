package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Result is one web search hit.
type Result struct {
	Title   string
	URL     string
	Content string
}

// Search is a web search backend. Results are consumed only as prompt input.
type Search interface {
	// Name returns the backend name.
	Name() string

	// Search runs a free-text query and returns the hits.
	Search(ctx context.Context, query string) ([]Result, error)
}

var stripPolicy = bluemonday.StrictPolicy()

// StripHTML removes all markup from a snippet. Search APIs return
// HTML-decorated content; prompts want plain text.
func StripHTML(s string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(s))
}

// FormatResults renders hits as a numbered plain-text block for prompts.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No results found"
	}

	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. Title: %s\nURL: %s\nContent: %s\n\n",
			i+1, r.Title, r.URL, StripHTML(r.Content)))
	}
	return sb.String()
}
