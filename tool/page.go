package tool

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Page fetches a web page and extracts its readable text. The research
// worker uses it to expand the top search hit into full page content.
type Page struct {
	HTTPClient *http.Client
	MaxChars   int // Truncation limit for extracted text, default 4000.
}

// NewPage creates a page fetcher.
func NewPage() *Page {
	return &Page{
		HTTPClient: http.DefaultClient,
		MaxChars:   4000,
	}
}

// Fetch downloads a page and returns its text with scripts, styles and
// markup removed.
func (p *Page) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	text := squeezeWhitespace(doc.Find("body").Text())
	if p.MaxChars > 0 && len(text) > p.MaxChars {
		// Cut on a rune boundary.
		cut := p.MaxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}

// squeezeWhitespace collapses runs of whitespace into single spaces.
func squeezeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
