package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", StripHTML("plain text"))
	assert.Equal(t, "bold claim", StripHTML("<strong>bold</strong> claim"))
	assert.Equal(t, "nested", StripHTML("<div><p><em>nested</em></p></div>"))
	assert.Equal(t, "", StripHTML("<script>alert(1)</script>"))
	assert.Equal(t, "trimmed", StripHTML("  <b>trimmed</b>  "))
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		{Title: "First", URL: "https://a.example.com", Content: "<b>alpha</b> snippet"},
		{Title: "Second", URL: "https://b.example.com", Content: "beta snippet"},
	}

	formatted := FormatResults(results)
	assert.Contains(t, formatted, "1. Title: First")
	assert.Contains(t, formatted, "URL: https://a.example.com")
	assert.Contains(t, formatted, "Content: alpha snippet")
	assert.Contains(t, formatted, "2. Title: Second")
	assert.NotContains(t, formatted, "<b>")
}

func TestFormatResultsEmpty(t *testing.T) {
	assert.Equal(t, "No results found", FormatResults(nil))
	assert.Equal(t, "No results found", FormatResults([]Result{}))
}
