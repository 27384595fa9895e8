package tool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBraveRequiresAPIKey(t *testing.T) {
	_, err := NewBrave("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not set")
}

func TestNewBraveDefaults(t *testing.T) {
	b, err := NewBrave("key")
	require.NoError(t, err)
	assert.Equal(t, "brave", b.Name())
	assert.Equal(t, 10, b.Count)
	assert.Equal(t, "US", b.Country)
	assert.Equal(t, "en", b.Lang)
}

func TestBraveCountClamped(t *testing.T) {
	b, err := NewBrave("key", WithBraveCount(-5))
	require.NoError(t, err)
	assert.Equal(t, 1, b.Count)

	b, err = NewBrave("key", WithBraveCount(50))
	require.NoError(t, err)
	assert.Equal(t, 20, b.Count)
}

func TestBraveSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-Subscription-Token"))

		query := r.URL.Query()
		assert.Equal(t, "go generics", query.Get("q"))
		assert.Equal(t, "5", query.Get("count"))
		assert.Equal(t, "CN", query.Get("country"))
		assert.Equal(t, "zh", query.Get("search_lang"))

		json.NewEncoder(w).Encode(map[string]any{
			"web": map[string]any{
				"results": []map[string]any{
					{"title": "Type Parameters", "url": "https://go.dev/blog/intro-generics", "description": "an intro"},
				},
			},
		})
	}))
	defer server.Close()

	b, err := NewBrave("secret",
		WithBraveBaseURL(server.URL),
		WithBraveCount(5),
		WithBraveCountry("CN"),
		WithBraveLang("zh"),
		WithBraveHTTPClient(server.Client()),
	)
	require.NoError(t, err)

	results, err := b.Search(context.Background(), "go generics")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, Result{
		Title:   "Type Parameters",
		URL:     "https://go.dev/blog/intro-generics",
		Content: "an intro",
	}, results[0])
}

func TestBraveSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	b, err := NewBrave("key", WithBraveBaseURL(server.URL))
	require.NoError(t, err)

	_, err = b.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
