package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newTestFetcher(baseURL string) *Fetcher {
	return NewFetcher("test-key", baseURL, rate.NewLimiter(rate.Inf, 1), zap.NewNop())
}

func articlesPayload(items []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{"articles": items}
}

func TestFetchArticlesDefaultsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(articlesPayload([]map[string]interface{}{
			{"title": "", "url": "", "description": ""},
			{"title": "Apple ships new chip", "url": "https://example.com/a", "description": "M-series update."},
		}))
	}))
	defer srv.Close()

	fetcher := newTestFetcher(srv.URL)
	articles, err := fetcher.FetchArticles(context.Background(), []string{"AAPL"})

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))

	assert.Equal(t, "No title", articles[0].Title)
	assert.Equal(t, "#", articles[0].URL)
	assert.Equal(t, "No description available", articles[0].Description)

	assert.Equal(t, "Apple ships new chip", articles[1].Title)
	assert.Equal(t, "https://example.com/a", articles[1].URL)
}

func TestFetchArticlesCapsPerSymbol(t *testing.T) {
	var items []map[string]interface{}
	for i := 0; i < 12; i++ {
		items = append(items, map[string]interface{}{
			"title":       "story",
			"url":         "https://example.com",
			"description": "detail",
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(articlesPayload(items))
	}))
	defer srv.Close()

	fetcher := newTestFetcher(srv.URL)
	articles, err := fetcher.FetchArticles(context.Background(), []string{"MSFT", "NVDA"})

	assert.Equal(t, nil, err)
	// At most 5 per symbol.
	assert.Equal(t, 10, len(articles))
}

func TestFetchArticlesIsolatesPerSymbolFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "NVDA" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(articlesPayload([]map[string]interface{}{
			{"title": "ok", "url": "https://example.com", "description": "fine"},
		}))
	}))
	defer srv.Close()

	fetcher := newTestFetcher(srv.URL)
	articles, err := fetcher.FetchArticles(context.Background(), []string{"MSFT", "NVDA", "META"})

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(articles))
}

func TestFetchArticlesAllUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fetcher := newTestFetcher(srv.URL)
	articles, err := fetcher.FetchArticles(context.Background(), []string{"MSFT", "NVDA"})

	// Never an error from the aggregator itself, just an empty sequence.
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
}

func TestFetchArticlesSendsAPIKeyAndWindow(t *testing.T) {
	var gotKey, gotFrom, gotSort string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotFrom = r.URL.Query().Get("from")
		gotSort = r.URL.Query().Get("sortBy")
		json.NewEncoder(w).Encode(articlesPayload(nil))
	}))
	defer srv.Close()

	fetcher := newTestFetcher(srv.URL)
	_, err := fetcher.FetchArticles(context.Background(), []string{"FTNT"})

	assert.Equal(t, nil, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "publishedAt", gotSort)
	assert.Equal(t, 10, len(gotFrom)) // YYYY-MM-DD
}
