package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"TickerBrief/internal/metrics"
	"TickerBrief/internal/models"
)

// Defaults applied to every article field before it is handed downstream.
const (
	defaultTitle       = "No title"
	defaultURL         = "#"
	defaultDescription = "No description available"
)

const maxArticlesPerSymbol = 5

type Fetcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger
}

func NewFetcher(apiKey, baseURL string, limiter *rate.Limiter, log *zap.Logger) *Fetcher {
	return &Fetcher{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    limiter,
		log:        log,
	}
}

// FetchArticles queries the news source once per symbol, concurrently, and
// merges the results in symbol order. A failure for one symbol is logged and
// contributes an empty list; it never fails the aggregation.
func (f *Fetcher) FetchArticles(ctx context.Context, symbols []string) ([]models.Article, error) {
	perSymbol := make([][]models.Article, len(symbols))

	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)

		go func(i int, symbol string) {
			defer wg.Done()

			articles, err := f.fetchSymbol(ctx, symbol)
			if err != nil {
				f.log.Error("news fetch failed for symbol",
					zap.String("symbol", symbol),
					zap.Error(err),
				)
				metrics.FetchFailures.Inc()
				return
			}
			perSymbol[i] = articles
		}(i, symbol)
	}
	wg.Wait()

	var merged []models.Article
	for _, articles := range perSymbol {
		merged = append(merged, articles...)
	}
	return merged, nil
}

func (f *Fetcher) fetchSymbol(ctx context.Context, symbol string) ([]models.Article, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	since := time.Now().Add(-24 * time.Hour).Format("2006-01-02")

	endpoint := fmt.Sprintf("%s/everything?q=%s&from=%s&sortBy=publishedAt",
		f.baseURL, url.QueryEscape(symbol), since)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("news request: %w", err)
	}
	req.Header.Set("X-Api-Key", f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news source returned %d for %q", resp.StatusCode, symbol)
	}

	var raw newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	items := raw.Articles
	if len(items) > maxArticlesPerSymbol {
		items = items[:maxArticlesPerSymbol]
	}

	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, models.Article{
			Title:       orDefault(item.Title, defaultTitle),
			URL:         orDefault(item.URL, defaultURL),
			Description: orDefault(item.Description, defaultDescription),
		})
	}
	return articles, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

type newsResponse struct {
	Articles []newsItem `json:"articles"`
}

type newsItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}
