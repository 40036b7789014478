package digest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/openai/openai-go/option"

	"TickerBrief/internal/models"
)

func fakeCompletionServer(t *testing.T, choices []map[string]interface{}) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o",
			"choices": choices,
		})
	}))
}

func TestSynthesizeExtractsFirstChoice(t *testing.T) {
	srv := fakeCompletionServer(t, []map[string]interface{}{
		{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]interface{}{
				"role":    "assistant",
				"content": "# Market Brief\n\nNVDA had a strong day.",
			},
		},
	})
	defer srv.Close()

	s := NewSynthesizer("test-key", "gpt-4o", option.WithBaseURL(srv.URL+"/"))

	dg, err := s.Synthesize(context.Background(), []string{"NVDA"}, []models.Article{
		{Title: "t", URL: "u", Description: "d"},
	})

	assert.Equal(t, nil, err)
	assert.Equal(t, "# Market Brief\n\nNVDA had a strong day.", dg.Content)
	assert.Equal(t, dg.Content, dg.Preview)
}

func TestSynthesizeNoChoices(t *testing.T) {
	srv := fakeCompletionServer(t, nil)
	defer srv.Close()

	s := NewSynthesizer("test-key", "gpt-4o", option.WithBaseURL(srv.URL+"/"))

	_, err := s.Synthesize(context.Background(), []string{"NVDA"}, nil)

	assert.Equal(t, true, errors.Is(err, ErrNoContent))
}

func TestSynthesizeEmptyContent(t *testing.T) {
	srv := fakeCompletionServer(t, []map[string]interface{}{
		{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]interface{}{
				"role":    "assistant",
				"content": "",
			},
		},
	})
	defer srv.Close()

	s := NewSynthesizer("test-key", "gpt-4o", option.WithBaseURL(srv.URL+"/"))

	_, err := s.Synthesize(context.Background(), []string{"NVDA"}, nil)

	assert.Equal(t, true, errors.Is(err, ErrNoContent))
}
