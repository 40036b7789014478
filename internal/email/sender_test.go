package email

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"TickerBrief/internal/models"
)

var testArticles = []models.Article{
	{Title: "Microsoft earnings beat", URL: "https://example.com/msft", Description: "Cloud revenue grew."},
	{Title: "Fortinet guidance cut", URL: "https://example.com/ftnt", Description: "Shares fell after hours."},
}

func TestBuildArticlesHTML(t *testing.T) {
	html := BuildArticlesHTML(testArticles)

	assert.Equal(t, true, strings.Contains(html, `href="https://example.com/msft"`))
	assert.Equal(t, true, strings.Contains(html, "Microsoft earnings beat"))
	assert.Equal(t, true, strings.Contains(html, "Cloud revenue grew."))
	assert.Equal(t, true, strings.Contains(html, "Fortinet guidance cut"))
	assert.Equal(t, 2, strings.Count(html, "Read full article"))
}

func TestBuildArticlesHTMLEmpty(t *testing.T) {
	assert.Equal(t, "", BuildArticlesHTML(nil))
}

func TestTemplateParams(t *testing.T) {
	params := TemplateParams("a@x.com", []string{"MSFT", "FTNT"}, "January 2, 2026", "<p>body</p>", testArticles)

	assert.Equal(t, "a@x.com", params["to_email"])
	assert.Equal(t, "MSFT, FTNT", params["ticker_symbols"])
	assert.Equal(t, 2, params["ticker_count"])
	assert.Equal(t, 2, params["article_count"])
	assert.Equal(t, "January 2, 2026", params["current_date"])
}

func TestNewsletterTemplateRenders(t *testing.T) {
	s, err := NewSender("localhost", 1025, "", "", "newsletter@tickerbrief.dev")
	assert.Equal(t, nil, err)

	params := TemplateParams("a@x.com", []string{"MSFT"}, "January 2, 2026", "<p>Your digest</p>", testArticles)

	var body bytes.Buffer
	err = s.tmpl.Execute(&body, params)

	assert.Equal(t, nil, err)

	out := body.String()
	assert.Equal(t, true, strings.Contains(out, "Sent to a@x.com"))
	assert.Equal(t, true, strings.Contains(out, "<p>Your digest</p>"))
	assert.Equal(t, true, strings.Contains(out, "Microsoft earnings beat"))
	assert.Equal(t, true, strings.Contains(out, "January 2, 2026"))
	// HTML params must not be escaped.
	assert.Equal(t, false, strings.Contains(out, "&lt;p&gt;"))
}
