package render

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const previewLength = 200

// HTML converts the synthesized markdown digest into email-ready HTML.
// The input is trusted (it came from the synthesizer, not from users), so no
// escaping beyond what the transform applies is required. Deterministic.
func HTML(content string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return string(markdown.ToHTML([]byte(content), p, r))
}

// Preview returns the first 200 characters of the digest content, or the
// whole content if shorter.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= previewLength {
		return content
	}
	return string(runes[:previewLength])
}
