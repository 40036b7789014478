package render

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestHTMLDeterministic(t *testing.T) {
	content := "# Daily Brief\n\n**MSFT** closed higher.\n\n- point one\n- point two"

	first := HTML(content)
	second := HTML(content)

	assert.Equal(t, first, second)
	assert.Equal(t, true, strings.Contains(first, "<h1"))
	assert.Equal(t, true, strings.Contains(first, "<strong>MSFT</strong>"))
	assert.Equal(t, true, strings.Contains(first, "<li>point one</li>"))
}

func TestPreviewTruncatesAt200(t *testing.T) {
	content := strings.Repeat("a", 450)

	preview := Preview(content)

	assert.Equal(t, 200, len(preview))
	assert.Equal(t, strings.Repeat("a", 200), preview)
}

func TestPreviewShortContentUnchanged(t *testing.T) {
	content := "short digest"

	assert.Equal(t, content, Preview(content))
}

func TestPreviewExactBoundary(t *testing.T) {
	content := strings.Repeat("b", 200)

	assert.Equal(t, content, Preview(content))
}
