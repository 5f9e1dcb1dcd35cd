package generator

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/example/doc-buildr/internal/errors"
)

var htmlRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts rendered Markdown into an HTML fragment.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := htmlRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", errors.Wrap(err, errors.KindInternal, "failed to convert markdown to html")
	}
	return buf.String(), nil
}
