// Package htmltomarkdown renders transformed article bodies as Markdown
// so a migration can be reviewed before anything is uploaded.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/kbmigrate"
)

// Ensure Renderer implements kbmigrate.MarkdownRenderer at compile time.
var _ kbmigrate.MarkdownRenderer = (*Renderer)(nil)

// Renderer wraps html-to-markdown to render article HTML as Markdown.
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Renderer{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (r *Renderer) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", kbmigrate.Errorf(kbmigrate.EINVALID, "empty HTML input")
	}
	return r.conv.ConvertString(html)
}

// Render renders the article title as a level one heading followed by the body.
// An empty body renders the heading alone.
func (r *Renderer) Render(article *kbmigrate.Article) (string, error) {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(article.Title)
	sb.WriteString("\n")

	if strings.TrimSpace(article.Body) == "" {
		return sb.String(), nil
	}

	md, err := r.Convert(article.Body)
	if err != nil {
		return "", err
	}
	sb.WriteString("\n")
	sb.WriteString(strings.TrimSpace(md))
	sb.WriteString("\n")
	return sb.String(), nil
}
