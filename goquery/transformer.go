// Package goquery implements the MindTouch page transformation using
// goquery: boilerplate removal, title extraction, reference extraction
// with placeholder rewriting, and category page classification.
package goquery

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbmigrate"
)

// Ensure Transformer implements kbmigrate.Transformer at compile time.
var _ kbmigrate.Transformer = (*Transformer)(nil)

var reBlankLines = regexp.MustCompile(`\n{3,}`)

// Transformer turns exported MindTouch pages into article HTML.
type Transformer struct {
	resolver    kbmigrate.Resolver
	attachments map[string]bool
	logger      *slog.Logger
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithAttachmentExtensions sets the link extensions treated as attachments.
// Defaults to kbmigrate.DefaultConfig().AttachmentExtensions.
func WithAttachmentExtensions(exts []string) Option {
	return func(t *Transformer) {
		t.attachments = kbmigrate.ExtensionSet(exts)
	}
}

// WithLogger sets the logger for per-reference warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transformer) {
		t.logger = logger
	}
}

// NewTransformer creates a new Transformer that resolves references with resolver.
func NewTransformer(resolver kbmigrate.Resolver, opts ...Option) *Transformer {
	t := &Transformer{
		resolver:    resolver,
		attachments: kbmigrate.ExtensionSet(kbmigrate.DefaultConfig().AttachmentExtensions),
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform reads and transforms the page at htmlPath. When
// layout.ArticleDir is empty, the page's directory is used.
func (t *Transformer) Transform(htmlPath string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error) {
	data, err := os.ReadFile(htmlPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, kbmigrate.Errorf(kbmigrate.ENOTFOUND, "page %q not found", htmlPath)
	} else if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, kbmigrate.Errorf(kbmigrate.EINVALID, "page %q is not valid UTF-8", htmlPath)
	}

	if layout.ArticleDir == "" {
		layout.ArticleDir = filepath.Dir(htmlPath)
	}

	article, err := t.TransformHTML(string(data), layout)
	if err != nil {
		return nil, err
	}
	article.Path = htmlPath
	return article, nil
}

// TransformHTML transforms page HTML. References resolve against layout.
func (t *Transformer) TransformHTML(html string, layout kbmigrate.ExportLayout) (*kbmigrate.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, kbmigrate.Errorf(kbmigrate.EINVALID, "failed to parse HTML: %v", err)
	}

	title := ExtractTitle(doc)

	RemoveBoilerplate(doc.Selection)

	x := &referenceExtractor{
		resolver:    t.resolver,
		attachments: t.attachments,
		layout:      layout,
		logger:      t.logger,
	}
	images, attachments := x.extract(doc.Selection)

	StripProprietary(doc.Selection)

	body, err := serializeBody(doc)
	if err != nil {
		return nil, kbmigrate.Errorf(kbmigrate.EINVALID, "failed to render HTML: %v", err)
	}

	return &kbmigrate.Article{
		Title:       title,
		Body:        body,
		Images:      images,
		Attachments: attachments,
	}, nil
}

// serializeBody renders the inner HTML of <body>, or the whole document
// when there is none, with runs of blank lines collapsed.
func serializeBody(doc *goquery.Document) (string, error) {
	var html string
	var err error
	if body := doc.Find("body").First(); body.Length() > 0 {
		html, err = body.Html()
	} else {
		html, err = goquery.OuterHtml(doc.Selection)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reBlankLines.ReplaceAllString(html, "\n\n")), nil
}
