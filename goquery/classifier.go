package goquery

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbmigrate"
	"golang.org/x/net/html"
)

// Ensure Classifier implements kbmigrate.CategoryClassifier at compile time.
var _ kbmigrate.CategoryClassifier = (*Classifier)(nil)

// CategoryTags are the page tags marking MindTouch landing pages.
var CategoryTags = []string{"article:topic-category", "article:topic-guide"}

// Classifier detects MindTouch category and guide landing pages.
type Classifier struct {
	minContentLength int
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithMinContentLength sets the visible text length, in characters, below
// which a page is a landing page. Defaults to kbmigrate.DefaultMinContentLength.
func WithMinContentLength(n int) ClassifierOption {
	return func(c *Classifier) {
		c.minContentLength = n
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{minContentLength: kbmigrate.DefaultMinContentLength}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsCategoryPage reads the page at path and classifies it.
// Unreadable pages are treated as articles.
func (c *Classifier) IsCategoryPage(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return false
	}
	return c.IsCategoryHTML(string(data))
}

// IsCategoryHTML reports whether the page is tagged as a category or guide
// page, or has almost no text once boilerplate is removed. The check works
// on its own parse of html.
func (c *Classifier) IsCategoryHTML(src string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return false
	}

	tagged := false
	findWithClass(doc.Selection, "p", classTagInsert).First().Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		for _, tag := range CategoryTags {
			if text == tag {
				tagged = true
				return false
			}
		}
		return true
	})
	if tagged {
		return true
	}

	// The parser always synthesizes a body, so check the source.
	if !hasBodyTag(src) {
		return false
	}

	body := doc.Find("body").First()
	RemoveBoilerplate(body)
	return utf8.RuneCountInString(strippedText(body)) < c.minContentLength
}

// hasBodyTag reports whether src contains a <body> start tag.
func hasBodyTag(src string) bool {
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "body" {
				return true
			}
		}
	}
}

// strippedText concatenates the whitespace-trimmed text nodes under s,
// skipping script and style contents.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(strings.TrimSpace(n.Data))
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
