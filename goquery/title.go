package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTitle is used when a page has neither an export title nor a
// <title> element.
const DefaultTitle = "Untitled Article"

// ExtractTitle returns the export title heading text, else the <title>
// text, else DefaultTitle.
func ExtractTitle(doc *goquery.Document) string {
	if title := normalizeSpace(findWithClass(doc.Selection, "h1", classExportTitle).First().Text()); title != "" {
		return title
	}
	if title := normalizeSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return DefaultTitle
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
