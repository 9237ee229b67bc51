package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MindTouch export markers.
const (
	classExportTitle     = "mt-export-title"
	classExportSeparator = "mt-export-separator"
	classScriptComment   = "mt-script-comment"
	classTagInsert       = "template:tag-insert"
	classScriptPrefix    = "script"
	proprietaryPrefix    = "mt-"
	assetBundleMarker    = "_assets"
)

// proprietaryAttrs are removed from every element once references have
// been extracted.
var proprietaryAttrs = []string{
	"mt-export-translate", "mt-revision", "mt-type", "mt-unsafe",
	attrSrcPath, attrSrcFilename, attrHrefPath, attrHrefFilename,
}

// RemoveBoilerplate removes DekiScript blocks and export furniture from
// root: script blocks (any class starting with "script", so script-css
// and script-jem match too), script comment paragraphs, the export title
// heading, the page tag paragraph and export separators.
func RemoveBoilerplate(root *goquery.Selection) {
	root.Find("pre").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return hasClassPrefix(s, classScriptPrefix)
	}).Remove()
	findWithClass(root, "p", classScriptComment).Remove()
	findWithClass(root, "h1", classExportTitle).Remove()
	findWithClass(root, "p", classTagInsert).Remove()
	findWithClass(root, "hr", classExportSeparator).Remove()
}

// StripProprietary removes MindTouch attributes, mt- classes, mt- meta
// tags and the export's stylesheet link. It must run after reference
// extraction, which reads the src.* and href.* attributes.
func StripProprietary(root *goquery.Selection) {
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		for _, attr := range proprietaryAttrs {
			s.RemoveAttr(attr)
		}

		class, ok := s.Attr("class")
		if !ok {
			return
		}
		var kept []string
		for _, c := range strings.Fields(class) {
			if !strings.HasPrefix(c, proprietaryPrefix) {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			s.RemoveAttr("class")
		} else {
			s.SetAttr("class", strings.Join(kept, " "))
		}
	})

	root.Find("meta").FilterFunction(func(_ int, s *goquery.Selection) bool {
		for _, attr := range s.Nodes[0].Attr {
			if strings.HasPrefix(attr.Key, proprietaryPrefix) {
				return true
			}
		}
		return false
	}).Remove()

	root.Find("link").FilterFunction(func(_ int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		href, _ := s.Attr("href")
		return hasToken(rel, "stylesheet") && strings.Contains(href, assetBundleMarker)
	}).Remove()
}

// findWithClass finds tag elements under root carrying class as one of
// their class tokens. Class names like "template:tag-insert" are not valid
// CSS identifiers, so matching is done on tokens rather than selectors.
func findWithClass(root *goquery.Selection, tag, class string) *goquery.Selection {
	return root.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	})
}

func hasClassPrefix(s *goquery.Selection, prefix string) bool {
	class, _ := s.Attr("class")
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func hasToken(list, token string) bool {
	for _, t := range strings.Fields(list) {
		if strings.EqualFold(t, token) {
			return true
		}
	}
	return false
}
