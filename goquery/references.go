package goquery

import (
	"log/slog"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/kbmigrate"
)

// Reference attributes written by the MindTouch export.
const (
	attrSrcPath      = "src.path"
	attrSrcFilename  = "src.filename"
	attrHrefPath     = "href.path"
	attrHrefFilename = "href.filename"
)

// referenceExtractor rewrites image sources and attachment links to
// placeholder tokens, collecting a MediaRef for each.
type referenceExtractor struct {
	resolver    kbmigrate.Resolver
	attachments map[string]bool
	layout      kbmigrate.ExportLayout
	logger      *slog.Logger
}

// extract processes images, then attachment links, in document order.
func (x *referenceExtractor) extract(root *goquery.Selection) (images, attachments []kbmigrate.MediaRef) {
	root.Find("img").Each(func(i int, s *goquery.Selection) {
		filename := nonEmptyAttr(s, attrSrcFilename)
		if filename == "" {
			filename = baseName(nonEmptyAttr(s, "src"))
		}
		if filename == "" {
			x.logger.Warn("could not determine image filename", "index", i, "html", outerHTML(s))
			return
		}

		ref := x.resolve(kbmigrate.MediaImage, i, filename, nonEmptyAttr(s, attrSrcPath))
		s.SetAttr("src", ref.Placeholder)
		s.RemoveAttr(attrSrcPath)
		s.RemoveAttr(attrSrcFilename)
		images = append(images, ref)
	})

	// Most skipped links are ordinary page links, so skips log at debug.
	root.Find("a").Each(func(i int, s *goquery.Selection) {
		href := nonEmptyAttr(s, "href")
		if isExternalLink(href) {
			x.logger.Debug("skipping link", "reason", "external", "index", i, "href", href)
			return
		}

		filename := strings.TrimSpace(nonEmptyAttr(s, attrHrefFilename))
		if filename == "" {
			filename = baseName(href)
		}
		if filename == "" {
			x.logger.Debug("skipping link", "reason", "no filename", "index", i, "href", href)
			return
		}

		if !kbmigrate.HasExtension(filename, x.attachments) {
			x.logger.Debug("skipping link", "reason", "extension not allowed", "index", i, "filename", filename)
			return
		}

		ref := x.resolve(kbmigrate.MediaAttachment, i, filename, nonEmptyAttr(s, attrHrefPath))
		s.SetAttr("href", ref.Placeholder)
		s.RemoveAttr(attrHrefPath)
		s.RemoveAttr(attrHrefFilename)
		attachments = append(attachments, ref)
	})

	return images, attachments
}

func (x *referenceExtractor) resolve(kind kbmigrate.MediaKind, index int, filename, hint string) kbmigrate.MediaRef {
	localPath := x.resolver.Resolve(filename, x.layout, hint)
	if _, err := os.Stat(localPath); err != nil {
		x.logger.Warn("referenced file not found",
			"kind", kind,
			"filename", filename,
			"path", localPath,
			"hint", hint,
		)
	}

	placeholder := kbmigrate.ImagePlaceholder(index)
	if kind == kbmigrate.MediaAttachment {
		placeholder = kbmigrate.AttachmentPlaceholder(index)
	}

	return kbmigrate.MediaRef{
		Kind:        kind,
		Filename:    filename,
		LocalPath:   localPath,
		Placeholder: placeholder,
		Index:       index,
	}
}

// nonEmptyAttr returns the attribute value, or "" when absent.
func nonEmptyAttr(s *goquery.Selection, name string) string {
	v, _ := s.Attr(name)
	return v
}

// baseName returns the last path segment of a relative reference such as
// "./image.png?revision=2". A trailing slash yields "".
func baseName(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}

// isExternalLink reports whether href points outside the export.
func isExternalLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "http:") ||
		strings.HasPrefix(href, "https:")
}

func outerHTML(s *goquery.Selection) string {
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return ""
	}
	return html
}
