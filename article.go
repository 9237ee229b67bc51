package kbmigrate

import (
	"sort"
	"strconv"
	"strings"
)

// MediaKind distinguishes inline images from linked attachments.
type MediaKind string

// MediaKind constants.
const (
	MediaImage      MediaKind = "image"
	MediaAttachment MediaKind = "attachment"
)

// ImagePlaceholder returns the placeholder token for the image at index n.
func ImagePlaceholder(n int) string {
	return "{{IMG_PLACEHOLDER_" + strconv.Itoa(n) + "}}"
}

// AttachmentPlaceholder returns the placeholder token for the attachment at index n.
func AttachmentPlaceholder(n int) string {
	return "{{ATTACH_PLACEHOLDER_" + strconv.Itoa(n) + "}}"
}

// MediaRef is a reference from an article body to a file in the export.
type MediaRef struct {
	Kind     MediaKind `json:"kind"`
	Filename string    `json:"filename"`

	// LocalPath is the best-effort resolved path. It may not exist;
	// callers check before uploading.
	LocalPath string `json:"localPath"`

	// Placeholder is the token standing in for the final URL in the body.
	Placeholder string `json:"placeholder"`

	// Index is the element's position among elements of the same kind
	// in the source document. Only meaningful within one article.
	Index int `json:"index"`
}

// Article is the result of transforming one exported page.
type Article struct {
	// Path is the HTML file the article was read from.
	Path string `json:"path"`

	Title string `json:"title"`

	// Body is cleaned HTML with placeholder tokens in place of
	// image sources and attachment links.
	Body string `json:"body"`

	Images      []MediaRef `json:"images"`
	Attachments []MediaRef `json:"attachments"`
}

// Placeholders returns every placeholder token produced for the article,
// images first.
func (a *Article) Placeholders() []string {
	tokens := make([]string, 0, len(a.Images)+len(a.Attachments))
	for _, ref := range a.Images {
		tokens = append(tokens, ref.Placeholder)
	}
	for _, ref := range a.Attachments {
		tokens = append(tokens, ref.Placeholder)
	}
	return tokens
}

// Replacements maps placeholder tokens to their final values.
type Replacements map[string]string

// Values substituted for references that could not be uploaded.
const (
	MissingImageValue      = ""
	MissingAttachmentValue = "#"
)

// DryRunValue returns the human-readable stand-in used when previewing
// a migration without uploading.
func DryRunValue(ref MediaRef) string {
	if ref.Kind == MediaAttachment {
		return "[ATTACHMENT: " + ref.Filename + "]"
	}
	return "[IMAGE: " + ref.Filename + "]"
}

// Substitute replaces each placeholder token in body with its value in r.
// Replacement is literal and single-pass, so values are never rescanned.
// Tokens missing from r are left untouched.
func Substitute(body string, r Replacements) string {
	if len(r) == 0 {
		return body
	}
	tokens := make([]string, 0, len(r))
	for token := range r {
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)

	pairs := make([]string, 0, 2*len(tokens))
	for _, token := range tokens {
		pairs = append(pairs, token, r[token])
	}
	return strings.NewReplacer(pairs...).Replace(body)
}

// Transformer converts an exported page into an Article.
type Transformer interface {
	// Transform reads the page at htmlPath and returns the cleaned article.
	// Returns ENOTFOUND if the file does not exist and EINVALID if it
	// cannot be parsed. Problems with individual references are logged,
	// never returned.
	Transform(htmlPath string, layout ExportLayout) (*Article, error)
}

// CategoryClassifier detects category and guide landing pages that carry
// no authored content.
type CategoryClassifier interface {
	// IsCategoryPage reports whether the page at path is a landing page.
	// Unreadable pages are reported as articles.
	IsCategoryPage(path string) bool
}
