package kbmigrate

// MarkdownRenderer renders a transformed article as Markdown for review.
type MarkdownRenderer interface {
	// Render returns the article title as a heading followed by the body.
	// Placeholders are kept as written.
	Render(article *Article) (string, error)
}
