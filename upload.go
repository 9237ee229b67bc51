package kbmigrate

import "context"

// UploadResult describes a file stored in the destination system.
type UploadResult struct {
	ContentVersionID string `json:"contentVersionId"`
	DocumentID       string `json:"documentId"`

	// DownloadURL links to the file; used for attachments.
	DownloadURL string `json:"downloadUrl"`

	// RenditionURL renders the file inline; used for images.
	RenditionURL string `json:"renditionUrl"`

	Filename string `json:"filename"`
}

// Uploader stores local files in the destination system.
// Implementations must tolerate concurrent calls.
type Uploader interface {
	Upload(ctx context.Context, localPath, title string) (*UploadResult, error)
}

// ArticleDraft holds the fields of a new knowledge article.
type ArticleDraft struct {
	Title string
	Body  string

	// URLName is derived from Title when empty.
	URLName string
}

// Validate returns an error if the draft contains invalid fields.
func (d *ArticleDraft) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "article title required")
	}
	return nil
}

// ArticleService manages knowledge articles in the destination system.
type ArticleService interface {
	// CreateArticle creates a draft article and returns its ID.
	CreateArticle(ctx context.Context, draft *ArticleDraft) (string, error)

	// LinkFile attaches an uploaded document to an article.
	LinkFile(ctx context.Context, documentID, articleID string) error

	// PublishArticle moves a draft article online.
	PublishArticle(ctx context.Context, articleID string) error
}
