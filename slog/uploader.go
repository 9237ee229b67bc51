package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbmigrate"
)

// Ensure decorators implement their interfaces.
var (
	_ kbmigrate.Uploader       = (*LoggingUploader)(nil)
	_ kbmigrate.ArticleService = (*LoggingArticleService)(nil)
)

// LoggingUploader wraps an Uploader with logging.
type LoggingUploader struct {
	next   kbmigrate.Uploader
	logger *slog.Logger
}

// NewLoggingUploader creates a new LoggingUploader.
func NewLoggingUploader(next kbmigrate.Uploader, logger *slog.Logger) *LoggingUploader {
	return &LoggingUploader{next: next, logger: logger}
}

// Upload delegates to the wrapped uploader and logs the operation.
func (u *LoggingUploader) Upload(ctx context.Context, localPath, title string) (result *kbmigrate.UploadResult, err error) {
	defer func(begin time.Time) {
		documentID := ""
		if result != nil {
			documentID = result.DocumentID
		}
		u.logger.Info("upload",
			"path", localPath,
			"title", title,
			"document_id", documentID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return u.next.Upload(ctx, localPath, title)
}

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   kbmigrate.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next kbmigrate.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// CreateArticle delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) CreateArticle(ctx context.Context, draft *kbmigrate.ArticleDraft) (id string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("create article",
			"title", draft.Title,
			"bytes", len(draft.Body),
			"article_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateArticle(ctx, draft)
}

// LinkFile delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) LinkFile(ctx context.Context, documentID, articleID string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("link file",
			"document_id", documentID,
			"article_id", articleID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LinkFile(ctx, documentID, articleID)
}

// PublishArticle delegates to the wrapped service and logs the operation.
func (s *LoggingArticleService) PublishArticle(ctx context.Context, articleID string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("publish article",
			"article_id", articleID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PublishArticle(ctx, articleID)
}
