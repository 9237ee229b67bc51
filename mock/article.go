package mock

import (
	"context"

	"github.com/fwojciec/kbmigrate"
)

var _ kbmigrate.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of kbmigrate.ArticleService.
type ArticleService struct {
	CreateArticleFn  func(ctx context.Context, draft *kbmigrate.ArticleDraft) (string, error)
	LinkFileFn       func(ctx context.Context, documentID, articleID string) error
	PublishArticleFn func(ctx context.Context, articleID string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, draft *kbmigrate.ArticleDraft) (string, error) {
	return s.CreateArticleFn(ctx, draft)
}

func (s *ArticleService) LinkFile(ctx context.Context, documentID, articleID string) error {
	return s.LinkFileFn(ctx, documentID, articleID)
}

func (s *ArticleService) PublishArticle(ctx context.Context, articleID string) error {
	return s.PublishArticleFn(ctx, articleID)
}
