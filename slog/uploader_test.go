package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/kbmigrate"
	"github.com/fwojciec/kbmigrate/mock"
	kbslog "github.com/fwojciec/kbmigrate/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingUploader_Upload(t *testing.T) {
	t.Parallel()

	t.Run("logs upload with document id and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Uploader{
			UploadFn: func(ctx context.Context, localPath, title string) (*kbmigrate.UploadResult, error) {
				return &kbmigrate.UploadResult{DocumentID: "069D1"}, nil
			},
		}

		u := kbslog.NewLoggingUploader(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		result, err := u.Upload(context.Background(), "/x/guide.pdf", "guide.pdf")

		require.NoError(t, err)
		assert.Equal(t, "069D1", result.DocumentID)
		output := buf.String()
		assert.Contains(t, output, "msg=upload")
		assert.Contains(t, output, "path=/x/guide.pdf")
		assert.Contains(t, output, "document_id=069D1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Uploader{
			UploadFn: func(ctx context.Context, localPath, title string) (*kbmigrate.UploadResult, error) {
				return nil, errors.New("quota exceeded")
			},
		}

		u := kbslog.NewLoggingUploader(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := u.Upload(context.Background(), "/x/a.png", "a.png")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="quota exceeded"`)
	})
}

func TestLoggingArticleService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.ArticleService{
		CreateArticleFn: func(ctx context.Context, draft *kbmigrate.ArticleDraft) (string, error) {
			return "ka0A1", nil
		},
		LinkFileFn: func(ctx context.Context, documentID, articleID string) error {
			return nil
		},
		PublishArticleFn: func(ctx context.Context, articleID string) error {
			return errors.New("denied")
		},
	}

	s := kbslog.NewLoggingArticleService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	id, err := s.CreateArticle(ctx, &kbmigrate.ArticleDraft{Title: "Reset", Body: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "ka0A1", id)
	require.NoError(t, s.LinkFile(ctx, "069D1", id))
	require.Error(t, s.PublishArticle(ctx, id))

	output := buf.String()
	assert.Contains(t, output, `msg="create article"`)
	assert.Contains(t, output, "article_id=ka0A1")
	assert.Contains(t, output, `msg="link file"`)
	assert.Contains(t, output, "document_id=069D1")
	assert.Contains(t, output, `msg="publish article"`)
	assert.Contains(t, output, "err=denied")
}
