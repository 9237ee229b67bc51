package mock

import (
	"context"

	"github.com/fwojciec/kbmigrate"
)

var _ kbmigrate.Uploader = (*Uploader)(nil)

// Uploader is a mock implementation of kbmigrate.Uploader.
type Uploader struct {
	UploadFn func(ctx context.Context, localPath, title string) (*kbmigrate.UploadResult, error)
}

func (u *Uploader) Upload(ctx context.Context, localPath, title string) (*kbmigrate.UploadResult, error) {
	return u.UploadFn(ctx, localPath, title)
}
