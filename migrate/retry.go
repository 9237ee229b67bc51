package migrate

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kbmigrate"
)

// DefaultRetryDelays returns the backoff delays for upload retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// UploadWithRetry uploads a file, retrying with the given delays between
// attempts. Errors with code EINVALID or ENOTFOUND are not retried.
func UploadWithRetry(ctx context.Context, uploader kbmigrate.Uploader, localPath, title string, logger *slog.Logger, delays []time.Duration) (*kbmigrate.UploadResult, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := uploader.Upload(ctx, localPath, title)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger.Warn("retrying upload", "path", localPath, "attempt", attempt+2, "error", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}

func retryable(err error) bool {
	switch kbmigrate.ErrorCode(err) {
	case kbmigrate.EINVALID, kbmigrate.ENOTFOUND:
		return false
	}
	return true
}
