// Package slog provides logging decorators for kbmigrate services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/kbmigrate"
)

// Ensure decorators implement their interfaces.
var (
	_ kbmigrate.Transformer        = (*LoggingTransformer)(nil)
	_ kbmigrate.CategoryClassifier = (*LoggingClassifier)(nil)
)

// LoggingTransformer wraps a Transformer with debug logging.
type LoggingTransformer struct {
	next   kbmigrate.Transformer
	logger *slog.Logger
}

// NewLoggingTransformer creates a new LoggingTransformer.
func NewLoggingTransformer(next kbmigrate.Transformer, logger *slog.Logger) *LoggingTransformer {
	return &LoggingTransformer{next: next, logger: logger}
}

// Transform delegates to the wrapped transformer and logs the operation.
func (t *LoggingTransformer) Transform(htmlPath string, layout kbmigrate.ExportLayout) (article *kbmigrate.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{"path", htmlPath, "duration", time.Since(begin)}
		if article != nil {
			attrs = append(attrs,
				"title", article.Title,
				"images", len(article.Images),
				"attachments", len(article.Attachments),
				"bytes", len(article.Body),
			)
		}
		attrs = append(attrs, "err", err)
		t.logger.Debug("transform", attrs...)
	}(time.Now())
	return t.next.Transform(htmlPath, layout)
}

// LoggingClassifier wraps a CategoryClassifier with debug logging.
type LoggingClassifier struct {
	next   kbmigrate.CategoryClassifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next kbmigrate.CategoryClassifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// IsCategoryPage delegates to the wrapped classifier and logs the decision.
func (c *LoggingClassifier) IsCategoryPage(path string) bool {
	category := c.next.IsCategoryPage(path)
	c.logger.Debug("classify", "path", path, "category", category)
	return category
}
