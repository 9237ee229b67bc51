package mock

import "github.com/fwojciec/kbmigrate"

var _ kbmigrate.CategoryClassifier = (*CategoryClassifier)(nil)

// CategoryClassifier is a mock implementation of kbmigrate.CategoryClassifier.
type CategoryClassifier struct {
	IsCategoryPageFn func(path string) bool
}

func (c *CategoryClassifier) IsCategoryPage(path string) bool {
	return c.IsCategoryPageFn(path)
}
