// Package bloom provides a probabilistic set of migrated article folders.
package bloom

import (
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers folder keys. It may report a folder it never saw,
// but never misses one it did.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected folders
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Key normalizes a folder path so that equivalent spellings match.
func Key(folder string) string {
	return filepath.ToSlash(filepath.Clean(folder))
}

// Add adds a folder to the filter.
func (f *Filter) Add(folder string) {
	f.f.AddString(Key(folder))
}

// Test returns true if the folder might be in the filter.
func (f *Filter) Test(folder string) bool {
	return f.f.TestString(Key(folder))
}

// EstimatedCount returns the approximate number of folders in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
