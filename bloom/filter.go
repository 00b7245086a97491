// Package bloom provides file-path deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for file-path deduplication during cache scans.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a path to the filter.
func (f *Filter) Add(path string) {
	f.f.AddString(path)
}

// Test returns true if the path might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(path string) bool {
	return f.f.TestString(path)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
