package mock

import (
	"context"

	"github.com/apidex/apidex"
)

var _ apidex.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of apidex.Catalog.
type Catalog struct {
	RecordFileFn                          func(ctx context.Context, f *apidex.IndexedFile) error
	IndexedPackageVersionsFn              func(ctx context.Context) (map[string][]string, error)
	IndexedPackageVersionsWithFrameworkFn func(ctx context.Context) ([]apidex.PackageVersion, error)
	IndexedPathsFn                        func(ctx context.Context) (map[string]bool, error)
	EmptyPathsFn                          func(ctx context.Context) (map[string]bool, error)
	FindFileFn                            func(ctx context.Context, path string) (*apidex.IndexedFile, error)
	DeleteByPackageIDsFn                  func(ctx context.Context, ids []string) error
	DeleteAllFn                           func(ctx context.Context) error
}

func (c *Catalog) RecordFile(ctx context.Context, f *apidex.IndexedFile) error {
	return c.RecordFileFn(ctx, f)
}

func (c *Catalog) IndexedPackageVersions(ctx context.Context) (map[string][]string, error) {
	return c.IndexedPackageVersionsFn(ctx)
}

func (c *Catalog) IndexedPackageVersionsWithFramework(ctx context.Context) ([]apidex.PackageVersion, error) {
	return c.IndexedPackageVersionsWithFrameworkFn(ctx)
}

func (c *Catalog) IndexedPaths(ctx context.Context) (map[string]bool, error) {
	return c.IndexedPathsFn(ctx)
}

func (c *Catalog) EmptyPaths(ctx context.Context) (map[string]bool, error) {
	return c.EmptyPathsFn(ctx)
}

func (c *Catalog) FindFile(ctx context.Context, path string) (*apidex.IndexedFile, error) {
	return c.FindFileFn(ctx, path)
}

func (c *Catalog) DeleteByPackageIDs(ctx context.Context, ids []string) error {
	return c.DeleteByPackageIDsFn(ctx, ids)
}

func (c *Catalog) DeleteAll(ctx context.Context) error {
	return c.DeleteAllFn(ctx)
}
