package indexer_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/indexer"
	"github.com/apidex/apidex/mock"
)

// seedCache lays out a minimal package cache with one documented package.
func seedCache(t *testing.T) (root, xmlPath string) {
	t.Helper()
	root = t.TempDir()
	dir := filepath.Join(root, "demo.core", "1.2.0", "lib", "net8.0")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	xmlPath = filepath.Join(dir, "Demo.Core.xml")
	require.NoError(t, os.WriteFile(xmlPath, []byte("<doc/>"), 0o644))
	return root, xmlPath
}

func parserReturning(members ...*apidex.MemberInfo) *mock.Parser {
	return &mock.Parser{
		ParseFn: func(_ context.Context, _ io.Reader) (*apidex.ParseResult, error) {
			return &apidex.ParseResult{Members: members}, nil
		},
	}
}

func emptyCatalogState(c *mock.Catalog) {
	c.IndexedPackageVersionsWithFrameworkFn = func(_ context.Context) ([]apidex.PackageVersion, error) {
		return nil, nil
	}
	c.IndexedPathsFn = func(_ context.Context) (map[string]bool, error) {
		return nil, nil
	}
	c.EmptyPathsFn = func(_ context.Context) (map[string]bool, error) {
		return nil, nil
	}
}

func TestIndexer_Run(t *testing.T) {
	t.Parallel()

	t.Run("fresh cache is fully indexed", func(t *testing.T) {
		t.Parallel()

		root, xmlPath := seedCache(t)

		var batches [][]*apidex.MemberInfo
		var commits int
		catalog := &mock.Catalog{
			RecordFileFn: func(_ context.Context, _ *apidex.IndexedFile) error { return nil },
		}
		emptyCatalogState(catalog)

		ix := &indexer.Indexer{
			Parser:  parserReturning(memberFixture("T:Demo.Widget")),
			Index:   collectingWriter(&batches, &commits),
			Catalog: catalog,
		}

		report, err := ix.Run(context.Background(), indexer.RunOptions{CacheRoot: root}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Scan.UniqueFiles)
		assert.Equal(t, 1, report.Plan.Stats.NewPackages)
		require.Len(t, report.Plan.PackagesToIndex, 1)
		assert.Equal(t, xmlPath, report.Plan.PackagesToIndex[0].Path)
		assert.Equal(t, 1, report.Result.FilesProcessed)
		require.Len(t, batches, 1)
	})

	t.Run("plain directory indexes without attribution", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		xmlPath := filepath.Join(root, "Docs.xml")
		require.NoError(t, os.WriteFile(xmlPath, []byte("<doc/>"), 0o644))

		var batches [][]*apidex.MemberInfo
		var commits int
		catalog := &mock.Catalog{
			RecordFileFn: func(_ context.Context, _ *apidex.IndexedFile) error { return nil },
		}
		emptyCatalogState(catalog)

		ix := &indexer.Indexer{
			Parser:  parserReturning(memberFixture("T:Demo.Widget")),
			Index:   collectingWriter(&batches, &commits),
			Catalog: catalog,
		}

		report, err := ix.Run(context.Background(), indexer.RunOptions{CacheRoot: root}, nil)
		require.NoError(t, err)

		require.Len(t, report.Plan.PackagesToIndex, 1)
		assert.Equal(t, xmlPath, report.Plan.PackagesToIndex[0].Path)
		assert.Empty(t, report.Plan.PackagesToIndex[0].PackageID)
		assert.Equal(t, 1, report.Result.FilesProcessed)
		require.Len(t, batches, 1)
		for _, m := range batches[0] {
			assert.False(t, m.IsFromNuGetCache)
			assert.Empty(t, m.PackageVersion)
		}
	})

	t.Run("already indexed cache is a no-op", func(t *testing.T) {
		t.Parallel()

		root, xmlPath := seedCache(t)

		var batches [][]*apidex.MemberInfo
		var commits int
		catalog := &mock.Catalog{
			RecordFileFn: func(_ context.Context, _ *apidex.IndexedFile) error { return nil },
			IndexedPackageVersionsWithFrameworkFn: func(_ context.Context) ([]apidex.PackageVersion, error) {
				return []apidex.PackageVersion{
					{PackageID: "demo.core", Version: "1.2.0", Framework: "net8.0"},
				}, nil
			},
			IndexedPathsFn: func(_ context.Context) (map[string]bool, error) {
				return map[string]bool{xmlPath: true}, nil
			},
			EmptyPathsFn: func(_ context.Context) (map[string]bool, error) {
				return nil, nil
			},
		}

		ix := &indexer.Indexer{
			Parser:  parserReturning(),
			Index:   collectingWriter(&batches, &commits),
			Catalog: catalog,
		}

		report, err := ix.Run(context.Background(), indexer.RunOptions{CacheRoot: root}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Plan.Stats.SkippedPackages)
		assert.Empty(t, report.Plan.PackagesToIndex)
		assert.Zero(t, report.Result.FilesProcessed)
		assert.Empty(t, batches)
	})

	t.Run("version change purges the stale package", func(t *testing.T) {
		t.Parallel()

		root, _ := seedCache(t)

		var batches [][]*apidex.MemberInfo
		var commits int
		var purgedIndex, purgedCatalog []string

		writer := collectingWriter(&batches, &commits)
		writer.DeleteByPackageIDsFn = func(_ context.Context, ids []string) error {
			purgedIndex = ids
			return nil
		}

		catalog := &mock.Catalog{
			RecordFileFn: func(_ context.Context, _ *apidex.IndexedFile) error { return nil },
			IndexedPackageVersionsWithFrameworkFn: func(_ context.Context) ([]apidex.PackageVersion, error) {
				return []apidex.PackageVersion{
					{PackageID: "demo.core", Version: "1.0.0", Framework: "net8.0"},
				}, nil
			},
			IndexedPathsFn: func(_ context.Context) (map[string]bool, error) {
				return map[string]bool{"/old/path.xml": true}, nil
			},
			EmptyPathsFn: func(_ context.Context) (map[string]bool, error) {
				return nil, nil
			},
			DeleteByPackageIDsFn: func(_ context.Context, ids []string) error {
				purgedCatalog = ids
				return nil
			},
		}

		ix := &indexer.Indexer{
			Parser:  parserReturning(memberFixture("T:Demo.Widget")),
			Index:   writer,
			Catalog: catalog,
		}

		report, err := ix.Run(context.Background(), indexer.RunOptions{CacheRoot: root}, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Plan.Stats.UpdatedPackages)
		assert.Equal(t, []string{"demo.core"}, purgedIndex)
		assert.Equal(t, []string{"demo.core"}, purgedCatalog)
		assert.Equal(t, 1, report.Result.FilesProcessed)
	})

	t.Run("clean run rebuilds from scratch", func(t *testing.T) {
		t.Parallel()

		root, _ := seedCache(t)

		var batches [][]*apidex.MemberInfo
		var commits int
		var indexCleared, catalogCleared bool

		writer := collectingWriter(&batches, &commits)
		writer.DeleteAllFn = func(_ context.Context) error {
			indexCleared = true
			return nil
		}

		catalog := &mock.Catalog{
			RecordFileFn: func(_ context.Context, _ *apidex.IndexedFile) error { return nil },
			DeleteAllFn: func(_ context.Context) error {
				catalogCleared = true
				return nil
			},
		}

		ix := &indexer.Indexer{
			Parser:  parserReturning(memberFixture("T:Demo.Widget")),
			Index:   writer,
			Catalog: catalog,
		}

		report, err := ix.Run(context.Background(), indexer.RunOptions{CacheRoot: root, Clean: true}, nil)
		require.NoError(t, err)

		assert.True(t, indexCleared)
		assert.True(t, catalogCleared)
		assert.Equal(t, 1, report.Result.FilesProcessed)
	})
}
