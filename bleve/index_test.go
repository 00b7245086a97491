package bleve_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/bleve"
)

// fixtureMembers is a small but representative corpus: a type, methods with
// parameters, exceptions and examples, a property, and members from a second
// package for purge tests.
func fixtureMembers() []*apidex.MemberInfo {
	return []*apidex.MemberInfo{
		{
			ID:         "T:Demo.Widget",
			MemberType: apidex.MemberTypeType,
			Name:       "Widget",
			FullName:   "Demo.Widget",
			Namespace:  "Demo",
			Assembly:   "Demo.Core",
			Summary:    "A configurable widget.",
			PackageID:  "demo.core",
		},
		{
			ID:            "M:Demo.Widget.Parse(System.String,System.Int32)",
			MemberType:    apidex.MemberTypeMethod,
			Name:          "Parse",
			FullName:      "Demo.Widget.Parse",
			Namespace:     "Demo",
			Assembly:      "Demo.Core",
			DeclaringType: "Demo.Widget",
			Summary:       "Parses the input if it is valid, otherwise throws.",
			Parameters: []apidex.ParameterInfo{
				{Name: "input", Type: "System.String", Position: 0},
				{Name: "limit", Type: "System.Int32", Position: 1},
			},
			Exceptions: []apidex.ExceptionInfo{
				{Type: "System.FormatException", Condition: "input is not well formed"},
			},
			CodeExamples: []apidex.CodeExample{
				{Code: "var w = Widget.Parse(\"a\", 1);", Language: "csharp"},
			},
			Complexity: &apidex.ComplexityMetrics{ParameterCount: 2, CyclomaticComplexity: 4},
			PackageID:  "demo.core",
		},
		{
			ID:            "M:Demo.Widget.Reset",
			MemberType:    apidex.MemberTypeMethod,
			Name:          "Reset",
			FullName:      "Demo.Widget.Reset",
			Namespace:     "Demo",
			Assembly:      "Demo.Core",
			DeclaringType: "Demo.Widget",
			Summary:       "Resets the widget.",
			Complexity:    &apidex.ComplexityMetrics{CyclomaticComplexity: 1},
			PackageID:     "demo.core",
		},
		{
			ID:            "P:Demo.Widget.Name",
			MemberType:    apidex.MemberTypeProperty,
			Name:          "Name",
			FullName:      "Demo.Widget.Name",
			Namespace:     "Demo",
			Assembly:      "Demo.Core",
			DeclaringType: "Demo.Widget",
			Summary:       "Gets the widget name.",
			ReturnType:    "System.String",
			PackageID:     "demo.core",
		},
		{
			ID:         "T:Other.Tools.Helper",
			MemberType: apidex.MemberTypeType,
			Name:       "Helper",
			FullName:   "Other.Tools.Helper",
			Namespace:  "Other.Tools",
			Assembly:   "Other.Tools",
			Summary:    "Assorted helpers.",
			PackageID:  "other.tools",
		},
	}
}

// newTestIndex builds, commits and returns a populated index in a temp dir.
func newTestIndex(t *testing.T) (*bleve.Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.bleve")
	ix, err := bleve.Open(path, true)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })

	ctx := context.Background()
	require.NoError(t, ix.AddBatch(ctx, fixtureMembers()))
	require.NoError(t, ix.Commit(ctx))
	return ix, path
}

func TestIndex_AddAndCount(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIndex(t)
	n, err := ix.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(5), n)
}

func TestIndex_CommitVisibility(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bleve")
	ix, err := bleve.Open(path, true)
	require.NoError(t, err)
	defer ix.Close()

	ctx := context.Background()
	require.NoError(t, ix.Add(ctx, fixtureMembers()[0]))

	// Uncommitted documents are not visible.
	n, err := ix.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)

	require.NoError(t, ix.Commit(ctx))
	n, err = ix.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)
}

func TestIndex_DeleteByPackageIDs(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.DeleteByPackageIDs(ctx, []string{"demo.core"}))
	require.NoError(t, ix.Commit(ctx))

	n, err := ix.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(1), n, "only the other.tools document should remain")
}

func TestIndex_DeleteAll(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIndex(t)
	ctx := context.Background()

	require.NoError(t, ix.DeleteAll(ctx))
	n, err := ix.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)

	// The rebuilt index accepts new documents.
	require.NoError(t, ix.Add(ctx, fixtureMembers()[0]))
	require.NoError(t, ix.Commit(ctx))
	n, err = ix.DocCount()
	require.NoError(t, err)
	require.Equal(t, uint64(1), n)
}

func TestIndex_WriteLockConflict(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bleve")
	ix, err := bleve.Open(path, true)
	require.NoError(t, err)
	defer ix.Close()

	_, err = bleve.Open(path, true)
	require.Error(t, err)
	require.Equal(t, apidex.ECONFLICT, apidex.ErrorCode(err))

	// The failed attempt must leave the first writer's lock in place.
	_, err = bleve.Open(path, true)
	require.Equal(t, apidex.ECONFLICT, apidex.ErrorCode(err))
}

func TestIndex_LockReleasedOnClose(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bleve")
	ix, err := bleve.Open(path, true)
	require.NoError(t, err)
	require.NoError(t, ix.Close())

	ix2, err := bleve.Open(path, true)
	require.NoError(t, err)
	require.NoError(t, ix2.Close())
}

func TestIndex_Stats(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIndex(t)
	stats, err := ix.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(5), stats.DocumentCount)
	require.Greater(t, stats.FieldCount, 0)
	require.Greater(t, stats.SizeBytes, int64(0))
	require.WithinDuration(t, time.Now(), stats.LastModified, time.Minute)
}

func TestIndex_AddValidation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "index.bleve")
	ix, err := bleve.Open(path, true)
	require.NoError(t, err)
	defer ix.Close()

	err = ix.Add(context.Background(), &apidex.MemberInfo{Name: "NoID"})
	require.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
}
