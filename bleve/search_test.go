package bleve_test

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/bleve"
)

// newTestSearch commits the fixture corpus and reopens it for querying.
func newTestSearch(t *testing.T) *bleve.SearchService {
	t.Helper()
	ix, _ := newTestIndex(t)
	return bleve.NewSearchService(ix)
}

func TestSearch_ByNameExact(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByName(context.Background(), "Parse", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "M:Demo.Widget.Parse(System.String,System.Int32)", res.Members[0].ID)
	require.Equal(t, []string{"Demo.Core"}, res.Assemblies)
	require.Equal(t, []string{"demo.core"}, res.Packages)
}

func TestSearch_ByNameCaseInsensitive(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByName(context.Background(), "parse", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Parse", res.Members[0].Name)
}

func TestSearch_ByNameWildcard(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByName(context.Background(), "Wid*", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Widget", res.Members[0].Name)
}

func TestSearch_ByNameLeadingWildcardRejected(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	_, err := s.SearchByName(context.Background(), "*idget", 10)
	require.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
}

func TestSearch_ByContent(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByContent(context.Background(), "parses", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Parse", res.Members[0].Name)
}

func TestSearch_ByContentInvalidQuery(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	_, err := s.SearchByContent(context.Background(), "name:\"unterminated", 10)
	require.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
}

func TestSearch_ByContentNoMatchesIsNotError(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByContent(context.Background(), "nonexistentterm", 10)
	require.NoError(t, err)
	require.Empty(t, res.Members)
	require.Zero(t, res.Total)
}

func TestSearch_ByNamespace(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByNamespace(context.Background(), "Other.Tools", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Helper", res.Members[0].Name)
}

func TestSearch_ByNamespacePatternPrefix(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)

	// Undotted prefix finds nested namespaces too.
	res, err := s.SearchByNamespacePattern(context.Background(), "Other", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Other.Tools", res.Members[0].Namespace)
}

func TestSearch_WithFilters(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	ctx := context.Background()

	t.Run("auto-wraps plain pattern", func(t *testing.T) {
		res, err := s.SearchWithFilters(ctx, apidex.SearchFilter{NamePattern: "ars", Max: 10})
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
		require.Equal(t, "Parse", res.Members[0].Name)
	})

	t.Run("member type filter", func(t *testing.T) {
		res, err := s.SearchWithFilters(ctx, apidex.SearchFilter{
			NamePattern: "e",
			MemberType:  apidex.MemberTypeType,
			Max:         10,
		})
		require.NoError(t, err)
		for _, m := range res.Members {
			require.Equal(t, apidex.MemberTypeType, m.MemberType)
		}
	})

	t.Run("explicit wildcard pattern is used as-is", func(t *testing.T) {
		res, err := s.SearchWithFilters(ctx, apidex.SearchFilter{NamePattern: "Par*", Max: 10})
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
		require.Equal(t, "Parse", res.Members[0].Name)
	})

	t.Run("rejects leading wildcard from caller", func(t *testing.T) {
		_, err := s.SearchWithFilters(ctx, apidex.SearchFilter{NamePattern: "*arse", Max: 10})
		require.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
	})

	t.Run("namespace filter excludes others", func(t *testing.T) {
		res, err := s.SearchWithFilters(ctx, apidex.SearchFilter{
			NamePattern:      "e",
			NamespacePattern: "Demo",
			Max:              10,
		})
		require.NoError(t, err)
		require.NotEmpty(t, res.Members)
		for _, m := range res.Members {
			require.Equal(t, "Demo", m.Namespace)
		}
	})
}

func TestSearch_GetByID_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	want := fixtureMembers()[1]

	got, err := s.GetByID(context.Background(), want.ID)
	require.NoError(t, err)

	// The stored record survives indexing without loss.
	require.Equal(t, want, got)
}

func TestSearch_GetByID_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	_, err := s.GetByID(context.Background(), "T:No.Such.Type")
	require.Equal(t, apidex.ENOTFOUND, apidex.ErrorCode(err))
}

func TestSearch_GetByExceptionType(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	ctx := context.Background()

	t.Run("fully qualified", func(t *testing.T) {
		res, err := s.GetByExceptionType(ctx, "System.FormatException", 10)
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
		require.Equal(t, "Parse", res.Members[0].Name)
	})

	t.Run("leading wildcard allowed here", func(t *testing.T) {
		res, err := s.GetByExceptionType(ctx, "*FormatException", 10)
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
	})

	t.Run("simple name fallback", func(t *testing.T) {
		res, err := s.GetByExceptionType(ctx, "FormatException", 10)
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
	})

	t.Run("no match", func(t *testing.T) {
		res, err := s.GetByExceptionType(ctx, "ArgumentNullException", 10)
		require.NoError(t, err)
		require.Empty(t, res.Members)
	})
}

// paramCountSearch seeds one method for each parameter count from 0 to 5.
func paramCountSearch(t *testing.T) *bleve.SearchService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.bleve")
	ix, err := bleve.Open(path, true)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() })

	ctx := context.Background()
	var members []*apidex.MemberInfo
	for n := 0; n <= 5; n++ {
		name := "Arity" + strconv.Itoa(n)
		members = append(members, &apidex.MemberInfo{
			ID:         "M:Demo.Methods." + name,
			Name:       name,
			FullName:   "Demo.Methods." + name,
			Namespace:  "Demo",
			MemberType: apidex.MemberTypeMethod,
			Complexity: &apidex.ComplexityMetrics{ParameterCount: n, CyclomaticComplexity: 1},
		})
	}
	require.NoError(t, ix.AddBatch(ctx, members))
	require.NoError(t, ix.Commit(ctx))
	return bleve.NewSearchService(ix)
}

func TestSearch_GetByParameterCount(t *testing.T) {
	t.Parallel()

	s := paramCountSearch(t)
	ctx := context.Background()

	names := func(res *apidex.QueryResult) []string {
		var out []string
		for _, m := range res.Members {
			out = append(out, m.Name)
		}
		return out
	}

	t.Run("range includes both bounds", func(t *testing.T) {
		res, err := s.GetByParameterCount(ctx, 2, 4, 10)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"Arity2", "Arity3", "Arity4"}, names(res))
	})

	t.Run("single count", func(t *testing.T) {
		res, err := s.GetByParameterCount(ctx, 3, 3, 10)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"Arity3"}, names(res))
	})

	t.Run("zero parameter methods", func(t *testing.T) {
		res, err := s.GetByParameterCount(ctx, 0, 0, 10)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"Arity0"}, names(res))
	})

	t.Run("upper tail", func(t *testing.T) {
		res, err := s.GetByParameterCount(ctx, 5, 9, 10)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"Arity5"}, names(res))
	})

	t.Run("full range", func(t *testing.T) {
		res, err := s.GetByParameterCount(ctx, 0, 5, 10)
		require.NoError(t, err)
		require.ElementsMatch(t,
			[]string{"Arity0", "Arity1", "Arity2", "Arity3", "Arity4", "Arity5"},
			names(res))
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := s.GetByParameterCount(ctx, 5, 2, 10)
		require.Equal(t, apidex.EINVALID, apidex.ErrorCode(err))
	})
}

func TestSearch_GetByParameterCount_OnlyMethods(t *testing.T) {
	t.Parallel()

	// Types and properties carry no parameter count fields.
	s := newTestSearch(t)
	res, err := s.GetByParameterCount(context.Background(), 0, 10, 50)
	require.NoError(t, err)
	require.NotEmpty(t, res.Members)
	for _, m := range res.Members {
		require.Equal(t, apidex.MemberTypeMethod, m.MemberType)
	}
}

func TestSearch_GetComplexMethods(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.GetComplexMethods(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Parse", res.Members[0].Name)
	require.Equal(t, 4, res.Members[0].Complexity.CyclomaticComplexity)
}

func TestSearch_CodeExamples(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	ctx := context.Background()

	t.Run("search example text", func(t *testing.T) {
		res, err := s.SearchByCodeExample(ctx, "Widget.Parse", 10)
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
		require.Equal(t, "Parse", res.Members[0].Name)
	})

	t.Run("list members with examples", func(t *testing.T) {
		res, err := s.GetMethodsWithExamples(ctx, 10)
		require.NoError(t, err)
		require.Len(t, res.Members, 1)
		require.NotEmpty(t, res.Members[0].CodeExamples)
	})
}

func TestSearch_DeclaringType(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	ctx := context.Background()

	res, err := s.SearchByDeclaringType(ctx, "Demo.Widget", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 3)

	// The prefix fallback finds the same members minus any whose fullName
	// does not extend the type name.
	res, err = s.GetTypeMembers(ctx, "Demo.Widget", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 3)
}

func TestSearch_ListTypes(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	ctx := context.Background()

	res, err := s.ListTypesFromPackage(ctx, "demo.core", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Widget", res.Members[0].Name)

	res, err = s.ListTypesFromAssembly(ctx, "Other.Tools", 10)
	require.NoError(t, err)
	require.Len(t, res.Members, 1)
	require.Equal(t, "Helper", res.Members[0].Name)
}

func TestSearch_Suggest(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	got := s.Suggest(context.Background(), "Wdget", 5)
	require.Contains(t, got, "Widget")

	// Suggestions never error, even for empty input.
	require.Empty(t, s.Suggest(context.Background(), "", 5))
}

func TestSearch_ResultEnvelope(t *testing.T) {
	t.Parallel()

	s := newTestSearch(t)
	res, err := s.SearchByName(context.Background(), "Widget", 10)
	require.NoError(t, err)
	require.Equal(t, "Widget", res.Query)
	require.Equal(t, "name", res.QueryType)
	require.Equal(t, uint64(1), res.Total)
	require.Equal(t, uint64(5), res.Index.DocumentCount)
}
