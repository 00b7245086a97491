package mock

import (
	"context"

	"github.com/apidex/apidex"
)

var _ apidex.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of apidex.SearchService.
type SearchService struct {
	SearchByNameFn             func(ctx context.Context, query string, max int) (*apidex.QueryResult, error)
	SearchByContentFn          func(ctx context.Context, query string, max int) (*apidex.QueryResult, error)
	SearchByNamespaceFn        func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	SearchByNamespacePatternFn func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	SearchByAssemblyFn         func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	SearchByPackageFn          func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	SearchWithFiltersFn        func(ctx context.Context, filter apidex.SearchFilter) (*apidex.QueryResult, error)
	GetByIDFn                  func(ctx context.Context, id string) (*apidex.MemberInfo, error)
	GetByExceptionTypeFn       func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	GetByParameterCountFn      func(ctx context.Context, min, max, limit int) (*apidex.QueryResult, error)
	GetComplexMethodsFn        func(ctx context.Context, minComplexity, limit int) (*apidex.QueryResult, error)
	SearchByCodeExampleFn      func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	GetMethodsWithExamplesFn   func(ctx context.Context, max int) (*apidex.QueryResult, error)
	SearchByDeclaringTypeFn    func(ctx context.Context, fullTypeName string, max int) (*apidex.QueryResult, error)
	GetTypeMembersFn           func(ctx context.Context, fullTypeName string, max int) (*apidex.QueryResult, error)
	ListTypesFromPackageFn     func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	ListTypesFromAssemblyFn    func(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error)
	SuggestFn                  func(ctx context.Context, query string, max int) []string
	StatsFn                    func() (apidex.IndexStats, error)
}

func (s *SearchService) SearchByName(ctx context.Context, query string, max int) (*apidex.QueryResult, error) {
	return s.SearchByNameFn(ctx, query, max)
}

func (s *SearchService) SearchByContent(ctx context.Context, query string, max int) (*apidex.QueryResult, error) {
	return s.SearchByContentFn(ctx, query, max)
}

func (s *SearchService) SearchByNamespace(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.SearchByNamespaceFn(ctx, pattern, max)
}

func (s *SearchService) SearchByNamespacePattern(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.SearchByNamespacePatternFn(ctx, pattern, max)
}

func (s *SearchService) SearchByAssembly(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.SearchByAssemblyFn(ctx, pattern, max)
}

func (s *SearchService) SearchByPackage(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.SearchByPackageFn(ctx, pattern, max)
}

func (s *SearchService) SearchWithFilters(ctx context.Context, filter apidex.SearchFilter) (*apidex.QueryResult, error) {
	return s.SearchWithFiltersFn(ctx, filter)
}

func (s *SearchService) GetByID(ctx context.Context, id string) (*apidex.MemberInfo, error) {
	return s.GetByIDFn(ctx, id)
}

func (s *SearchService) GetByExceptionType(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.GetByExceptionTypeFn(ctx, pattern, max)
}

func (s *SearchService) GetByParameterCount(ctx context.Context, min, max, limit int) (*apidex.QueryResult, error) {
	return s.GetByParameterCountFn(ctx, min, max, limit)
}

func (s *SearchService) GetComplexMethods(ctx context.Context, minComplexity, limit int) (*apidex.QueryResult, error) {
	return s.GetComplexMethodsFn(ctx, minComplexity, limit)
}

func (s *SearchService) SearchByCodeExample(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.SearchByCodeExampleFn(ctx, pattern, max)
}

func (s *SearchService) GetMethodsWithExamples(ctx context.Context, max int) (*apidex.QueryResult, error) {
	return s.GetMethodsWithExamplesFn(ctx, max)
}

func (s *SearchService) SearchByDeclaringType(ctx context.Context, fullTypeName string, max int) (*apidex.QueryResult, error) {
	return s.SearchByDeclaringTypeFn(ctx, fullTypeName, max)
}

func (s *SearchService) GetTypeMembers(ctx context.Context, fullTypeName string, max int) (*apidex.QueryResult, error) {
	return s.GetTypeMembersFn(ctx, fullTypeName, max)
}

func (s *SearchService) ListTypesFromPackage(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.ListTypesFromPackageFn(ctx, pattern, max)
}

func (s *SearchService) ListTypesFromAssembly(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	return s.ListTypesFromAssemblyFn(ctx, pattern, max)
}

func (s *SearchService) Suggest(ctx context.Context, query string, max int) []string {
	return s.SuggestFn(ctx, query, max)
}

func (s *SearchService) Stats() (apidex.IndexStats, error) {
	return s.StatsFn()
}
