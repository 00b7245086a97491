// Package slog provides logging decorators for apidex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/apidex/apidex"
)

// Ensure LoggingSearchService implements apidex.SearchService.
var _ apidex.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with per-query logging.
type LoggingSearchService struct {
	next   apidex.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next apidex.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// logQuery logs one completed query with its hit count and duration.
func (s *LoggingSearchService) logQuery(op, query string, begin time.Time, res *apidex.QueryResult, err error) {
	attrs := []any{
		"query", query,
		"duration", time.Since(begin),
		"err", err,
	}
	if res != nil {
		attrs = append(attrs, "hits", len(res.Members), "total", res.Total)
	}
	s.logger.Info(op, attrs...)
}

func (s *LoggingSearchService) SearchByName(ctx context.Context, query string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by name", query, begin, res, err) }(time.Now())
	return s.next.SearchByName(ctx, query, max)
}

func (s *LoggingSearchService) SearchByContent(ctx context.Context, query string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by content", query, begin, res, err) }(time.Now())
	return s.next.SearchByContent(ctx, query, max)
}

func (s *LoggingSearchService) SearchByNamespace(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by namespace", pattern, begin, res, err) }(time.Now())
	return s.next.SearchByNamespace(ctx, pattern, max)
}

func (s *LoggingSearchService) SearchByNamespacePattern(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by namespace pattern", pattern, begin, res, err) }(time.Now())
	return s.next.SearchByNamespacePattern(ctx, pattern, max)
}

func (s *LoggingSearchService) SearchByAssembly(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by assembly", pattern, begin, res, err) }(time.Now())
	return s.next.SearchByAssembly(ctx, pattern, max)
}

func (s *LoggingSearchService) SearchByPackage(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by package", pattern, begin, res, err) }(time.Now())
	return s.next.SearchByPackage(ctx, pattern, max)
}

func (s *LoggingSearchService) SearchWithFilters(ctx context.Context, filter apidex.SearchFilter) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("filtered search", filter.NamePattern, begin, res, err) }(time.Now())
	return s.next.SearchWithFilters(ctx, filter)
}

func (s *LoggingSearchService) GetByID(ctx context.Context, id string) (m *apidex.MemberInfo, err error) {
	defer func(begin time.Time) {
		s.logger.Info("get by id", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.GetByID(ctx, id)
}

func (s *LoggingSearchService) GetByExceptionType(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by exception type", pattern, begin, res, err) }(time.Now())
	return s.next.GetByExceptionType(ctx, pattern, max)
}

func (s *LoggingSearchService) GetByParameterCount(ctx context.Context, min, max, limit int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by parameter count", "", begin, res, err) }(time.Now())
	return s.next.GetByParameterCount(ctx, min, max, limit)
}

func (s *LoggingSearchService) GetComplexMethods(ctx context.Context, minComplexity, limit int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by complexity", "", begin, res, err) }(time.Now())
	return s.next.GetComplexMethods(ctx, minComplexity, limit)
}

func (s *LoggingSearchService) SearchByCodeExample(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by code example", pattern, begin, res, err) }(time.Now())
	return s.next.SearchByCodeExample(ctx, pattern, max)
}

func (s *LoggingSearchService) GetMethodsWithExamples(ctx context.Context, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("list members with examples", "", begin, res, err) }(time.Now())
	return s.next.GetMethodsWithExamples(ctx, max)
}

func (s *LoggingSearchService) SearchByDeclaringType(ctx context.Context, fullTypeName string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("search by declaring type", fullTypeName, begin, res, err) }(time.Now())
	return s.next.SearchByDeclaringType(ctx, fullTypeName, max)
}

func (s *LoggingSearchService) GetTypeMembers(ctx context.Context, fullTypeName string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("list type members", fullTypeName, begin, res, err) }(time.Now())
	return s.next.GetTypeMembers(ctx, fullTypeName, max)
}

func (s *LoggingSearchService) ListTypesFromPackage(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("list types from package", pattern, begin, res, err) }(time.Now())
	return s.next.ListTypesFromPackage(ctx, pattern, max)
}

func (s *LoggingSearchService) ListTypesFromAssembly(ctx context.Context, pattern string, max int) (res *apidex.QueryResult, err error) {
	defer func(begin time.Time) { s.logQuery("list types from assembly", pattern, begin, res, err) }(time.Now())
	return s.next.ListTypesFromAssembly(ctx, pattern, max)
}

// Suggest delegates to the wrapped service. The fuzzy path never errors, so
// only the outcome size is logged.
func (s *LoggingSearchService) Suggest(ctx context.Context, query string, max int) []string {
	begin := time.Now()
	suggestions := s.next.Suggest(ctx, query, max)
	s.logger.Info("suggest", "query", query, "count", len(suggestions), "duration", time.Since(begin))
	return suggestions
}

// Stats delegates to the wrapped service.
func (s *LoggingSearchService) Stats() (apidex.IndexStats, error) {
	return s.next.Stats()
}
