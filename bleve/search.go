package bleve

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/apidex/apidex"
)

// defaultMaxResults caps searches that pass a non-positive limit.
const defaultMaxResults = 50

// Ensure SearchService implements apidex.SearchService.
var _ apidex.SearchService = (*SearchService)(nil)

// SearchService provides read-only queries over a committed index. It never
// mutates the index; it observes the state as of the last commit before it
// was opened.
type SearchService struct {
	idx  bleve.Index
	path string
}

// OpenSearch opens a committed index for queries. The session observes the
// state as of the open and does not take the write lock.
func OpenSearch(path string) (*SearchService, error) {
	if readSchemaVersion(path) != indexSchemaVersion {
		return nil, apidex.Errorf(apidex.ENOTFOUND,
			"no index found at %s; run 'apidex index' first", path)
	}
	idx, err := bleve.Open(path)
	if err != nil {
		return nil, apidex.Errorf(apidex.EINTERNAL, "index at %s will not open: %v", path, err)
	}
	return &SearchService{idx: idx, path: path}, nil
}

// NewSearchService wraps an already-open writer index for querying, used
// when one command both writes and verifies.
func NewSearchService(ix *Index) *SearchService {
	return &SearchService{idx: ix.idx, path: ix.path}
}

// Close releases the read session.
func (s *SearchService) Close() error {
	return s.idx.Close()
}

// Stats reports index statistics.
func (s *SearchService) Stats() (apidex.IndexStats, error) {
	return readStats(s.idx, s.path)
}

// SearchByName matches the name field. Wildcard characters are honored only
// when typed by the caller; a plain query is an exact-or-prefix match.
func (s *SearchService) SearchByName(ctx context.Context, q string, max int) (*apidex.QueryResult, error) {
	var nameQuery query.Query
	if hasWildcard(q) {
		wq, err := wildcardQuery(fieldNameExact, q, false)
		if err != nil {
			return nil, err
		}
		nameQuery = wq
	} else {
		pq := bleve.NewPrefixQuery(strings.ToLower(q))
		pq.SetField(fieldNameExact)
		nameQuery = pq
	}
	return s.run(ctx, nameQuery, "name", q, max, nil)
}

// SearchByContent runs the full query grammar (boolean operators, quoted
// phrases, trailing ~ fuzziness, wildcards) over the content field. A
// malformed query is an EINVALID error so callers can distinguish "no
// matches" from "bad query".
func (s *SearchService) SearchByContent(ctx context.Context, q string, max int) (*apidex.QueryResult, error) {
	qs := bleve.NewQueryStringQuery(q)
	if _, err := qs.Parse(); err != nil {
		return nil, apidex.Errorf(apidex.EINVALID, "invalid query %q: %v", q, err)
	}
	return s.run(ctx, qs, "content", q, max, nil)
}

// SearchByNamespace matches the namespace keyword field exactly, or by
// wildcard when the caller typed one.
func (s *SearchService) SearchByNamespace(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	kq, err := keywordQuery(fieldNamespace, pattern)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, kq, "namespace", pattern, max, nil)
}

// SearchByNamespacePattern is the always-wildcard-capable namespace search:
// a pattern without wildcards is treated as a prefix, so "System" finds
// "System.IO" members too.
func (s *SearchService) SearchByNamespacePattern(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	var nsQuery query.Query
	if hasWildcard(pattern) {
		wq, err := wildcardQuery(fieldNamespace, pattern, false)
		if err != nil {
			return nil, err
		}
		nsQuery = wq
	} else {
		pq := bleve.NewPrefixQuery(strings.ToLower(pattern))
		pq.SetField(fieldNamespace)
		nsQuery = pq
	}
	return s.run(ctx, nsQuery, "namespacePattern", pattern, max, nil)
}

// SearchByAssembly matches the assembly keyword field.
func (s *SearchService) SearchByAssembly(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	kq, err := keywordQuery(fieldAssembly, pattern)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, kq, "assembly", pattern, max, nil)
}

// SearchByPackage matches the packageId keyword field.
func (s *SearchService) SearchByPackage(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	kq, err := keywordQuery(fieldPackageID, pattern)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, kq, "package", pattern, max, nil)
}

// SearchWithFilters combines a name search with optional member-type,
// namespace and assembly filters, ANDed together. A name pattern without
// wildcards is wrapped as *pattern* here and only here.
func (s *SearchService) SearchWithFilters(ctx context.Context, filter apidex.SearchFilter) (*apidex.QueryResult, error) {
	namePattern := filter.NamePattern
	if strings.HasPrefix(namePattern, "*") || strings.HasPrefix(namePattern, "?") {
		return nil, apidex.Errorf(apidex.EINVALID,
			"leading wildcards are not supported for this query: %q", namePattern)
	}
	if !hasWildcard(namePattern) {
		namePattern = "*" + namePattern + "*"
	}
	nameQuery, err := wildcardQuery(fieldNameExact, namePattern, true)
	if err != nil {
		return nil, err
	}

	conj := bleve.NewConjunctionQuery(nameQuery)

	if filter.MemberType != "" {
		tq := bleve.NewTermQuery(strings.ToLower(string(filter.MemberType)))
		tq.SetField(fieldMemberType)
		conj.AddQuery(tq)
	}
	if filter.NamespacePattern != "" {
		nsq, err := keywordQuery(fieldNamespace, filter.NamespacePattern)
		if err != nil {
			return nil, err
		}
		conj.AddQuery(nsq)
	}
	if filter.AssemblyPattern != "" {
		aq, err := keywordQuery(fieldAssembly, filter.AssemblyPattern)
		if err != nil {
			return nil, err
		}
		conj.AddQuery(aq)
	}

	return s.run(ctx, conj, "filtered", filter.NamePattern, filter.Max, nil)
}

// GetByID returns the single member with the given doc-comment ID.
func (s *SearchService) GetByID(ctx context.Context, id string) (*apidex.MemberInfo, error) {
	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	req.Size = 1
	req.Fields = []string{fieldData}

	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(res.Hits) == 0 {
		return nil, apidex.Errorf(apidex.ENOTFOUND, "member %q not found", id)
	}
	return decodeMember(res.Hits[0].Fields)
}

// GetByExceptionType matches documented exception types. This is the one
// query where leading wildcards are allowed; the cost is bounded by
// restricting them to the dedicated exception fields. A pattern without a
// dot also matches simple (unqualified) type names.
func (s *SearchService) GetByExceptionType(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	var full query.Query
	if hasWildcard(pattern) {
		wq, err := wildcardQuery(fieldExceptionType, pattern, true)
		if err != nil {
			return nil, err
		}
		full = wq
	} else {
		tq := bleve.NewTermQuery(strings.ToLower(pattern))
		tq.SetField(fieldExceptionType)
		full = tq
	}

	// Fully-qualified match first; simple-name fallback only for undotted
	// patterns.
	if strings.Contains(pattern, ".") {
		return s.run(ctx, full, "exception", pattern, max, nil)
	}

	var simple query.Query
	if hasWildcard(pattern) {
		wq, err := wildcardQuery(fieldExceptionSimple, pattern, true)
		if err != nil {
			return nil, err
		}
		simple = wq
	} else {
		tq := bleve.NewTermQuery(strings.ToLower(pattern))
		tq.SetField(fieldExceptionSimple)
		simple = tq
	}

	return s.run(ctx, bleve.NewDisjunctionQuery(full, simple), "exception", pattern, max, nil)
}

// GetByParameterCount returns methods whose parameter count lies in
// [min, max], sorted by the count descending with index order as tiebreak.
func (s *SearchService) GetByParameterCount(ctx context.Context, min, max, limit int) (*apidex.QueryResult, error) {
	if min > max {
		return nil, apidex.Errorf(apidex.EINVALID, "parameter count range %d..%d is inverted", min, max)
	}
	q := numericRange(fieldParameterCount, float64(min), float64(max))
	return s.run(ctx, s.methodsOnly(q), "parameterCount", rangeLabel(min, max), limit,
		[]string{"-" + fieldParameterCount, "_id"})
}

// GetComplexMethods returns methods at or above the given cyclomatic
// complexity, most complex first.
func (s *SearchService) GetComplexMethods(ctx context.Context, minComplexity, limit int) (*apidex.QueryResult, error) {
	minF := float64(minComplexity)
	q := bleve.NewNumericRangeInclusiveQuery(&minF, nil, boolPtr(true), nil)
	q.SetField(fieldComplexity)
	return s.run(ctx, s.methodsOnly(q), "complexity", rangeLabel(minComplexity, -1), limit,
		[]string{"-" + fieldComplexity, "_id"})
}

// SearchByCodeExample searches members that carry code examples for the
// given pattern in their example text.
func (s *SearchService) SearchByCodeExample(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	var textQuery query.Query
	if hasWildcard(pattern) {
		wq, err := wildcardQuery(fieldCodeExample, pattern, false)
		if err != nil {
			return nil, err
		}
		textQuery = wq
	} else {
		mq := bleve.NewMatchQuery(pattern)
		mq.SetField(fieldCodeExample)
		textQuery = mq
	}

	conj := bleve.NewConjunctionQuery(hasExamplesQuery(), textQuery)
	return s.run(ctx, conj, "codeExample", pattern, max, nil)
}

// GetMethodsWithExamples lists members carrying at least one code example.
func (s *SearchService) GetMethodsWithExamples(ctx context.Context, max int) (*apidex.QueryResult, error) {
	return s.run(ctx, hasExamplesQuery(), "hasExamples", "", max, nil)
}

// SearchByDeclaringType enumerates members declared by the given type.
func (s *SearchService) SearchByDeclaringType(ctx context.Context, fullTypeName string, max int) (*apidex.QueryResult, error) {
	tq := bleve.NewTermQuery(strings.ToLower(fullTypeName))
	tq.SetField(fieldDeclaringType)
	return s.run(ctx, tq, "declaringType", fullTypeName, max, nil)
}

// GetTypeMembers re-derives type membership from fullName prefixes. It is
// the fallback for documents indexed before the declaringType field existed.
func (s *SearchService) GetTypeMembers(ctx context.Context, fullTypeName string, max int) (*apidex.QueryResult, error) {
	pq := bleve.NewPrefixQuery(strings.ToLower(fullTypeName) + ".")
	pq.SetField(fieldFullNameExact)
	return s.run(ctx, pq, "typeMembers", fullTypeName, max, nil)
}

// ListTypesFromPackage lists types (only) present in matching packages.
func (s *SearchService) ListTypesFromPackage(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	kq, err := keywordQuery(fieldPackageID, pattern)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.typesOnly(kq), "packageTypes", pattern, max, nil)
}

// ListTypesFromAssembly lists types (only) present in matching assemblies.
func (s *SearchService) ListTypesFromAssembly(ctx context.Context, pattern string, max int) (*apidex.QueryResult, error) {
	kq, err := keywordQuery(fieldAssembly, pattern)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.typesOnly(kq), "assemblyTypes", pattern, max, nil)
}

// Suggest reruns a query with a fuzzy suffix and returns distinct member
// names as "did you mean" candidates. This path is best-effort: every
// failure yields an empty list, never an error.
func (s *SearchService) Suggest(ctx context.Context, q string, max int) []string {
	term := strings.ToLower(strings.Trim(q, "*?~ "))
	if term == "" {
		return nil
	}

	fq := bleve.NewFuzzyQuery(term)
	fq.SetField(fieldName)

	req := bleve.NewSearchRequest(fq)
	if max <= 0 {
		max = 5
	}
	req.Size = max * 2
	req.Fields = []string{fieldData}

	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil
	}

	var suggestions []string
	seen := make(map[string]bool)
	for _, hit := range res.Hits {
		m, err := decodeMember(hit.Fields)
		if err != nil || seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		suggestions = append(suggestions, m.Name)
		if len(suggestions) == max {
			break
		}
	}
	return suggestions
}

// run executes a query and assembles the result envelope.
func (s *SearchService) run(ctx context.Context, q query.Query, queryType, raw string, max int, sort []string) (*apidex.QueryResult, error) {
	if max <= 0 {
		max = defaultMaxResults
	}

	req := bleve.NewSearchRequest(q)
	req.Size = max
	req.Fields = []string{fieldData}
	if len(sort) > 0 {
		req.SortBy(sort)
	}

	begin := time.Now()
	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &apidex.QueryResult{
		Query:     raw,
		QueryType: queryType,
		Total:     res.Total,
		Duration:  time.Since(begin),
	}

	for _, hit := range res.Hits {
		m, err := decodeMember(hit.Fields)
		if err != nil {
			return nil, err
		}
		result.Members = append(result.Members, m)
	}
	result.Collect()

	if stats, err := s.Stats(); err == nil {
		result.Index = stats
	}

	return result, nil
}

func (s *SearchService) methodsOnly(q query.Query) query.Query {
	tq := bleve.NewTermQuery(strings.ToLower(string(apidex.MemberTypeMethod)))
	tq.SetField(fieldMemberType)
	return bleve.NewConjunctionQuery(q, tq)
}

func (s *SearchService) typesOnly(q query.Query) query.Query {
	tq := bleve.NewTermQuery(strings.ToLower(string(apidex.MemberTypeType)))
	tq.SetField(fieldMemberType)
	return bleve.NewConjunctionQuery(q, tq)
}

func hasExamplesQuery() query.Query {
	bq := bleve.NewBoolFieldQuery(true)
	bq.SetField(fieldHasExamples)
	return bq
}

func hasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

// wildcardQuery builds a wildcard query against a keyword field. Leading
// wildcards are disabled by default for performance and enabled only where
// allowLeading is set (the exception-type fields).
func wildcardQuery(field, pattern string, allowLeading bool) (query.Query, error) {
	if !allowLeading && (strings.HasPrefix(pattern, "*") || strings.HasPrefix(pattern, "?")) {
		return nil, apidex.Errorf(apidex.EINVALID,
			"leading wildcards are not supported for this query: %q", pattern)
	}
	wq := bleve.NewWildcardQuery(strings.ToLower(pattern))
	wq.SetField(field)
	return wq, nil
}

// keywordQuery matches a keyword field exactly, or by wildcard when the
// pattern contains one.
func keywordQuery(field, pattern string) (query.Query, error) {
	if hasWildcard(pattern) {
		return wildcardQuery(field, pattern, false)
	}
	tq := bleve.NewTermQuery(strings.ToLower(pattern))
	tq.SetField(field)
	return tq, nil
}

func numericRange(field string, min, max float64) query.Query {
	inclusive := true
	q := bleve.NewNumericRangeInclusiveQuery(&min, &max, &inclusive, &inclusive)
	q.SetField(field)
	return q
}

func boolPtr(b bool) *bool { return &b }

func rangeLabel(min, max int) string {
	if max < 0 {
		return ">=" + strconv.Itoa(min)
	}
	return strconv.Itoa(min) + ".." + strconv.Itoa(max)
}
