package apidex

import (
	"context"
	"time"
)

// IndexWriter mutates the persistent inverted index. A single index instance
// does not support concurrent writers: it is opened, mutated by one logical
// operation, and committed before being reopened elsewhere. Nothing is
// guaranteed visible to queries until Commit.
type IndexWriter interface {
	// Add queues one document built from a member record.
	Add(ctx context.Context, member *MemberInfo) error

	// AddBatch queues many documents.
	AddBatch(ctx context.Context, members []*MemberInfo) error

	// DeleteByPackageIDs purges every document whose packageId field matches
	// one of the given identifiers.
	DeleteByPackageIDs(ctx context.Context, ids []string) error

	// DeleteAll removes every document from the index.
	DeleteAll(ctx context.Context) error

	// Commit flushes queued mutations as a durability checkpoint.
	Commit(ctx context.Context) error

	// DocCount returns the number of committed documents.
	DocCount() (uint64, error)

	// Stats reports document count, field count, size on disk and
	// last-modified time.
	Stats() (IndexStats, error)

	// Close releases the index. Pending uncommitted mutations are discarded.
	Close() error
}

// SearchService provides read-only queries over a committed index. It never
// mutates the index and always observes the last committed state.
type SearchService interface {
	// SearchByName matches the name field. Wildcard characters (* and ?)
	// are honored only when typed by the caller; none are injected.
	SearchByName(ctx context.Context, query string, max int) (*QueryResult, error)

	// SearchByContent runs a full boolean/phrase/fuzzy query over the
	// content field. A syntactically invalid query is an EINVALID error,
	// never a silent empty result.
	SearchByContent(ctx context.Context, query string, max int) (*QueryResult, error)

	// Exact-or-wildcard matches on the respective keyword fields.
	SearchByNamespace(ctx context.Context, pattern string, max int) (*QueryResult, error)
	SearchByAssembly(ctx context.Context, pattern string, max int) (*QueryResult, error)
	SearchByPackage(ctx context.Context, pattern string, max int) (*QueryResult, error)

	// SearchByNamespacePattern is the always-wildcard-capable namespace
	// search, distinct from the exact-leaning SearchByNamespace.
	SearchByNamespacePattern(ctx context.Context, pattern string, max int) (*QueryResult, error)

	// SearchWithFilters combines a name pattern with optional member-type,
	// namespace and assembly filters, ANDed together. A name pattern with
	// no wildcard characters is wrapped as *pattern* at this entry point
	// only.
	SearchWithFilters(ctx context.Context, filter SearchFilter) (*QueryResult, error)

	// GetByID looks up the id keyword field. Returns ENOTFOUND when no
	// document matches.
	GetByID(ctx context.Context, id string) (*MemberInfo, error)

	// GetByExceptionType matches documented exception types. Leading
	// wildcards (*Exception) are supported on this query only; when the
	// pattern has no dot it is also compared against simple type names.
	GetByExceptionType(ctx context.Context, pattern string, max int) (*QueryResult, error)

	// GetByParameterCount returns methods whose parameter count lies in
	// [min, max], sorted by the count descending.
	GetByParameterCount(ctx context.Context, min, max, limit int) (*QueryResult, error)

	// GetComplexMethods returns methods with cyclomatic complexity at or
	// above minComplexity, sorted by the metric descending.
	GetComplexMethods(ctx context.Context, minComplexity, limit int) (*QueryResult, error)

	// SearchByCodeExample searches text restricted to members that carry at
	// least one code example.
	SearchByCodeExample(ctx context.Context, pattern string, max int) (*QueryResult, error)

	// GetMethodsWithExamples lists members carrying code examples.
	GetMethodsWithExamples(ctx context.Context, max int) (*QueryResult, error)

	// SearchByDeclaringType enumerates members declared by the given type.
	SearchByDeclaringType(ctx context.Context, fullTypeName string, max int) (*QueryResult, error)

	// GetTypeMembers is the fallback used when the declaringType field
	// lookup yields nothing (legacy documents without that field). It
	// re-derives membership from fullName prefix matching.
	GetTypeMembers(ctx context.Context, fullTypeName string, max int) (*QueryResult, error)

	// Type listings restricted to memberType == Type.
	ListTypesFromPackage(ctx context.Context, pattern string, max int) (*QueryResult, error)
	ListTypesFromAssembly(ctx context.Context, pattern string, max int) (*QueryResult, error)

	// Suggest re-runs a failed query with a fuzzy suffix for "did you mean"
	// suggestions. Failures in the fuzzy path are swallowed: the result is
	// an empty list, never an error.
	Suggest(ctx context.Context, query string, max int) []string

	// Stats reports index statistics.
	Stats() (IndexStats, error)
}

// SearchFilter is the input to SearchWithFilters. Empty fields are unused.
type SearchFilter struct {
	NamePattern      string
	MemberType       MemberType
	NamespacePattern string
	AssemblyPattern  string
	Max              int
}

// PackageVersion identifies one indexed package+version+framework triple.
// Framework may be empty for documents indexed before framework attribution.
type PackageVersion struct {
	PackageID string `json:"packageId"`
	Version   string `json:"version"`
	Framework string `json:"framework,omitempty"`
}

// IndexedFile is one XML file the catalog knows about.
type IndexedFile struct {
	Path            string    `json:"path"`
	ContentHash     string    `json:"contentHash"`
	PackageID       string    `json:"packageId,omitempty"`
	PackageVersion  string    `json:"packageVersion,omitempty"`
	TargetFramework string    `json:"targetFramework,omitempty"`
	MemberCount     int       `json:"memberCount"`
	IndexedAt       time.Time `json:"indexedAt"`
}

// Catalog tracks index state used for incremental reindexing: which XML
// files have been indexed, under which package/version/framework, and which
// files parsed successfully to zero members (so they are not retried every
// run).
type Catalog interface {
	// RecordFile upserts the catalog row for one indexed XML file.
	// MemberCount zero marks the file as known-empty.
	RecordFile(ctx context.Context, f *IndexedFile) error

	// IndexedPackageVersions returns the package -> versions map currently
	// known to the index.
	IndexedPackageVersions(ctx context.Context) (map[string][]string, error)

	// IndexedPackageVersionsWithFramework returns the full triples.
	IndexedPackageVersionsWithFramework(ctx context.Context) ([]PackageVersion, error)

	// IndexedPaths returns every XML path recorded with at least one member.
	IndexedPaths(ctx context.Context) (map[string]bool, error)

	// EmptyPaths returns every XML path that parsed to zero members.
	EmptyPaths(ctx context.Context) (map[string]bool, error)

	// FindFile returns the catalog row for a path.
	// Returns ENOTFOUND if the path is unknown.
	FindFile(ctx context.Context, path string) (*IndexedFile, error)

	// DeleteByPackageIDs removes catalog rows for the given package IDs.
	DeleteByPackageIDs(ctx context.Context, ids []string) error

	// DeleteAll clears the catalog.
	DeleteAll(ctx context.Context) error
}
