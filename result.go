package apidex

import "time"

// MaxIndexingErrors bounds the number of per-file error strings retained in
// an IndexingResult. Further failures are still counted.
const MaxIndexingErrors = 100

// IndexingResult is the outcome of a batch indexing run.
//
// File-level failures are recorded as human-readable strings in Errors and
// never abort the batch. A canceled run reports the work completed so far.
type IndexingResult struct {
	RunID string `json:"runId"`

	SuccessfulDocuments int `json:"successfulDocuments"`
	FailedDocuments     int `json:"failedDocuments"`
	FilesProcessed      int `json:"filesProcessed"`
	FilesFailed         int `json:"filesFailed"`
	EmptyFiles          int `json:"emptyFiles"`

	BytesProcessed int64         `json:"bytesProcessed"`
	Elapsed        time.Duration `json:"elapsed"`
	DocsPerSecond  float64       `json:"docsPerSecond"`
	MBPerSecond    float64       `json:"mbPerSecond"`

	// Durability checkpoint latency for the final commit.
	CommitLatency time.Duration `json:"commitLatency"`

	// Bounded list of per-file failure descriptions.
	Errors []string `json:"errors,omitempty"`

	// True when the run was interrupted by cancellation. Files already
	// committed remain indexed.
	Canceled bool `json:"canceled,omitempty"`
}

// AddError records a file-level failure description, keeping the list bounded.
func (r *IndexingResult) AddError(msg string) {
	if len(r.Errors) < MaxIndexingErrors {
		r.Errors = append(r.Errors, msg)
	}
}

// Finish computes derived throughput figures from the accumulated counters.
func (r *IndexingResult) Finish(elapsed time.Duration) {
	r.Elapsed = elapsed
	if secs := elapsed.Seconds(); secs > 0 {
		r.DocsPerSecond = float64(r.SuccessfulDocuments) / secs
		r.MBPerSecond = float64(r.BytesProcessed) / (1024 * 1024) / secs
	}
}

// IndexStats describes the persisted index for the statistics query.
type IndexStats struct {
	DocumentCount uint64    `json:"documentCount"`
	FieldCount    int       `json:"fieldCount"`
	SizeBytes     int64     `json:"sizeBytes"`
	LastModified  time.Time `json:"lastModified,omitzero"`
}

// QueryResult is the metadata envelope every search operation returns. It is
// the stable contract any output formatter (table/JSON) renders from.
type QueryResult struct {
	Members []*MemberInfo `json:"members"`

	// Total matches in the index, which may exceed len(Members).
	Total uint64 `json:"total"`

	// Distinct assemblies and packages touched by the returned members.
	Assemblies []string `json:"assemblies,omitempty"`
	Packages   []string `json:"packages,omitempty"`

	Query     string        `json:"query"`
	QueryType string        `json:"queryType"`
	Duration  time.Duration `json:"duration"`

	Index IndexStats `json:"index"`
}

// Collect fills the distinct assembly/package lists from the result members,
// preserving first-seen order.
func (q *QueryResult) Collect() {
	seenAsm := make(map[string]bool)
	seenPkg := make(map[string]bool)
	for _, m := range q.Members {
		if m.Assembly != "" && !seenAsm[m.Assembly] {
			seenAsm[m.Assembly] = true
			q.Assemblies = append(q.Assemblies, m.Assembly)
		}
		if m.PackageID != "" && !seenPkg[m.PackageID] {
			seenPkg[m.PackageID] = true
			q.Packages = append(q.Packages, m.PackageID)
		}
	}
}
