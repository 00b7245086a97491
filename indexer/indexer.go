// Package indexer orchestrates batch indexing of XML documentation files.
// It coordinates parsing, enrichment, index writes, and catalog bookkeeping
// for a set of candidate files.
package indexer

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/enrich"
	"github.com/apidex/apidex/nuget"
)

// Indexer coordinates the indexing of documentation files.
//
// Parsing and enrichment run in parallel across files; index and catalog
// mutations are applied from a single collector goroutine, so the Index and
// Catalog implementations never see concurrent writes.
type Indexer struct {
	Parser      apidex.Parser
	Index       apidex.IndexWriter
	Catalog     apidex.Catalog
	Concurrency int
}

// ProgressEvent reports progress during an indexing run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Members   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting indexing progress.
type ProgressFunc func(event ProgressEvent)

// fileResult holds the outcome of parsing a single XML file.
type fileResult struct {
	position  int
	candidate nuget.Candidate
	members   []*apidex.MemberInfo
	hash      string
	bytes     int64
	err       error
}

// IndexFiles parses and indexes every candidate file, then commits the batch.
//
// File-level failures never abort the run; they are counted and recorded in
// the result. Cancellation stops the run between files, commits nothing
// further, and returns the work completed so far with Canceled set.
func (ix *Indexer) IndexFiles(ctx context.Context, candidates []nuget.Candidate, progress ProgressFunc) (*apidex.IndexingResult, error) {
	start := time.Now()
	result := &apidex.IndexingResult{RunID: uuid.New().String()}

	if len(candidates) == 0 {
		result.Finish(time.Since(start))
		return result, nil
	}

	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan fileResult, len(candidates))

	var completed atomic.Int64
	total := len(candidates)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, c := range candidates {
			i, c := i, c
			g.Go(func() error {
				resultCh <- ix.processFile(gctx, i, c)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Apply results serially. Order of arrival does not matter: every file
	// carries its own provenance and documents are keyed by member ID.
	for fr := range resultCh {
		completed.Add(1)

		if fr.err != nil {
			if errors.Is(fr.err, context.Canceled) || errors.Is(fr.err, context.DeadlineExceeded) {
				result.Canceled = true
				continue
			}
			result.FilesFailed++
			result.AddError(fmt.Sprintf("%s: %v", fr.candidate.Path, fr.err))
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Path:      fr.candidate.Path,
					Error:     fr.err,
				})
			}
			continue
		}

		if err := ix.applyFile(ctx, fr, result); err != nil {
			result.FilesFailed++
			result.AddError(fmt.Sprintf("%s: %v", fr.candidate.Path, err))
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Path:      fr.candidate.Path,
					Error:     err,
				})
			}
			continue
		}

		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Path:      fr.candidate.Path,
				Members:   len(fr.members),
			})
		}
	}

	if ctx.Err() != nil {
		result.Canceled = true
	}

	// One durability checkpoint for the whole run.
	commitStart := time.Now()
	if err := ix.Index.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit index: %w", err)
	}
	result.CommitLatency = time.Since(commitStart)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	result.Finish(time.Since(start))
	return result, nil
}

// processFile reads, parses and enriches one XML file. It runs concurrently
// with other files and mutates nothing shared.
func (ix *Indexer) processFile(ctx context.Context, position int, c nuget.Candidate) fileResult {
	fr := fileResult{position: position, candidate: c}

	if err := ctx.Err(); err != nil {
		fr.err = err
		return fr
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		fr.err = err
		return fr
	}
	fr.bytes = int64(len(data))
	fr.hash = hashContent(data)

	parsed, err := ix.Parser.Parse(ctx, bytes.NewReader(data))
	if err != nil {
		fr.err = err
		return fr
	}

	members := enrich.Members(parsed.Members)

	now := time.Now().UTC()
	for _, m := range members {
		m.PackageID = c.PackageID
		m.PackageVersion = c.Version
		m.TargetFramework = c.TargetFramework
		m.IsFromNuGetCache = c.PackageID != ""
		m.SourceFilePath = c.Path
		m.ContentHash = fr.hash
		m.IndexedAt = now
		if m.Assembly == "" && parsed.Assembly != nil {
			m.Assembly = parsed.Assembly.Name
		}
	}

	fr.members = members
	return fr
}

// applyFile writes one parsed file's documents to the index and records the
// file in the catalog. Called only from the collector goroutine.
func (ix *Indexer) applyFile(ctx context.Context, fr fileResult, result *apidex.IndexingResult) error {
	if len(fr.members) > 0 {
		if err := ix.Index.AddBatch(ctx, fr.members); err != nil {
			result.FailedDocuments += len(fr.members)
			return err
		}
	}

	if ix.Catalog != nil {
		f := &apidex.IndexedFile{
			Path:            fr.candidate.Path,
			ContentHash:     fr.hash,
			PackageID:       fr.candidate.PackageID,
			PackageVersion:  fr.candidate.Version,
			TargetFramework: fr.candidate.TargetFramework,
			MemberCount:     len(fr.members),
		}
		if err := ix.Catalog.RecordFile(ctx, f); err != nil {
			return err
		}
	}

	result.FilesProcessed++
	result.BytesProcessed += fr.bytes
	result.SuccessfulDocuments += len(fr.members)
	if len(fr.members) == 0 {
		result.EmptyFiles++
	}
	return nil
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(data []byte) string {
	h := xxhash.Sum64(data)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
