package bleve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/apidex/apidex"
)

// indexSchemaVersion marks the on-disk document layout. Opening an index
// written by an older schema invalidates and rebuilds it.
const indexSchemaVersion = 1

const (
	versionFile = ".schema_version"
	lockName    = "write.lock"

	// deletePageSize bounds the hit pages walked during bulk purges.
	deletePageSize = 1000
)

// Ensure Index implements apidex.IndexWriter.
var _ apidex.IndexWriter = (*Index)(nil)

// Index is the persistent inverted index of member documents. A single
// Index is owned by one logical operation at a time; opening a write
// session while another one is open fails fast rather than corrupting
// state. Mutations queue into a batch and become visible at Commit.
type Index struct {
	path  string
	idx   bleve.Index
	batch *bleve.Batch
	lock  *writeLock
}

// Open opens the index directory, creating it with the current mapping when
// it does not exist. When write is true an exclusive write lock is taken for
// the lifetime of the session.
func Open(path string, write bool) (*Index, error) {
	var lock *writeLock
	if write {
		var err error
		if lock, err = acquireWriteLock(filepath.Join(filepath.Dir(path), lockName)); err != nil {
			return nil, err
		}
	}

	idx, err := openOrCreate(path)
	if err != nil {
		if lock != nil {
			lock.release()
		}
		return nil, err
	}

	return &Index{path: path, idx: idx, lock: lock}, nil
}

func openOrCreate(path string) (bleve.Index, error) {
	if _, err := os.Stat(path); err == nil {
		if readSchemaVersion(path) == indexSchemaVersion {
			idx, err := bleve.Open(path)
			if err == nil {
				return idx, nil
			}
			// A corrupt index will not open. This is a hard failure for
			// queries, but a writer can rebuild from scratch.
			return nil, apidex.Errorf(apidex.EINTERNAL, "index at %s will not open: %v", path, err)
		}
		// Schema mismatch: invalidate and rebuild.
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("remove outdated index: %w", err)
		}
	}

	m, err := buildIndexMapping()
	if err != nil {
		return nil, err
	}
	idx, err := bleve.New(path, m)
	if err != nil {
		return nil, fmt.Errorf("create index at %s: %w", path, err)
	}
	if err := writeSchemaVersion(path); err != nil {
		idx.Close()
		return nil, err
	}
	return idx, nil
}

func readSchemaVersion(path string) int {
	data, err := os.ReadFile(filepath.Join(path, versionFile))
	if err != nil {
		return 0
	}
	v, _ := strconv.Atoi(strings.TrimSpace(string(data)))
	return v
}

func writeSchemaVersion(path string) error {
	content := strconv.Itoa(indexSchemaVersion)
	return os.WriteFile(filepath.Join(path, versionFile), []byte(content), 0o644)
}

// Add queues one document built from a member record.
func (ix *Index) Add(ctx context.Context, member *apidex.MemberInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := member.Validate(); err != nil {
		return err
	}

	doc, err := buildDocument(member)
	if err != nil {
		return err
	}
	if ix.batch == nil {
		ix.batch = ix.idx.NewBatch()
	}
	return ix.batch.Index(member.ID, doc)
}

// AddBatch queues many documents.
func (ix *Index) AddBatch(ctx context.Context, members []*apidex.MemberInfo) error {
	for _, m := range members {
		if err := ix.Add(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

// Commit applies queued mutations as a durability checkpoint. Until Commit
// returns, none of the queued documents are visible to queries.
func (ix *Index) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ix.batch == nil || ix.batch.Size() == 0 {
		return nil
	}
	if err := ix.idx.Batch(ix.batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	ix.batch = nil
	return nil
}

// DeleteByPackageIDs purges every document whose packageId matches one of
// the given identifiers. The purge is applied immediately, not queued.
func (ix *Index) DeleteByPackageIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if err := ix.deleteByPackageID(ctx, strings.ToLower(id)); err != nil {
			return err
		}
	}
	return nil
}

func (ix *Index) deleteByPackageID(ctx context.Context, packageID string) error {
	q := bleve.NewTermQuery(packageID)
	q.SetField(fieldPackageID)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req := bleve.NewSearchRequest(q)
		req.Size = deletePageSize
		res, err := ix.idx.SearchInContext(ctx, req)
		if err != nil {
			return fmt.Errorf("find documents for package %s: %w", packageID, err)
		}
		if len(res.Hits) == 0 {
			return nil
		}

		batch := ix.idx.NewBatch()
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
		if err := ix.idx.Batch(batch); err != nil {
			return fmt.Errorf("delete documents for package %s: %w", packageID, err)
		}
	}
}

// DeleteAll removes every document by recreating the index directory.
func (ix *Index) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ix.idx.Close(); err != nil {
		return fmt.Errorf("close index for rebuild: %w", err)
	}
	if err := os.RemoveAll(ix.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}

	idx, err := openOrCreate(ix.path)
	if err != nil {
		return err
	}
	ix.idx = idx
	ix.batch = nil
	return nil
}

// DocCount returns the number of committed documents.
func (ix *Index) DocCount() (uint64, error) {
	return ix.idx.DocCount()
}

// Stats reports document count, field count, total size on disk and the
// last-modified time of the index directory.
func (ix *Index) Stats() (apidex.IndexStats, error) {
	return readStats(ix.idx, ix.path)
}

// Close releases the index and the write lock. Pending uncommitted
// mutations are discarded.
func (ix *Index) Close() error {
	ix.batch = nil
	err := ix.idx.Close()
	if ix.lock != nil {
		ix.lock.release()
		ix.lock = nil
	}
	return err
}

// readStats is shared by the writer and the read-only search service.
func readStats(idx bleve.Index, path string) (apidex.IndexStats, error) {
	stats := apidex.IndexStats{}

	count, err := idx.DocCount()
	if err != nil {
		return stats, fmt.Errorf("document count: %w", err)
	}
	stats.DocumentCount = count

	fields, err := idx.Fields()
	if err != nil {
		return stats, fmt.Errorf("field list: %w", err)
	}
	stats.FieldCount = len(fields)

	err = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		stats.SizeBytes += info.Size()
		if info.ModTime().After(stats.LastModified) {
			stats.LastModified = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walk index directory: %w", err)
	}

	return stats, nil
}
