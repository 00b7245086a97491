package indexer

import (
	"context"
	"fmt"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/dedup"
	"github.com/apidex/apidex/nuget"
)

// RunOptions configures a full indexing run over a package cache.
type RunOptions struct {
	// CacheRoot is the package cache directory to scan.
	CacheRoot string

	// Clean rebuilds the index from scratch instead of incrementally.
	Clean bool

	// LatestOnly indexes only the highest version of each package per
	// target framework.
	LatestOnly bool
}

// RunReport is the outcome of a full indexing run.
type RunReport struct {
	Scan   nuget.ScanStats        `json:"scan"`
	Plan   *dedup.Plan            `json:"plan"`
	Result *apidex.IndexingResult `json:"result"`
}

// Run executes the full pipeline: scan the cache, decide what needs
// (re)indexing against the catalog state, purge stale documents, and index
// the remaining candidates.
func (ix *Indexer) Run(ctx context.Context, opts RunOptions, progress ProgressFunc) (*RunReport, error) {
	scanner := &nuget.Scanner{Root: opts.CacheRoot}
	candidates, scanStats, err := scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scan cache: %w", err)
	}

	indexed, indexedPaths, emptyPaths, err := ix.indexState(ctx, opts.Clean)
	if err != nil {
		return nil, err
	}

	plan := dedup.Decide(candidates, indexed, indexedPaths, emptyPaths, dedup.Options{
		LatestOnly: opts.LatestOnly,
		Clean:      opts.Clean,
	})

	if opts.Clean {
		if err := ix.Index.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear index: %w", err)
		}
		if ix.Catalog != nil {
			if err := ix.Catalog.DeleteAll(ctx); err != nil {
				return nil, fmt.Errorf("clear catalog: %w", err)
			}
		}
	} else if len(plan.PackageIDsToDelete) > 0 {
		if err := ix.Index.DeleteByPackageIDs(ctx, plan.PackageIDsToDelete); err != nil {
			return nil, fmt.Errorf("purge stale packages: %w", err)
		}
		if ix.Catalog != nil {
			if err := ix.Catalog.DeleteByPackageIDs(ctx, plan.PackageIDsToDelete); err != nil {
				return nil, fmt.Errorf("purge catalog entries: %w", err)
			}
		}
	}

	result, err := ix.IndexFiles(ctx, plan.PackagesToIndex, progress)
	if err != nil {
		return nil, err
	}

	return &RunReport{Scan: scanStats, Plan: plan, Result: result}, nil
}

// indexState loads the catalog views the deduplication decision needs. A
// clean run skips the queries entirely; without a catalog every run behaves
// like a fresh index.
func (ix *Indexer) indexState(ctx context.Context, clean bool) ([]apidex.PackageVersion, map[string]bool, map[string]bool, error) {
	if clean || ix.Catalog == nil {
		return nil, nil, nil, nil
	}

	indexed, err := ix.Catalog.IndexedPackageVersionsWithFramework(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load indexed packages: %w", err)
	}
	indexedPaths, err := ix.Catalog.IndexedPaths(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load indexed paths: %w", err)
	}
	emptyPaths, err := ix.Catalog.EmptyPaths(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load empty paths: %w", err)
	}
	return indexed, indexedPaths, emptyPaths, nil
}
