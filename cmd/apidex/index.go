package main

import (
	"fmt"
	"os"
	"time"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/indexer"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	cache := c.Cache
	if cache == "" {
		cache = defaultCacheRoot()
	}
	if _, err := os.Stat(cache); err != nil {
		fmt.Fprintf(deps.Stderr, "error: package cache %q not found\n", cache)
		return apidex.Errorf(apidex.ENOTFOUND, "package cache %q not found", cache)
	}

	progress := func(event indexer.ProgressEvent) {
		switch event.Type {
		case indexer.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Indexing %d files\n", event.Total)
		case indexer.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Path, event.Error)
		case indexer.ProgressFinished:
			// Summary printed after the run completes
		}
	}
	if deps.JSON {
		progress = nil
	}

	report, err := deps.Indexer.Run(deps.Ctx, indexer.RunOptions{
		CacheRoot:  cache,
		Clean:      c.Clean,
		LatestOnly: c.LatestOnly,
	}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return printJSON(deps, report)
	}

	r := report.Result
	fmt.Fprintf(deps.Stdout, "Scanned %d files (%d unique, %d packages)\n",
		report.Scan.TotalFiles, report.Scan.UniqueFiles, report.Scan.Packages)
	fmt.Fprintf(deps.Stdout, "Plan: %d new, %d updated, %d skipped, %d empty skipped\n",
		report.Plan.Stats.NewPackages, report.Plan.Stats.UpdatedPackages,
		report.Plan.Stats.SkippedPackages, report.Plan.Stats.EmptyXmlFilesSkipped)
	fmt.Fprintf(deps.Stdout, "Indexed %d documents from %d files in %s (%.0f docs/s, %.1f MB/s)\n",
		r.SuccessfulDocuments, r.FilesProcessed, r.Elapsed.Round(time.Millisecond), r.DocsPerSecond, r.MBPerSecond)
	if r.FilesFailed > 0 {
		fmt.Fprintf(deps.Stdout, "Failed files: %d (see errors above)\n", r.FilesFailed)
	}
	if r.Canceled {
		fmt.Fprintln(deps.Stdout, "Run canceled; committed work is kept.")
	}
	return nil
}
