// Package dedup decides which XML documentation files need (re)indexing.
// Given the candidate files from a cache scan and the index's known state,
// it partitions candidates into skip, index, and purge sets. It is a pure
// function of its inputs: the scan, the catalog queries, and the file-system
// checks all happen in the calling layer.
package dedup

import (
	"github.com/apidex/apidex"
	"github.com/apidex/apidex/nuget"
)

// Stats counts the outcomes of one deduplication decision.
type Stats struct {
	NewPackages          int `json:"newPackages"`
	UpdatedPackages      int `json:"updatedPackages"`
	SkippedPackages      int `json:"skippedPackages"`
	EmptyXmlFilesSkipped int `json:"emptyXmlFilesSkipped"`
	UniqueXmlFiles       int `json:"uniqueXmlFiles"`
	TotalScannedPackages int `json:"totalScannedPackages"`
}

// Plan is the outcome of deduplication: the candidate subset to index and
// the package IDs whose stale documents must be purged first.
type Plan struct {
	PackagesToIndex    []nuget.Candidate `json:"packagesToIndex"`
	PackageIDsToDelete []string          `json:"packageIdsToDelete"`
	Stats              Stats             `json:"stats"`
}

// Options configures the decision.
type Options struct {
	// LatestOnly collapses multiple versions of the same package+framework
	// to the single highest version before deduplication runs.
	LatestOnly bool

	// Clean ignores all index state: every candidate is reindexed and
	// known-empty files are re-parsed.
	Clean bool
}

// Decide partitions candidates against the current index state.
//
// A package+version+framework triple already in the index is skipped. A new
// framework for an already-indexed version is an incremental add. A version
// change adds the file and schedules the package ID for purging. Known-empty
// files are skipped without re-parsing unless Clean is set. Running Decide
// twice against an unchanged state yields an empty plan the second time.
func Decide(
	candidates []nuget.Candidate,
	indexed []apidex.PackageVersion,
	indexedPaths map[string]bool,
	emptyPaths map[string]bool,
	opts Options,
) *Plan {
	if opts.LatestOnly {
		candidates = nuget.LatestOnly(candidates)
	}

	plan := &Plan{}
	plan.Stats.UniqueXmlFiles = len(candidates)

	// Index state keyed for O(1) decisions.
	triples := make(map[[3]string]bool, len(indexed))
	versions := make(map[string]map[string]bool)
	for _, pv := range indexed {
		triples[[3]string{pv.PackageID, pv.Version, pv.Framework}] = true
		if versions[pv.PackageID] == nil {
			versions[pv.PackageID] = make(map[string]bool)
		}
		versions[pv.PackageID][pv.Version] = true
	}

	scanned := make(map[string]bool)
	toDelete := make(map[string]bool)

	for _, c := range candidates {
		if !scanned[c.PackageID] {
			scanned[c.PackageID] = true
			plan.Stats.TotalScannedPackages++
		}

		if !opts.Clean {
			if emptyPaths[c.Path] {
				plan.Stats.EmptyXmlFilesSkipped++
				continue
			}
			if triples[[3]string{c.PackageID, c.Version, c.TargetFramework}] && indexedPaths[c.Path] {
				plan.Stats.SkippedPackages++
				continue
			}
		}

		known := versions[c.PackageID]
		switch {
		case opts.Clean || len(known) == 0:
			plan.Stats.NewPackages++
		case known[c.Version]:
			// Version already indexed under another framework: an
			// incremental add, no purge of the other framework's documents.
			plan.Stats.NewPackages++
		default:
			// Version differs from every indexed version: reindex and purge
			// the stale versions.
			plan.Stats.UpdatedPackages++
			if !toDelete[c.PackageID] {
				toDelete[c.PackageID] = true
				plan.PackageIDsToDelete = append(plan.PackageIDsToDelete, c.PackageID)
			}
		}

		plan.PackagesToIndex = append(plan.PackagesToIndex, c)
	}

	return plan
}
