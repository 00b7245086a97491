package nuget

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/apidex/apidex/bloom"
)

// Scanner sizing for the seen-assembly Bloom filter. Package caches routinely
// hold tens of thousands of XML files across lib/ and ref/ directories.
const (
	scannerExpectedFiles     = 100000
	scannerFalsePositiveRate = 0.01
)

// Candidate is one XML documentation file discovered in a package cache.
type Candidate struct {
	Path            string
	PackageID       string
	Version         string
	TargetFramework string
	AssemblyName    string
}

// ScanStats summarizes one cache scan.
type ScanStats struct {
	// XML files visited, including lib/ref duplicates.
	TotalFiles int

	// Distinct candidate files after deduplication.
	UniqueFiles int

	// Distinct package IDs seen.
	Packages int
}

// Scanner discovers candidate XML files under a NuGet cache root.
type Scanner struct {
	// Root is the cache directory, typically ~/.nuget/packages.
	Root string
}

// Scan walks the root and returns every XML documentation file found. Files
// under the package layout carry provenance; any other XML file is still a
// candidate, just without package attribution. Packages routinely ship the
// same assembly documentation under both lib/ and ref/; a Bloom filter keyed
// by package identity dedups those repeats, accepting the filter's small
// false-positive rate.
func (s *Scanner) Scan(ctx context.Context) ([]Candidate, ScanStats, error) {
	var (
		candidates []Candidate
		stats      ScanStats
	)

	seen := bloom.NewFilter(scannerExpectedFiles, scannerFalsePositiveRate)
	packages := make(map[string]bool)

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable cache entries are skipped, not fatal.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}

		stats.TotalFiles++

		prov, ok := ParseCachePath(path)
		if !ok {
			// Outside the cache layout: indexed without attribution.
			candidates = append(candidates, Candidate{Path: path})
			stats.UniqueFiles++
			return nil
		}

		key := prov.PackageID + "|" + prov.Version + "|" +
			prov.TargetFramework + "|" + strings.ToLower(prov.AssemblyName)
		if seen.Test(key) {
			return nil
		}
		seen.Add(key)

		candidates = append(candidates, Candidate{
			Path:            path,
			PackageID:       prov.PackageID,
			Version:         prov.Version,
			TargetFramework: prov.TargetFramework,
			AssemblyName:    prov.AssemblyName,
		})
		stats.UniqueFiles++
		packages[prov.PackageID] = true
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	stats.Packages = len(packages)
	return candidates, stats, nil
}
