package dedup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/dedup"
	"github.com/apidex/apidex/nuget"
)

func candidate(id, version, framework, path string) nuget.Candidate {
	return nuget.Candidate{PackageID: id, Version: version, TargetFramework: framework, Path: path}
}

func TestDecide_FreshIndex(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("serilog", "3.1.1", "net6.0", "/c/serilog.xml"),
		candidate("newtonsoft.json", "13.0.3", "net6.0", "/c/newtonsoft.xml"),
	}

	plan := dedup.Decide(candidates, nil, nil, nil, dedup.Options{})

	assert.Len(t, plan.PackagesToIndex, 2)
	assert.Empty(t, plan.PackageIDsToDelete)
	assert.Equal(t, 2, plan.Stats.NewPackages)
	assert.Equal(t, 2, plan.Stats.TotalScannedPackages)
	assert.Equal(t, 2, plan.Stats.UniqueXmlFiles)
}

func TestDecide_AlreadyIndexedTripleIsSkipped(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("serilog", "3.1.1", "net6.0", "/c/serilog.xml"),
	}
	indexed := []apidex.PackageVersion{
		{PackageID: "serilog", Version: "3.1.1", Framework: "net6.0"},
	}
	indexedPaths := map[string]bool{"/c/serilog.xml": true}

	plan := dedup.Decide(candidates, indexed, indexedPaths, nil, dedup.Options{})

	assert.Empty(t, plan.PackagesToIndex)
	assert.Empty(t, plan.PackageIDsToDelete)
	assert.Equal(t, 1, plan.Stats.SkippedPackages)
}

func TestDecide_NewFrameworkIsIncrementalAdd(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("serilog", "3.1.1", "netstandard2.0", "/c/serilog-ns.xml"),
	}
	indexed := []apidex.PackageVersion{
		{PackageID: "serilog", Version: "3.1.1", Framework: "net6.0"},
	}

	plan := dedup.Decide(candidates, indexed, map[string]bool{}, nil, dedup.Options{})

	require.Len(t, plan.PackagesToIndex, 1)
	assert.Empty(t, plan.PackageIDsToDelete, "other framework's documents must not be purged")
	assert.Equal(t, 1, plan.Stats.NewPackages)
}

func TestDecide_VersionChangeTriggersPurge(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("serilog", "3.2.0", "net6.0", "/c/serilog-320.xml"),
	}
	indexed := []apidex.PackageVersion{
		{PackageID: "serilog", Version: "3.1.1", Framework: "net6.0"},
	}
	indexedPaths := map[string]bool{"/c/serilog.xml": true}

	plan := dedup.Decide(candidates, indexed, indexedPaths, nil, dedup.Options{})

	require.Len(t, plan.PackagesToIndex, 1)
	assert.Equal(t, []string{"serilog"}, plan.PackageIDsToDelete)
	assert.Equal(t, 1, plan.Stats.UpdatedPackages)
}

func TestDecide_EmptyFilesAreNotRetried(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("stubs", "1.0.0", "net6.0", "/c/stubs.xml"),
	}
	emptyPaths := map[string]bool{"/c/stubs.xml": true}

	plan := dedup.Decide(candidates, nil, nil, emptyPaths, dedup.Options{})
	assert.Empty(t, plan.PackagesToIndex)
	assert.Equal(t, 1, plan.Stats.EmptyXmlFilesSkipped)

	// A clean run re-parses them.
	cleanPlan := dedup.Decide(candidates, nil, nil, emptyPaths, dedup.Options{Clean: true})
	assert.Len(t, cleanPlan.PackagesToIndex, 1)
	assert.Zero(t, cleanPlan.Stats.EmptyXmlFilesSkipped)
}

func TestDecide_LatestOnlyCollapsesVersions(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("serilog", "3.0.1", "net6.0", "/c/old.xml"),
		candidate("serilog", "3.1.1", "net6.0", "/c/new.xml"),
	}

	plan := dedup.Decide(candidates, nil, nil, nil, dedup.Options{LatestOnly: true})

	require.Len(t, plan.PackagesToIndex, 1)
	assert.Equal(t, "/c/new.xml", plan.PackagesToIndex[0].Path)
	assert.Equal(t, 1, plan.Stats.UniqueXmlFiles)
}

func TestDecide_SecondRunIsNoOp(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		candidate("serilog", "3.1.1", "net6.0", "/c/serilog.xml"),
		candidate("newtonsoft.json", "13.0.3", "net6.0", "/c/newtonsoft.xml"),
	}

	first := dedup.Decide(candidates, nil, nil, nil, dedup.Options{})
	require.Len(t, first.PackagesToIndex, 2)

	// Simulate the state after the first plan was applied.
	var indexed []apidex.PackageVersion
	indexedPaths := make(map[string]bool)
	for _, c := range first.PackagesToIndex {
		indexed = append(indexed, apidex.PackageVersion{
			PackageID: c.PackageID,
			Version:   c.Version,
			Framework: c.TargetFramework,
		})
		indexedPaths[c.Path] = true
	}

	second := dedup.Decide(candidates, indexed, indexedPaths, nil, dedup.Options{})

	assert.Empty(t, second.PackagesToIndex)
	assert.Empty(t, second.PackageIDsToDelete)
	assert.Equal(t, 2, second.Stats.SkippedPackages)
}
