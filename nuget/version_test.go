package nuget_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apidex/apidex/nuget"
)

func TestCompareVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.9.9", 1},
		{"1.10.0", "1.9.0", 1},
		{"1.0", "1.0.0", 0},
		{"1.0.0", "1.0.0.1", -1},
		{"1.2.0", "1.2.0-beta.1", 1},
		{"1.2.0-alpha", "1.2.0-beta", -1},
		{"13.0.3", "13.0.2", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, nuget.CompareVersions(tt.a, tt.b), "compare(%q, %q)", tt.a, tt.b)
	}
}

func TestLatestOnly(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		{PackageID: "serilog", Version: "3.0.1", TargetFramework: "net6.0", Path: "a"},
		{PackageID: "serilog", Version: "3.1.1", TargetFramework: "net6.0", Path: "b"},
		{PackageID: "serilog", Version: "3.1.1", TargetFramework: "netstandard2.0", Path: "c"},
		{PackageID: "newtonsoft.json", Version: "13.0.3", TargetFramework: "net6.0", Path: "d"},
	}

	got := nuget.LatestOnly(candidates)

	assert.Equal(t, []nuget.Candidate{
		{PackageID: "serilog", Version: "3.1.1", TargetFramework: "net6.0", Path: "b"},
		{PackageID: "serilog", Version: "3.1.1", TargetFramework: "netstandard2.0", Path: "c"},
		{PackageID: "newtonsoft.json", Version: "13.0.3", TargetFramework: "net6.0", Path: "d"},
	}, got)
}

func TestLatestOnly_UnattributedFilesPassThrough(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		{Path: "/docs/One.xml"},
		{Path: "/docs/Two.xml"},
		{PackageID: "p", Version: "1.0.0", TargetFramework: "net8.0", Path: "a"},
	}

	got := nuget.LatestOnly(candidates)

	assert.Equal(t, candidates, got)
}

func TestLatestOnly_PrereleaseLosesToRelease(t *testing.T) {
	t.Parallel()

	candidates := []nuget.Candidate{
		{PackageID: "p", Version: "2.0.0-rc.1", TargetFramework: "net8.0", Path: "rc"},
		{PackageID: "p", Version: "2.0.0", TargetFramework: "net8.0", Path: "release"},
	}

	got := nuget.LatestOnly(candidates)

	assert.Len(t, got, 1)
	assert.Equal(t, "release", got[0].Path)
}
