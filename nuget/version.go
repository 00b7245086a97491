package nuget

import (
	"strconv"
	"strings"
)

// CompareVersions orders two package version strings. Numeric dot-separated
// parts compare numerically; a release version orders above the same version
// with a prerelease suffix ("1.2.0" > "1.2.0-beta.1"); prerelease labels
// compare lexically as a tiebreak. Returns -1, 0 or 1.
func CompareVersions(a, b string) int {
	aCore, aPre, _ := strings.Cut(a, "-")
	bCore, bPre, _ := strings.Cut(b, "-")

	if c := compareNumericParts(aCore, bCore); c != 0 {
		return c
	}

	switch {
	case aPre == "" && bPre == "":
		return 0
	case aPre == "":
		return 1
	case bPre == "":
		return -1
	case aPre < bPre:
		return -1
	case aPre > bPre:
		return 1
	}
	return 0
}

func compareNumericParts(a, b string) int {
	aParts := strings.Split(a, ".")
	bParts := strings.Split(b, ".")

	n := len(aParts)
	if len(bParts) > n {
		n = len(bParts)
	}

	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(aParts) {
			av = numericValue(aParts[i])
		}
		if i < len(bParts) {
			bv = numericValue(bParts[i])
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

func numericValue(part string) int {
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0
	}
	return n
}

// LatestOnly collapses multiple versions of the same package+framework pair
// down to the single highest version. Input order is otherwise preserved.
func LatestOnly(candidates []Candidate) []Candidate {
	type key struct {
		packageID string
		framework string
	}

	best := make(map[key]Candidate)
	order := make([]key, 0, len(candidates))

	for _, c := range candidates {
		k := key{packageID: c.PackageID, framework: c.TargetFramework}
		if c.PackageID == "" {
			// No package attribution means no versions to collapse; key
			// by path so unattributed files pass through unchanged.
			k = key{packageID: c.Path}
		}
		current, seen := best[k]
		if !seen {
			best[k] = c
			order = append(order, k)
			continue
		}
		if CompareVersions(c.Version, current.Version) > 0 {
			best[k] = c
		}
	}

	out := make([]Candidate, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}
