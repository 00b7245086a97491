// Package nuget understands the NuGet package-cache directory convention.
// It extracts package/version/framework provenance from XML file paths,
// compares package versions, and scans cache directories for candidate
// documentation files.
package nuget

import (
	"strings"
)

// Provenance is the package attribution derived from a file path following
// the cache convention <root>/<packageId>/<version>/(lib|ref)/<tfm>/<name>.xml.
type Provenance struct {
	PackageID       string
	Version         string
	TargetFramework string
	AssemblyName    string
}

// ParseCachePath matches a file path against the package-cache layout.
// Matching is case-insensitive and tolerates forward and backward
// separators. On no match the second return is false; the file is still
// indexable, just without version attribution.
func ParseCachePath(path string) (Provenance, bool) {
	normalized := strings.ReplaceAll(path, "\\", "/")
	segments := strings.Split(normalized, "/")

	// Walk from the end: name.xml / tfm / lib|ref / version / packageId.
	if len(segments) < 5 {
		return Provenance{}, false
	}

	file := segments[len(segments)-1]
	if !strings.EqualFold(ext(file), ".xml") {
		return Provenance{}, false
	}

	kind := segments[len(segments)-3]
	if !strings.EqualFold(kind, "lib") && !strings.EqualFold(kind, "ref") {
		return Provenance{}, false
	}

	version := segments[len(segments)-4]
	if !looksLikeVersion(version) {
		return Provenance{}, false
	}

	packageID := segments[len(segments)-5]
	if packageID == "" {
		return Provenance{}, false
	}

	return Provenance{
		PackageID:       strings.ToLower(packageID),
		Version:         version,
		TargetFramework: strings.ToLower(segments[len(segments)-2]),
		AssemblyName:    strings.TrimSuffix(file, ext(file)),
	}, true
}

func ext(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

// looksLikeVersion reports whether a path segment is plausibly a package
// version: it must start with a digit and contain at least one dot.
func looksLikeVersion(s string) bool {
	if s == "" || s[0] < '0' || s[0] > '9' {
		return false
	}
	return strings.ContainsRune(s, '.')
}
