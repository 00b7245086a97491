package apidex

import (
	"context"
	"io"
)

// ParseResult holds the output of parsing one XML documentation file.
type ParseResult struct {
	Assembly *AssemblyInfo

	// Members in document order. May be empty: sparse documentation is
	// not an error.
	Members []*MemberInfo

	// Count of <member> nodes skipped for an unrecognized ID prefix.
	Skipped int
}

// Parser converts one XML documentation file into an assembly descriptor and
// a list of member records.
type Parser interface {
	// Parse reads a complete XML documentation document. Malformed XML is an
	// error attributed to this document only; callers batch-processing many
	// files recover locally and continue.
	Parse(ctx context.Context, r io.Reader) (*ParseResult, error)

	// ParseFile parses the file at path and stamps SourceFilePath on every
	// member.
	ParseFile(ctx context.Context, path string) (*ParseResult, error)
}
