// Package apidex provides a local, CLI-based search index for .NET XML
// API-documentation files. It parses compiler-generated documentation
// comments, enriches them with structured metadata (parameter lists,
// exception types, code examples, complexity metrics, NuGet provenance),
// indexes them for full-text and filtered search, and provides a CLI
// query interface.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., bleve/, etree/, sqlite/) or their
// domain (e.g., enrich/, dedup/, indexer/).
package apidex
