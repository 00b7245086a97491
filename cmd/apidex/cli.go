package main

import (
	"context"
	"io"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/indexer"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Search is wired for query commands.
	Search apidex.SearchService

	// Indexer, Index, and Catalog are wired for mutating commands.
	Indexer *indexer.Indexer
	Index   apidex.IndexWriter
	Catalog apidex.Catalog

	// JSON switches all command output to a single JSON document.
	JSON bool
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Index      IndexCmd      `cmd:"" help:"Scan a NuGet package cache and index its XML documentation"`
	Search     SearchCmd     `cmd:"" help:"Full-text search over documentation content"`
	Name       NameCmd       `cmd:"" help:"Find members by name, optionally filtered by kind, namespace, or assembly"`
	Namespace  NamespaceCmd  `cmd:"" help:"Find members by namespace prefix or pattern"`
	Get        GetCmd        `cmd:"" help:"Show one member by its doc-comment ID"`
	Exceptions ExceptionsCmd `cmd:"" help:"Find methods documented to throw an exception type"`
	Examples   ExamplesCmd   `cmd:"" help:"Search code examples, or list members that have them"`
	Complexity ComplexityCmd `cmd:"" help:"List methods at or above a cyclomatic complexity"`
	Params     ParamsCmd     `cmd:"" help:"Find methods by parameter count"`
	Members    MembersCmd    `cmd:"" help:"List the members of a type"`
	Types      TypesCmd      `cmd:"" help:"List types from a package or assembly"`
	Stats      StatsCmd      `cmd:"" help:"Show index statistics"`
	Clean      CleanCmd      `cmd:"" help:"Delete the index and its catalog"`

	IndexPath string `name:"index-path" env:"APIDEX_INDEX" help:"Index directory (default ~/.apidex/index.bleve)"`
	JSON      bool   `help:"Emit JSON instead of text"`
	Verbose   bool   `short:"v" help:"Log individual operations to stderr"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Cache       string `arg:"" optional:"" help:"Package cache root (default ~/.nuget/packages)"`
	Clean       bool   `help:"Rebuild the index from scratch"`
	LatestOnly  bool   `name:"latest-only" help:"Index only the highest version of each package per framework"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent file parse limit"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Query text (supports +required -excluded \"phrases\" and trailing ~)"`
	Max   int    `short:"n" default:"20" help:"Maximum results"`
}

// NameCmd is the "name" subcommand.
type NameCmd struct {
	Pattern   string `arg:"" help:"Member name, * and ? wildcards allowed"`
	Type      string `short:"t" help:"Member kind (Type, Method, Property, Field, Event)"`
	Namespace string `help:"Namespace pattern filter"`
	Assembly  string `help:"Assembly pattern filter"`
	Max       int    `short:"n" default:"20" help:"Maximum results"`
}

// NamespaceCmd is the "namespace" subcommand.
type NamespaceCmd struct {
	Pattern string `arg:"" help:"Namespace prefix or wildcard pattern"`
	Max     int    `short:"n" default:"20" help:"Maximum results"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	ID string `arg:"" help:"Doc-comment ID, e.g. M:System.String.Join(System.String,System.String[])"`
}

// ExceptionsCmd is the "exceptions" subcommand.
type ExceptionsCmd struct {
	Pattern string `arg:"" help:"Exception type name; leading wildcards allowed (*Exception)"`
	Max     int    `short:"n" default:"20" help:"Maximum results"`
}

// ExamplesCmd is the "examples" subcommand.
type ExamplesCmd struct {
	Pattern string `arg:"" optional:"" help:"Text to search within code examples; empty lists all members with examples"`
	Max     int    `short:"n" default:"20" help:"Maximum results"`
}

// ComplexityCmd is the "complexity" subcommand.
type ComplexityCmd struct {
	Min int `arg:"" optional:"" default:"5" help:"Minimum cyclomatic complexity"`
	Max int `short:"n" default:"20" help:"Maximum results"`
}

// ParamsCmd is the "params" subcommand.
type ParamsCmd struct {
	Min   int `arg:"" help:"Minimum parameter count"`
	Max   int `arg:"" optional:"" default:"-1" help:"Maximum parameter count (default same as minimum)"`
	Limit int `short:"n" default:"20" help:"Maximum results"`
}

// MembersCmd is the "members" subcommand.
type MembersCmd struct {
	Type string `arg:"" help:"Fully qualified type name"`
	Max  int    `short:"n" default:"50" help:"Maximum results"`
}

// TypesCmd is the "types" subcommand.
type TypesCmd struct {
	Pattern  string `arg:"" help:"Package ID or assembly name pattern"`
	Assembly bool   `help:"Treat the pattern as an assembly name instead of a package ID"`
	Max      int    `short:"n" default:"50" help:"Maximum results"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// CleanCmd is the "clean" subcommand.
type CleanCmd struct {
	Force bool `help:"Confirm deletion"`
}
