package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/apidex/apidex/bleve"
	"github.com/apidex/apidex/etree"
	"github.com/apidex/apidex/indexer"
	apidexslog "github.com/apidex/apidex/slog"
	"github.com/apidex/apidex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Index directory. Set before calling Run() to override resolution.
	IndexPath string

	// SQLite database backing the file catalog.
	DB *sqlite.DB

	index  *bleve.Index
	search *bleve.SearchService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.search != nil {
		m.search.Close()
	}
	if m.index != nil {
		m.index.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("apidex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apidex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.JSON = cli.JSON

	if m.IndexPath == "" {
		m.IndexPath = resolveIndexPath(cli.IndexPath)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	switch cmd {
	case "index", "clean":
		if err := m.wireWriter(deps, cli, logger); err != nil {
			return err
		}
	default:
		if err := m.wireSearch(deps, logger); err != nil {
			return err
		}
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// wireWriter opens the index for mutation along with its catalog.
func (m *Main) wireWriter(deps *Dependencies, cli *CLI, logger *slog.Logger) error {
	index, err := bleve.Open(m.IndexPath, true)
	if err != nil {
		return err
	}
	m.index = index

	m.DB = sqlite.NewDB(catalogPath(m.IndexPath))
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open catalog at %q: %w", catalogPath(m.IndexPath), err)
	}

	deps.Index = index
	deps.Catalog = sqlite.NewCatalog(m.DB)
	deps.Indexer = &indexer.Indexer{
		Parser:      apidexslog.NewLoggingParser(etree.NewParser(), logger),
		Index:       index,
		Catalog:     deps.Catalog,
		Concurrency: cli.Index.Concurrency,
	}
	return nil
}

// wireSearch opens the index read-only for querying.
func (m *Main) wireSearch(deps *Dependencies, logger *slog.Logger) error {
	search, err := bleve.OpenSearch(m.IndexPath)
	if err != nil {
		return err
	}
	m.search = search
	deps.Search = apidexslog.NewLoggingSearchService(search, logger)
	return nil
}

// resolveIndexPath picks the index directory: flag or environment first,
// then the per-user default.
func resolveIndexPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "index.bleve"
	}
	dir := filepath.Join(home, ".apidex")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "index.bleve")
}

// catalogPath places the catalog database beside the index directory.
func catalogPath(indexPath string) string {
	return filepath.Join(filepath.Dir(indexPath), "catalog.db")
}

// defaultCacheRoot is the conventional NuGet global package cache location.
func defaultCacheRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".nuget", "packages")
}
