package main

import (
	"fmt"

	"github.com/apidex/apidex"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Search.Stats()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}

	if deps.JSON {
		return printJSON(deps, stats)
	}

	fmt.Fprintf(deps.Stdout, "Documents:     %d\n", stats.DocumentCount)
	fmt.Fprintf(deps.Stdout, "Fields:        %d\n", stats.FieldCount)
	fmt.Fprintf(deps.Stdout, "Size:          %s\n", formatBytes(stats.SizeBytes))
	if !stats.LastModified.IsZero() {
		fmt.Fprintf(deps.Stdout, "Last modified: %s\n", stats.LastModified.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Run executes the clean command.
func (c *CleanCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stderr, "Refusing to delete the index without --force")
		return apidex.Errorf(apidex.EINVALID, "clean requires --force")
	}

	if err := deps.Index.DeleteAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}
	if err := deps.Catalog.DeleteAll(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apidex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Index cleared.")
	return nil
}

// formatBytes renders a byte count in a human-readable unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
