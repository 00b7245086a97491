package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/apidex/apidex"
)

// printJSON renders any value as one indented JSON document.
func printJSON(deps *Dependencies, v any) error {
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult renders a query result as JSON or as a text listing.
func printResult(deps *Dependencies, res *apidex.QueryResult) error {
	if deps.JSON {
		return printJSON(deps, res)
	}

	if len(res.Members) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	for _, m := range res.Members {
		fmt.Fprintln(deps.Stdout, memberLine(m))
		if s := firstLine(m.Summary); s != "" {
			fmt.Fprintf(deps.Stdout, "    %s\n", s)
		}
	}

	fmt.Fprintf(deps.Stdout, "\n%d of %d matches (%s)\n",
		len(res.Members), res.Total, res.Duration.Round(100*time.Microsecond))
	return nil
}

// printMember renders one member in full.
func printMember(deps *Dependencies, m *apidex.MemberInfo) error {
	if deps.JSON {
		return printJSON(deps, m)
	}

	fmt.Fprintf(deps.Stdout, "%s\n", m.ID)
	fmt.Fprintf(deps.Stdout, "  %s %s\n", strings.ToLower(string(m.MemberType)), m.FullName)
	if m.Assembly != "" {
		fmt.Fprintf(deps.Stdout, "  assembly: %s\n", m.Assembly)
	}
	if m.PackageID != "" {
		fmt.Fprintf(deps.Stdout, "  package: %s %s (%s)\n", m.PackageID, m.PackageVersion, m.TargetFramework)
	}
	if m.Summary != "" {
		fmt.Fprintf(deps.Stdout, "\n  %s\n", m.Summary)
	}
	if len(m.Parameters) > 0 {
		fmt.Fprintln(deps.Stdout, "\n  Parameters:")
		for _, p := range m.Parameters {
			desc := p.Description
			if desc != "" {
				desc = "  " + desc
			}
			fmt.Fprintf(deps.Stdout, "    %s %s%s\n", p.Type, p.Name, desc)
		}
	}
	if m.ReturnType != "" {
		fmt.Fprintf(deps.Stdout, "\n  Returns: %s", m.ReturnType)
		if m.Returns != "" {
			fmt.Fprintf(deps.Stdout, "  %s", m.Returns)
		}
		fmt.Fprintln(deps.Stdout)
	}
	if len(m.Exceptions) > 0 {
		fmt.Fprintln(deps.Stdout, "\n  Throws:")
		for _, e := range m.Exceptions {
			fmt.Fprintf(deps.Stdout, "    %s  %s\n", e.Type, e.Condition)
		}
	}
	for _, ex := range m.CodeExamples {
		fmt.Fprintf(deps.Stdout, "\n  Example:\n")
		for _, line := range strings.Split(ex.Code, "\n") {
			fmt.Fprintf(deps.Stdout, "    %s\n", line)
		}
	}
	return nil
}

// memberLine is the one-line listing form of a member.
func memberLine(m *apidex.MemberInfo) string {
	kind := strings.ToLower(string(m.MemberType))
	line := fmt.Sprintf("%-8s %s", kind, m.FullName)
	if m.PackageID != "" {
		line += fmt.Sprintf("  [%s %s]", m.PackageID, m.PackageVersion)
	} else if m.Assembly != "" {
		line += fmt.Sprintf("  [%s]", m.Assembly)
	}
	return line
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const maxLen = 120
	if len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}

// suggestAlternatives prints "did you mean" candidates after an empty result.
func suggestAlternatives(deps *Dependencies, query string) {
	suggestions := deps.Search.Suggest(deps.Ctx, query, 5)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(deps.Stdout, "Did you mean: %s\n", strings.Join(suggestions, ", "))
}
