// Package enrich post-processes parsed member lists: it links properties to
// their getter methods to backfill property types, computes heuristic
// complexity metrics, and tags inheritance-hint cross-references.
//
// Enrichment is idempotent and non-destructive: it never removes or reorders
// members, only fills optional fields. Gaps (a property without a getter, a
// file outside any package cache) are absence of data, not errors.
package enrich

import (
	"strings"

	"github.com/apidex/apidex"
)

// Members enriches the full member list of one assembly in place and returns
// the same slice.
func Members(members []*apidex.MemberInfo) []*apidex.MemberInfo {
	linkPropertyGetters(members)
	for _, m := range members {
		if m.MemberType == apidex.MemberTypeMethod {
			computeComplexity(m)
		}
		tagInheritanceHints(m)
	}
	return members
}

// linkPropertyGetters copies the getter's return type onto each property.
// For a property P:T.Name the accessor is the zero-argument method
// M:T.get_Name. The lookup is keyed by declaring type and constructed getter
// name, O(n) over one name-indexed map.
func linkPropertyGetters(members []*apidex.MemberInfo) {
	getters := make(map[string]*apidex.MemberInfo)
	for _, m := range members {
		if m.MemberType != apidex.MemberTypeMethod || len(m.Parameters) > 0 {
			continue
		}
		if strings.HasPrefix(m.Name, "get_") {
			getters[m.DeclaringType+"."+m.Name] = m
		}
	}

	for _, m := range members {
		if m.MemberType != apidex.MemberTypeProperty || m.ReturnType != "" {
			continue
		}
		getter, ok := getters[m.DeclaringType+".get_"+m.Name]
		if !ok || getter.ReturnType == "" {
			// No getter found: a known gap, left unset.
			continue
		}
		m.ReturnType = getter.ReturnType
	}
}

// decisionKeywords are the phrases counted by the naive cyclomatic
// complexity estimate. The metric is 1 + occurrences across Summary and
// Remarks; it approximates decision density from prose, not control flow.
var decisionKeywords = []string{
	"if ", "when ", "whether ", "otherwise", "unless ",
	"depending on", "in case", "either ", "switch",
	"returns true", "returns false", "throws", "thrown",
}

// computeComplexity fills the complexity metrics for a method. Repeated
// enrichment recomputes the same values from the same inputs.
func computeComplexity(m *apidex.MemberInfo) {
	docText := strings.ToLower(m.Summary + " " + m.Remarks)

	complexity := 1
	for _, kw := range decisionKeywords {
		complexity += strings.Count(docText, kw)
	}

	m.Complexity = &apidex.ComplexityMetrics{
		ParameterCount:         len(m.Parameters),
		CyclomaticComplexity:   complexity,
		DocumentationLineCount: countDocLines(m),
	}
}

// countDocLines counts newline-delimited lines across Summary, Remarks and
// Returns, skipping empty sections.
func countDocLines(m *apidex.MemberInfo) int {
	count := 0
	for _, text := range []string{m.Summary, m.Remarks, m.Returns} {
		if text == "" {
			continue
		}
		count += strings.Count(text, "\n") + 1
	}
	return count
}

// tagInheritanceHints upgrades see-also references whose target looks like
// an interface (by the I-prefix naming convention) to Inheritance hints.
// This is a best-effort classifier, never authoritative type-hierarchy data.
func tagInheritanceHints(m *apidex.MemberInfo) {
	for i, ref := range m.CrossReferences {
		if ref.Type != apidex.CrossRefSeeAlso {
			continue
		}
		target := ref.TargetID
		if len(target) > 2 && target[1] == ':' {
			target = target[2:]
		}
		if apidex.IsInterfaceName(target) {
			m.CrossReferences[i].Type = apidex.CrossRefInheritance
		}
	}
}
