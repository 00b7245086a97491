package etree

import (
	"strconv"
	"strings"

	"github.com/apidex/apidex"
)

// MemberID is the decomposed form of a doc-comment ID such as
// "M:Demo.Widget.Parse(System.String)".
type MemberID struct {
	// Raw is the full ID including the kind prefix.
	Raw string

	Kind apidex.MemberType

	// Name is the final segment of the member path, e.g. "Parse" or
	// "#ctor". Generic arity markers are preserved ("Create``1").
	Name string

	// FullName is the dotted member path without prefix or parameter list,
	// e.g. "Demo.Widget.Parse".
	FullName string

	// DeclaringType is the dotted path of the containing type. Empty for
	// type IDs.
	DeclaringType string

	// Namespace is the dotted path before the type name. Nested types
	// cannot be distinguished from namespaces in doc IDs, so the outermost
	// split is a best-effort convention.
	Namespace string

	// ParameterTypes are the signature-derived parameter type names in
	// declaration order. Only methods carry them.
	ParameterTypes []string
}

// ParseMemberID decomposes a doc-comment ID. Returns false for IDs with an
// unrecognized prefix (such as "N:" namespace docs or "!:" compiler errors).
func ParseMemberID(raw string) (MemberID, bool) {
	if len(raw) < 3 || raw[1] != ':' {
		return MemberID{}, false
	}

	kind, ok := apidex.MemberTypeForPrefix(raw[:1])
	if !ok {
		return MemberID{}, false
	}

	id := MemberID{Raw: raw, Kind: kind}
	body := raw[2:]

	// Split off the parenthesized parameter-type list, if present.
	// Conversion operators carry a "~ReturnType" suffix after the list.
	if i := strings.IndexByte(body, '('); i >= 0 {
		list := body[i+1:]
		if j := strings.LastIndexByte(list, ')'); j >= 0 {
			list = list[:j]
		}
		id.ParameterTypes = splitParameterTypes(list)
		body = body[:i]
	}

	id.FullName = body

	if kind == apidex.MemberTypeType {
		id.Name = lastSegment(body)
		id.Namespace = parentPath(body)
		return id, true
	}

	id.Name = lastSegment(body)
	id.DeclaringType = parentPath(body)
	id.Namespace = parentPath(id.DeclaringType)
	return id, true
}

// splitParameterTypes splits a signature parameter list on top-level commas.
// Commas nested in generic instantiations ({...}) or array bounds ([...])
// do not split.
func splitParameterTypes(list string) []string {
	if list == "" {
		return nil
	}

	var types []string
	depth := 0
	start := 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				types = append(types, list[start:i])
				start = i + 1
			}
		}
	}
	types = append(types, list[start:])
	return types
}

// lastSegment returns the member path segment after the final dot.
//
// Explicit interface implementations encode their dots as '#'
// ("Demo.Widget.System#IDisposable#Dispose"), so a plain LastIndex is
// correct: '#' never terminates a segment. The "#ctor" constructor name is
// likewise preserved whole.
func lastSegment(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// parentPath returns the dotted path before the final segment.
func parentPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return ""
}

// DisplayName renders a member path segment for humans: backtick arity
// markers become bracketed placeholders ("List`1" -> "List<T1>",
// "Create``2" -> "Create<T1,T2>") and explicit interface separators become
// dots. The "#ctor" constructor name is kept as-is.
func DisplayName(segment string) string {
	if segment != "#ctor" && segment != "#cctor" {
		segment = strings.ReplaceAll(segment, "#", ".")
	}

	arity := 0
	if i := strings.Index(segment, "``"); i >= 0 {
		arity = parseArity(segment[i+2:])
		segment = segment[:i]
	} else if i := strings.IndexByte(segment, '`'); i >= 0 {
		arity = parseArity(segment[i+1:])
		segment = segment[:i]
	}

	if arity > 0 {
		params := make([]string, arity)
		for i := range params {
			params[i] = "T" + strconv.Itoa(i+1)
		}
		segment += "<" + strings.Join(params, ",") + ">"
	}
	return segment
}

func parseArity(s string) int {
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
