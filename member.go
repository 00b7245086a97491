package apidex

import (
	"strings"
	"time"
	"unicode"
)

// MemberType discriminates the kind of documented program element.
type MemberType string

// Member kinds, matching the doc-comment ID prefixes T:, M:, P:, F:, E:.
const (
	MemberTypeType     MemberType = "Type"
	MemberTypeMethod   MemberType = "Method"
	MemberTypeProperty MemberType = "Property"
	MemberTypeField    MemberType = "Field"
	MemberTypeEvent    MemberType = "Event"
)

// MemberTypeForPrefix maps a doc-comment ID prefix ("T", "M", "P", "F", "E")
// to its member type. Returns false for unrecognized prefixes.
func MemberTypeForPrefix(prefix string) (MemberType, bool) {
	switch prefix {
	case "T":
		return MemberTypeType, true
	case "M":
		return MemberTypeMethod, true
	case "P":
		return MemberTypeProperty, true
	case "F":
		return MemberTypeField, true
	case "E":
		return MemberTypeEvent, true
	}
	return "", false
}

// ParameterInfo describes one method parameter in declaration order.
type ParameterInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Position     int    `json:"position"`
	IsOptional   bool   `json:"isOptional,omitempty"`
	IsParams     bool   `json:"isParams,omitempty"`
	IsOut        bool   `json:"isOut,omitempty"`
	IsRef        bool   `json:"isRef,omitempty"`
	DefaultValue string `json:"defaultValue,omitempty"`
	Description  string `json:"description,omitempty"`
}

// ExceptionInfo describes one exception a member documents itself as throwing.
type ExceptionInfo struct {
	// Fully qualified exception type name, cref prefix stripped.
	Type string `json:"type"`

	// Free text describing when the exception is thrown.
	Condition string `json:"condition,omitempty"`
}

// CodeExample is one <example>/<code> block from the documentation.
type CodeExample struct {
	Description string `json:"description,omitempty"`

	// Verbatim code with common leading indentation removed.
	// Internal formatting is preserved.
	Code string `json:"code"`

	Language string `json:"language"`
}

// AttributeInfo describes a decoration such as Obsolete.
type AttributeInfo struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties,omitempty"`
}

// CrossRefType classifies a cross-reference between members.
type CrossRefType string

// Cross-reference kinds.
const (
	CrossRefSee               CrossRefType = "See"
	CrossRefSeeAlso           CrossRefType = "SeeAlso"
	CrossRefParam             CrossRefType = "Param"
	CrossRefReturn            CrossRefType = "Return"
	CrossRefException         CrossRefType = "Exception"
	CrossRefInheritance       CrossRefType = "Inheritance"
	CrossRefParameter         CrossRefType = "Parameter"
	CrossRefReturnType        CrossRefType = "ReturnType"
	CrossRefGenericConstraint CrossRefType = "GenericConstraint"
)

// CrossReference is a string-keyed relation between two members. Targets are
// resolved lazily via GetByID; the corpus is indexed incrementally per file,
// so no object graph is materialized.
type CrossReference struct {
	SourceID string       `json:"sourceId"`
	TargetID string       `json:"targetId"`
	Type     CrossRefType `json:"type"`
	Context  string       `json:"context,omitempty"`
}

// ComplexityMetrics holds heuristic complexity measurements for a method.
// CyclomaticComplexity is estimated from decision-indicating keywords in the
// documentation text, not from control-flow analysis, and is approximate.
type ComplexityMetrics struct {
	ParameterCount         int `json:"parameterCount"`
	CyclomaticComplexity   int `json:"cyclomaticComplexity"`
	DocumentationLineCount int `json:"documentationLineCount"`
}

// MemberInfo is the canonical indexed unit: one record per documented type,
// method, property, field, or event.
//
// A MemberInfo is created by the parser from one <member> XML node, enriched
// in place (enrichment only fills optional fields), converted to an index
// document, and never mutated after indexing. Updates are delete-and-reinsert.
type MemberInfo struct {
	// Stable doc-comment ID, e.g. "M:Namespace.Type.Method(ParamType)".
	// Unique within one indexing generation for one package+version+framework
	// triple. The same logical member may repeat across package versions;
	// that is the basis for deduplication, not an error.
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`

	Namespace     string `json:"namespace,omitempty"`
	Assembly      string `json:"assembly,omitempty"`
	DeclaringType string `json:"declaringType,omitempty"`

	MemberType MemberType `json:"memberType"`

	Summary string `json:"summary,omitempty"`
	Remarks string `json:"remarks,omitempty"`
	Returns string `json:"returns,omitempty"`
	SeeAlso string `json:"seeAlso,omitempty"`

	// Structured extras. Each defaults to empty, never nil-checked by callers.
	Parameters      []ParameterInfo  `json:"parameters,omitempty"`
	Exceptions      []ExceptionInfo  `json:"exceptions,omitempty"`
	CodeExamples    []CodeExample    `json:"codeExamples,omitempty"`
	Attributes      []AttributeInfo  `json:"attributes,omitempty"`
	CrossReferences []CrossReference `json:"crossReferences,omitempty"`

	// Only computed for methods.
	Complexity *ComplexityMetrics `json:"complexity,omitempty"`

	// Populated directly for methods, backfilled for properties via
	// getter linking. Empty when unknown.
	ReturnType string `json:"returnType,omitempty"`

	// Provenance, populated only when sourced from a package cache.
	PackageID        string    `json:"packageId,omitempty"`
	PackageVersion   string    `json:"packageVersion,omitempty"`
	TargetFramework  string    `json:"targetFramework,omitempty"`
	IsFromNuGetCache bool      `json:"isFromNuGetCache,omitempty"`
	SourceFilePath   string    `json:"sourceFilePath,omitempty"`
	ContentHash      string    `json:"contentHash,omitempty"`
	IndexedAt        time.Time `json:"indexedAt,omitzero"`
}

// Validate returns an error if the member is missing required identity fields.
func (m *MemberInfo) Validate() error {
	if m.ID == "" {
		return Errorf(EINVALID, "member ID required")
	}
	if m.Name == "" {
		return Errorf(EINVALID, "member name required")
	}
	if m.MemberType == "" {
		return Errorf(EINVALID, "member type required")
	}
	return nil
}

// SimpleTypeName returns the unqualified part of a fully qualified type name:
// "System.IO.IOException" becomes "IOException". Names without dots are
// returned unchanged.
func SimpleTypeName(fullName string) string {
	if i := strings.LastIndex(fullName, "."); i >= 0 {
		return fullName[i+1:]
	}
	return fullName
}

// IsInterfaceName reports whether a simple type name follows the .NET
// interface naming convention: an "I" prefix followed by another uppercase
// letter, as in "IDisposable".
//
// This is a best-effort classifier by name convention only. XML doc comments
// do not reliably encode type hierarchies, so no structural interface or
// base-class detection is attempted.
func IsInterfaceName(name string) bool {
	name = SimpleTypeName(name)
	if len(name) < 2 || name[0] != 'I' {
		return false
	}
	return unicode.IsUpper(rune(name[1]))
}
