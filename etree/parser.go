// Package etree provides the XML documentation parser built on beevik/etree.
// It converts one compiler-generated documentation file into an assembly
// descriptor plus a list of member records.
package etree

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/apidex/apidex"
)

// Ensure Parser implements apidex.Parser.
var _ apidex.Parser = (*Parser)(nil)

// Parser parses .NET XML documentation files.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses the file at path and stamps SourceFilePath on every member.
func (p *Parser) ParseFile(ctx context.Context, path string) (*apidex.ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	result, err := p.Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for _, m := range result.Members {
		m.SourceFilePath = path
	}
	return result, nil
}

// Parse reads a complete XML documentation document following the
// <doc><assembly>...<members>...</members></doc> schema.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*apidex.ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, apidex.Errorf(apidex.EINVALID, "malformed documentation XML: %v", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "doc" {
		return nil, apidex.Errorf(apidex.EINVALID, "not a documentation file: missing <doc> root")
	}

	assembly := parseAssembly(root)

	result := &apidex.ParseResult{Assembly: assembly}

	membersEl := root.SelectElement("members")
	if membersEl == nil {
		// Sparse documentation: no members is not an error.
		return result, nil
	}

	namespaces := make(map[string]bool)
	for _, memberEl := range membersEl.SelectElements("member") {
		raw := memberEl.SelectAttrValue("name", "")
		id, ok := ParseMemberID(raw)
		if !ok {
			result.Skipped++
			continue
		}

		member := p.parseMember(memberEl, id)
		member.Assembly = assembly.Name
		if member.Namespace != "" {
			namespaces[member.Namespace] = true
		}
		if id.Kind == apidex.MemberTypeType {
			assembly.Types = append(assembly.Types, member.FullName)
		}
		result.Members = append(result.Members, member)
	}

	for ns := range namespaces {
		assembly.Namespaces = append(assembly.Namespaces, ns)
	}
	sort.Strings(assembly.Namespaces)

	return result, nil
}

// parseAssembly extracts the <assembly> descriptor. Files without one still
// parse; the assembly name is simply empty.
func parseAssembly(root *etree.Element) *apidex.AssemblyInfo {
	info := &apidex.AssemblyInfo{}
	asmEl := root.SelectElement("assembly")
	if asmEl == nil {
		return info
	}

	if nameEl := asmEl.SelectElement("name"); nameEl != nil {
		// Some generators emit "Name, Version=..., Culture=..., PublicKeyToken=..."
		parseAssemblyName(strings.TrimSpace(nameEl.Text()), info)
	}
	if descEl := asmEl.SelectElement("description"); descEl != nil {
		info.Description = strings.TrimSpace(descEl.Text())
	}
	return info
}

// parseAssemblyName splits a full assembly display name into its parts.
func parseAssemblyName(display string, info *apidex.AssemblyInfo) {
	parts := strings.Split(display, ",")
	info.Name = strings.TrimSpace(parts[0])
	for _, part := range parts[1:] {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "version":
			info.Version = value
		case "culture":
			info.Culture = value
		case "publickeytoken":
			info.PublicKeyToken = value
		}
	}
}

// parseMember converts one <member> node into a MemberInfo. Each recognized
// child tag maps to a field; unknown tags are ignored.
func (p *Parser) parseMember(el *etree.Element, id MemberID) *apidex.MemberInfo {
	member := &apidex.MemberInfo{
		ID:            id.Raw,
		Name:          DisplayName(id.Name),
		FullName:      id.FullName,
		Namespace:     id.Namespace,
		DeclaringType: id.DeclaringType,
		MemberType:    id.Kind,
	}

	// Documented parameters by name, in tag order. Signature order wins for
	// Position when both are present.
	var docParams []apidex.ParameterInfo

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "summary":
			member.Summary = flattenText(child)
			p.collectSeeRefs(child, member, "summary")
		case "remarks":
			member.Remarks = flattenText(child)
			p.collectSeeRefs(child, member, "remarks")
		case "returns":
			member.Returns = flattenText(child)
		case "value":
			if member.Returns == "" {
				member.Returns = flattenText(child)
			}
		case "param":
			docParams = append(docParams, apidex.ParameterInfo{
				Name:        child.SelectAttrValue("name", ""),
				Description: flattenText(child),
			})
		case "exception":
			cref := strings.TrimPrefix(child.SelectAttrValue("cref", ""), "T:")
			if cref == "" {
				continue
			}
			member.Exceptions = append(member.Exceptions, apidex.ExceptionInfo{
				Type:      cref,
				Condition: flattenText(child),
			})
			member.CrossReferences = append(member.CrossReferences, apidex.CrossReference{
				SourceID: member.ID,
				TargetID: "T:" + cref,
				Type:     apidex.CrossRefException,
			})
		case "example":
			if example, ok := parseExample(child); ok {
				member.CodeExamples = append(member.CodeExamples, example)
			}
		case "seealso":
			cref := child.SelectAttrValue("cref", "")
			if cref == "" {
				continue
			}
			member.CrossReferences = append(member.CrossReferences, apidex.CrossReference{
				SourceID: member.ID,
				TargetID: cref,
				Type:     apidex.CrossRefSeeAlso,
			})
			if member.SeeAlso != "" {
				member.SeeAlso += ", "
			}
			member.SeeAlso += stripIDPrefix(cref)
		case "returns_type", "returntype":
			// Non-standard but emitted by some documentation pipelines.
			member.ReturnType = strings.TrimSpace(child.Text())
		}
	}

	member.Parameters = mergeParameters(id.ParameterTypes, docParams)

	if member.MemberType == apidex.MemberTypeMethod && member.ReturnType == "" {
		member.ReturnType = returnTypeFromCref(el)
	}

	return member
}

// returnTypeFromCref extracts a return type from a <returns><see cref=...>
// child when the documentation links the type directly.
func returnTypeFromCref(el *etree.Element) string {
	returnsEl := el.SelectElement("returns")
	if returnsEl == nil {
		return ""
	}
	for _, see := range returnsEl.SelectElements("see") {
		if cref := see.SelectAttrValue("cref", ""); strings.HasPrefix(cref, "T:") {
			return strings.TrimPrefix(cref, "T:")
		}
	}
	return ""
}

// collectSeeRefs records <see cref="..."> references found inside a
// documentation text block.
func (p *Parser) collectSeeRefs(el *etree.Element, member *apidex.MemberInfo, context string) {
	for _, see := range el.FindElements(".//see") {
		cref := see.SelectAttrValue("cref", "")
		if cref == "" {
			continue
		}
		member.CrossReferences = append(member.CrossReferences, apidex.CrossReference{
			SourceID: member.ID,
			TargetID: cref,
			Type:     apidex.CrossRefSee,
			Context:  context,
		})
	}
}

// mergeParameters combines signature-derived parameter types with documented
// <param> descriptions. Signature order wins for Position; documented
// parameters beyond the signature keep their tag order.
func mergeParameters(sigTypes []string, docParams []apidex.ParameterInfo) []apidex.ParameterInfo {
	n := len(sigTypes)
	if len(docParams) > n {
		n = len(docParams)
	}
	if n == 0 {
		return nil
	}

	params := make([]apidex.ParameterInfo, n)
	for i := range params {
		params[i].Position = i
		if i < len(sigTypes) {
			params[i].Type = normalizeParameterType(sigTypes[i], &params[i])
		}
		if i < len(docParams) {
			params[i].Name = docParams[i].Name
			params[i].Description = docParams[i].Description
		}
	}
	return params
}

// normalizeParameterType strips by-reference markers from a signature type,
// recording out/ref modality. Doc IDs encode both ref and out as a trailing
// '@'; without the source we record IsRef and leave IsOut to attributes.
func normalizeParameterType(sigType string, p *apidex.ParameterInfo) string {
	if strings.HasSuffix(sigType, "@") {
		p.IsRef = true
		return strings.TrimSuffix(sigType, "@")
	}
	return sigType
}

// stripIDPrefix removes a leading doc-comment kind prefix from a cref.
func stripIDPrefix(cref string) string {
	if len(cref) > 2 && cref[1] == ':' {
		return cref[2:]
	}
	return cref
}

// parseExample extracts one code example: description is the text outside
// <code>, code is the dedented verbatim contents of <code>.
func parseExample(el *etree.Element) (apidex.CodeExample, bool) {
	codeEl := el.SelectElement("code")
	if codeEl == nil {
		return apidex.CodeExample{}, false
	}

	language := codeEl.SelectAttrValue("language", "")
	if language == "" {
		language = codeEl.SelectAttrValue("lang", "")
	}
	if language == "" {
		language = "csharp"
	}

	// Description: flatten the example element with the code block removed.
	clone := el.Copy()
	if cloneCode := clone.SelectElement("code"); cloneCode != nil {
		clone.RemoveChild(cloneCode)
	}

	return apidex.CodeExample{
		Description: flattenText(clone),
		Code:        Dedent(codeEl.Text()),
		Language:    language,
	}, true
}
