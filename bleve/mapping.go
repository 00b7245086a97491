// Package bleve provides the persistent inverted index and the query engine
// built on blevesearch/bleve. Documents are built 1:1 from member records;
// exact-match fields use a lowercased keyword analyzer, full-text fields use
// the standard analyzer, and the complete member record is carried in a
// stored-only field for lossless retrieval.
package bleve

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/apidex/apidex"
)

// Index field names. Exact-match (keyword) fields and full-text (tokenized)
// fields are kept separate so wildcard and term queries never fight the
// analyzer.
const (
	fieldID              = "id"
	fieldMemberType      = "memberType"
	fieldName            = "name"
	fieldNameExact       = "nameExact"
	fieldFullName        = "fullName"
	fieldFullNameExact   = "fullNameExact"
	fieldNamespace       = "namespace"
	fieldAssembly        = "assembly"
	fieldDeclaringType   = "declaringType"
	fieldPackageID       = "packageId"
	fieldPackageVersion  = "packageVersion"
	fieldTargetFramework = "targetFramework"
	fieldSummary         = "summary"
	fieldRemarks         = "remarks"
	fieldContent         = "content"
	fieldExceptionType   = "exceptionType"
	fieldExceptionSimple = "exceptionSimple"
	fieldExceptionText   = "exceptionTypeText"
	fieldCodeExample     = "codeExampleText"
	fieldHasExamples     = "hasExamples"
	fieldParameterCount  = "parameterCount"
	fieldComplexity      = "cyclomaticComplexity"
	fieldData            = "data"
)

// keywordLowerAnalyzer indexes a field as a single lowercased token, giving
// case-insensitive exact and wildcard matching.
const keywordLowerAnalyzer = "keyword_lower"

// buildIndexMapping defines the field-access contract of the index.
func buildIndexMapping() (mapping.IndexMapping, error) {
	m := bleve.NewIndexMapping()

	err := m.AddCustomAnalyzer(keywordLowerAnalyzer, map[string]any{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("register analyzer: %w", err)
	}

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = keywordLowerAnalyzer
	keyword.IncludeInAll = false

	text := bleve.NewTextFieldMapping()
	text.Analyzer = "standard"

	numeric := bleve.NewNumericFieldMapping()
	numeric.IncludeInAll = false

	boolean := bleve.NewBooleanFieldMapping()
	boolean.IncludeInAll = false

	// Stored but not indexed: the full member record as JSON.
	stored := bleve.NewTextFieldMapping()
	stored.Index = false
	stored.Store = true
	stored.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false

	for _, field := range []string{
		fieldID, fieldMemberType, fieldNameExact, fieldFullNameExact,
		fieldNamespace, fieldAssembly, fieldDeclaringType,
		fieldPackageID, fieldPackageVersion, fieldTargetFramework,
		fieldExceptionType, fieldExceptionSimple,
	} {
		doc.AddFieldMappingsAt(field, keyword)
	}
	for _, field := range []string{
		fieldName, fieldFullName, fieldSummary, fieldRemarks,
		fieldContent, fieldExceptionText, fieldCodeExample,
	} {
		doc.AddFieldMappingsAt(field, text)
	}
	doc.AddFieldMappingsAt(fieldParameterCount, numeric)
	doc.AddFieldMappingsAt(fieldComplexity, numeric)
	doc.AddFieldMappingsAt(fieldHasExamples, boolean)
	doc.AddFieldMappingsAt(fieldData, stored)

	m.DefaultMapping = doc
	m.DefaultField = fieldContent
	m.StoreDynamic = false
	m.IndexDynamic = false

	return m, nil
}

// buildDocument maps one member record to its flat index document. The
// content field concatenates summary, remarks, returns, exception conditions
// and code example text for broad free-text search.
func buildDocument(m *apidex.MemberInfo) (map[string]any, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal member %s: %w", m.ID, err)
	}

	var content strings.Builder
	content.WriteString(m.Summary)
	appendSection(&content, m.Remarks)
	appendSection(&content, m.Returns)

	var exceptionTypes, exceptionSimples []string
	for _, e := range m.Exceptions {
		exceptionTypes = append(exceptionTypes, e.Type)
		exceptionSimples = append(exceptionSimples, apidex.SimpleTypeName(e.Type))
		appendSection(&content, e.Condition)
	}

	var exampleText strings.Builder
	for _, ex := range m.CodeExamples {
		appendSection(&exampleText, ex.Description)
		appendSection(&exampleText, ex.Code)
	}
	appendSection(&content, exampleText.String())

	doc := map[string]any{
		fieldID:            m.ID,
		fieldMemberType:    string(m.MemberType),
		fieldName:          m.Name,
		fieldNameExact:     m.Name,
		fieldFullName:      m.FullName,
		fieldFullNameExact: m.FullName,
		fieldNamespace:     m.Namespace,
		fieldAssembly:      m.Assembly,
		fieldDeclaringType: m.DeclaringType,
		fieldSummary:       m.Summary,
		fieldRemarks:       m.Remarks,
		fieldContent:       content.String(),
		fieldHasExamples:   len(m.CodeExamples) > 0,
		fieldData:          string(data),
	}

	if m.PackageID != "" {
		doc[fieldPackageID] = m.PackageID
		doc[fieldPackageVersion] = m.PackageVersion
		doc[fieldTargetFramework] = m.TargetFramework
	}
	if len(exceptionTypes) > 0 {
		doc[fieldExceptionType] = exceptionTypes
		doc[fieldExceptionSimple] = exceptionSimples
		doc[fieldExceptionText] = strings.Join(exceptionTypes, " ")
	}
	if exampleText.Len() > 0 {
		doc[fieldCodeExample] = exampleText.String()
	}
	if m.Complexity != nil {
		doc[fieldParameterCount] = float64(m.Complexity.ParameterCount)
		doc[fieldComplexity] = float64(m.Complexity.CyclomaticComplexity)
	}

	return doc, nil
}

func appendSection(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(text)
}

// decodeMember rebuilds a member record from the stored data field of a hit.
func decodeMember(fields map[string]any) (*apidex.MemberInfo, error) {
	raw, ok := fields[fieldData].(string)
	if !ok {
		return nil, apidex.Errorf(apidex.EINTERNAL, "index document is missing its stored record")
	}
	var m apidex.MemberInfo
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decode stored member: %w", err)
	}
	return &m, nil
}
