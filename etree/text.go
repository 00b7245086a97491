package etree

import (
	"strings"

	"github.com/beevik/etree"
)

// flattenText renders a documentation element to readable plain text. Inline
// markup is resolved: <see>/<seealso> crefs become simple type names,
// <paramref>/<typeparamref> become their parameter names, <para> breaks
// paragraphs, and <c>/<code> contents pass through verbatim.
func flattenText(el *etree.Element) string {
	var sb strings.Builder
	writeFlattened(&sb, el)
	return normalizeSpace(sb.String())
}

func writeFlattened(sb *strings.Builder, el *etree.Element) {
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			switch t.Tag {
			case "see", "seealso":
				if text := strings.TrimSpace(t.Text()); text != "" {
					sb.WriteString(text)
				} else if cref := t.SelectAttrValue("cref", ""); cref != "" {
					sb.WriteString(lastSegment(stripIDPrefix(cref)))
				} else if href := t.SelectAttrValue("href", ""); href != "" {
					sb.WriteString(href)
				}
			case "paramref", "typeparamref":
				sb.WriteString(t.SelectAttrValue("name", ""))
			case "para":
				sb.WriteString("\n")
				writeFlattened(sb, t)
				sb.WriteString("\n")
			case "c", "code":
				sb.WriteString(t.Text())
			default:
				writeFlattened(sb, t)
			}
		}
	}
}

// normalizeSpace collapses runs of spaces and tabs and trims each line, while
// preserving intentional line breaks from <para> elements.
func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// Dedent removes leading and trailing blank lines from a code block, then
// strips the common leading indentation of the remaining lines. Internal
// formatting is preserved.
func Dedent(code string) string {
	lines := strings.Split(strings.ReplaceAll(code, "\r\n", "\n"), "\n")

	// Drop leading and trailing blank lines.
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	lines = lines[start:end]
	if len(lines) == 0 {
		return ""
	}

	indent := commonIndent(lines)
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// commonIndent returns the length of the shortest leading whitespace run
// across non-blank lines.
func commonIndent(lines []string) int {
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := 0
		for n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		return 0
	}
	return indent
}
