package generator

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	noDocumentation = "No documentation available"
	noDescription   = "No description"
)

// RenderMarkdown renders every node that carries a declaration and joins the
// fragments with a blank line.
func RenderMarkdown(doc Document) string {
	fragments := make([]string, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n.Decl == nil {
			continue
		}
		fragments = append(fragments, renderNode(n))
	}
	return strings.Join(fragments, "\n\n")
}

func renderNode(n Node) string {
	var b strings.Builder
	switch d := n.Decl.(type) {
	case *Struct:
		writeStruct(&b, d, n.Doc)
	case *Enum:
		writeEnum(&b, d, n.Doc)
	case *Function:
		writeFunction(&b, d, n.Doc)
	}
	return b.String()
}

func writeStruct(b *strings.Builder, s *Struct, doc *DocComment) {
	fmt.Fprintf(b, "## Struct `%s`\n\n", s.Name)
	fmt.Fprintf(b, "%s\n\n", escapeMarkdown(description(doc)))
	b.WriteString("**Members**:\n")
	for _, m := range s.Members {
		fmt.Fprintf(b, "- `%s`\n", m)
	}
}

func writeEnum(b *strings.Builder, e *Enum, doc *DocComment) {
	fmt.Fprintf(b, "## Enum `%s`\n\n", e.Name)
	fmt.Fprintf(b, "%s\n\n", escapeMarkdown(description(doc)))
	b.WriteString("**Variants**:\n")
	for _, v := range e.Variants {
		fmt.Fprintf(b, "- `%s`\n", v)
	}
}

func writeFunction(b *strings.Builder, f *Function, doc *DocComment) {
	fmt.Fprintf(b, "## Function `%s`\n\n", f.Name)
	fmt.Fprintf(b, "```c\n%s %s(%s)\n```\n\n", f.ReturnType, f.Name, strings.Join(f.Params, ", "))
	fmt.Fprintf(b, "%s\n\n", escapeMarkdown(description(doc)))

	if f.ReturnType != "void" {
		ret := noDescription
		if doc != nil && doc.Return != nil {
			ret = doc.Return.Description
		}
		fmt.Fprintf(b, "**Returns**:\n\n`%s`: %s\n\n", f.ReturnType, ret)
	}

	b.WriteString("**Parameters**:\n")
	for _, raw := range f.Params {
		name := paramName(raw)
		if doc == nil {
			fmt.Fprintf(b, "- `%s`\n", name)
			continue
		}
		desc := noDescription
		if p, ok := doc.Param(name); ok {
			desc = p.Description
		}
		fmt.Fprintf(b, "- `%s`: %s\n", name, desc)
	}
}

func description(doc *DocComment) string {
	if doc == nil {
		return noDocumentation
	}
	return doc.Description
}

// paramName returns the last whitespace separated token of a raw parameter,
// so "const int* count" yields "count".
func paramName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return raw
	}
	return fields[len(fields)-1]
}

// escapeMarkdown keeps the first character of each line's leading whitespace
// and turns the rest into &nbsp; so indentation survives rendering.
func escapeMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = escapeLeadingWhitespace(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLeadingWhitespace(line string) string {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	leading := []rune(line[:len(line)-len(rest)])
	if len(leading) <= 1 {
		return line
	}
	return string(leading[0]) + strings.Repeat("&nbsp;", len(leading)-1) + rest
}
