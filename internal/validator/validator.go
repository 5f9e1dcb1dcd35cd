// Package validator checks that a Markdown document has the shape doc-buildr
// produces: module banners, one level-2 section per declaration, and the
// labels and blocks each declaration kind renders.
package validator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/example/doc-buildr/internal/errors"
)

// Issue is a single structural problem in a document.
type Issue struct {
	Line    int
	Section string
	Message string
}

func (i Issue) String() string {
	if i.Section == "" {
		return fmt.Sprintf("line %d: %s", i.Line, i.Message)
	}
	return fmt.Sprintf("line %d: %s: %s", i.Line, i.Section, i.Message)
}

// section collects what was seen under one level-2 heading.
type section struct {
	kind     string
	name     string
	line     int
	label    string
	sawLabel bool
	sawFence bool
}

var labels = map[string]string{
	"Struct":   "Members",
	"Enum":     "Variants",
	"Function": "Parameters",
}

// ValidateMarkdown parses src with goldmark and reports every section that
// does not look like rendered declaration documentation.
func ValidateMarkdown(src []byte) []Issue {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var (
		issues  []Issue
		current *section
	)

	closeSection := func() {
		if current == nil {
			return
		}
		issues = append(issues, current.check()...)
		current = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			closeSection()
			line := lineOf(node, src)
			switch node.Level {
			case 1:
				if !strings.HasPrefix(inlineText(node, src), "Module ") {
					issues = append(issues, Issue{Line: line, Message: "level 1 heading is not a module banner"})
				}
			case 2:
				kind, name, ok := declarationHeading(node, src)
				if !ok {
					issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("unexpected heading %q", inlineText(node, src))})
					continue
				}
				current = &section{kind: kind, name: name, line: line, label: labels[kind]}
			default:
				issues = append(issues, Issue{Line: line, Message: fmt.Sprintf("unexpected level %d heading", node.Level)})
			}
		case *ast.FencedCodeBlock:
			if current != nil && string(node.Language(src)) == "c" {
				current.sawFence = true
			}
		case *ast.Paragraph:
			if current != nil && isLabel(node, src, current.label) {
				current.sawLabel = true
			}
		}
	}
	closeSection()

	return issues
}

func (s *section) check() []Issue {
	var issues []Issue
	name := fmt.Sprintf("%s %s", s.kind, s.name)

	if !s.sawLabel {
		issues = append(issues, Issue{Line: s.line, Section: name, Message: fmt.Sprintf("missing **%s**: label", s.label)})
	}
	if s.kind == "Function" && !s.sawFence {
		issues = append(issues, Issue{Line: s.line, Section: name, Message: "missing c signature block"})
	}
	return issues
}

// ValidateFile validates the Markdown file at path.
func ValidateFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		err = errors.Wrapf(err, errors.KindInputUnavailable, "File '%s' not found", path)
		return errors.Attr(err, "file", path)
	}

	issues := ValidateMarkdown(data)
	if len(issues) == 0 {
		return nil
	}

	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.String()
	}
	err = errors.Errorf(errors.KindInvalidOutput, "%s: %d issue(s)\n%s", path, len(issues), strings.Join(msgs, "\n"))
	err = errors.Attr(err, "file", path)
	return errors.Attr(err, "issues", len(issues))
}

// declarationHeading matches "Struct `Name`", "Enum `Name`" or
// "Function `Name`".
func declarationHeading(h *ast.Heading, src []byte) (kind, name string, ok bool) {
	first, isText := h.FirstChild().(*ast.Text)
	if !isText {
		return "", "", false
	}
	code, isCode := first.NextSibling().(*ast.CodeSpan)
	if !isCode || code.NextSibling() != nil {
		return "", "", false
	}

	kind = strings.TrimSpace(string(first.Segment.Value(src)))
	if _, known := labels[kind]; !known {
		return "", "", false
	}
	name = inlineText(code, src)
	return kind, name, name != ""
}

// isLabel reports whether p is "**<label>**:".
func isLabel(p *ast.Paragraph, src []byte, label string) bool {
	strong, ok := p.FirstChild().(*ast.Emphasis)
	if !ok || strong.Level != 2 || inlineText(strong, src) != label {
		return false
	}
	rest, ok := strong.NextSibling().(*ast.Text)
	return ok && strings.HasPrefix(string(rest.Segment.Value(src)), ":")
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			continue
		}
		buf.WriteString(inlineText(c, src))
	}
	return strings.TrimSpace(buf.String())
}

func lineOf(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
}
