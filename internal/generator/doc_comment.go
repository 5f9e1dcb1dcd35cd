package generator

import (
	"regexp"
	"strings"

	"github.com/example/doc-buildr/internal/errors"
)

var (
	paramLinePattern  = regexp.MustCompile(`@param\s+(\w+)\s+(.+)`)
	returnLinePattern = regexp.MustCompile(`@return\s+(.+)`)
)

// docSection is the part of a doc comment that free-text lines belong to.
type docSection int

const (
	descriptionSection docSection = iota
	paramSection
	returnSection
)

func (s docSection) String() string {
	switch s {
	case paramSection:
		return "param"
	case returnSection:
		return "return"
	default:
		return "description"
	}
}

// ParseDocComment parses a /** ... */ block.
//
// Free-text lines before the first annotation form the description. An
// annotation may appear anywhere in a line; text before it is dropped and
// @param is tried before @return. A line following @param or @return
// continues that annotation, joined with a single space.
func ParseDocComment(src string) (*DocComment, error) {
	body, ok := strings.CutPrefix(src, "/**")
	if ok {
		body, ok = strings.CutSuffix(body, "*/")
	}
	if !ok {
		return nil, mismatch(DocCommentToken, src)
	}

	doc := &DocComment{}
	var description []string
	section := descriptionSection

	for _, line := range docLines(body) {
		if m := paramLinePattern.FindStringSubmatch(line); m != nil {
			section = paramSection
			doc.Params = append(doc.Params, Param{Name: m[1], Description: m[2]})
			continue
		}
		if m := returnLinePattern.FindStringSubmatch(line); m != nil {
			section = returnSection
			doc.Return = &Return{Description: m[1]}
			continue
		}

		switch section {
		case descriptionSection:
			description = append(description, line)
		case paramSection:
			if len(doc.Params) == 0 {
				return nil, continuationFault(section, line)
			}
			last := &doc.Params[len(doc.Params)-1]
			last.Description += " " + strings.TrimSpace(line)
		case returnSection:
			if doc.Return == nil {
				return nil, continuationFault(section, line)
			}
			doc.Return.Description += " " + strings.TrimSpace(line)
		}
	}

	doc.Description = strings.Join(description, "\n")
	return doc, nil
}

// docLines splits a comment body into lines with the leading '*' gutter
// removed. Whitespace after the gutter is kept; it carries indentation.
func docLines(body string) []string {
	raw := strings.FieldsFunc(body, func(r rune) bool { return r == '\n' || r == '\r' })
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "*")
		l = strings.TrimRight(l, " \t\v\f")
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func continuationFault(section docSection, line string) error {
	err := errors.Errorf(errors.KindInternal, "continuation line in %s section with no open entry: %q", section, line)
	return errors.Attr(err, "section", section.String())
}
