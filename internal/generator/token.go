package generator

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenKind identifies what a Span of source text holds.
type TokenKind int

const (
	DocCommentToken TokenKind = iota
	FunctionToken
	StructToken
	EnumToken
)

// String returns the kind's name, which is also its capture group name.
func (k TokenKind) String() string {
	switch k {
	case DocCommentToken:
		return "DocComment"
	case FunctionToken:
		return "Function"
	case StructToken:
		return "Struct"
	case EnumToken:
		return "Enum"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Span is a tagged substring of the source, in source order.
type Span struct {
	Kind  TokenKind
	Value string
}

// tokenPatterns is ordered: at a given start position the first alternative
// that matches wins.
var tokenPatterns = [...]struct {
	kind    TokenKind
	pattern string
}{
	{DocCommentToken, `/\*\*.*?\*/`},
	{FunctionToken, `\w+\s+\w+\s*\([^)]*\)\s*;`},
	{StructToken, `(?:typedef\s+)?struct\s+\w+\s*\{[^}]*\}\s*(?:\w+)?;`},
	{EnumToken, `(?:typedef\s+)?enum\s+\w+\s*\{[^}]*\}\s*(?:\w+)?;`},
}

var tokenRegex, tokenGroups = compileTokenRegex()

// compileTokenRegex joins tokenPatterns into one named alternation. A pattern
// set that does not compile is a programming error and panics at init.
func compileTokenRegex() (*regexp.Regexp, []int) {
	alternatives := make([]string, len(tokenPatterns))
	for i, p := range tokenPatterns {
		alternatives[i] = fmt.Sprintf("(?P<%s>%s)", p.kind, p.pattern)
	}
	re := regexp.MustCompile(`(?s)` + strings.Join(alternatives, "|"))

	groups := make([]int, len(tokenPatterns))
	for i, p := range tokenPatterns {
		groups[i] = re.SubexpIndex(p.kind.String())
		if groups[i] < 0 {
			panic(fmt.Sprintf("generator: token pattern %s has no capture group", p.kind))
		}
	}
	return re, groups
}

// Tokenize returns every non-overlapping, leftmost span of src that matches
// one of the token patterns, in the order the spans start.
func Tokenize(src string) []Span {
	matches := tokenRegex.FindAllStringSubmatchIndex(src, -1)
	spans := make([]Span, 0, len(matches))
	for _, m := range matches {
		for i, group := range tokenGroups {
			start := m[2*group]
			if start < 0 {
				continue
			}
			spans = append(spans, Span{
				Kind:  tokenPatterns[i].kind,
				Value: src[start:m[2*group+1]],
			})
			break
		}
	}
	return spans
}
