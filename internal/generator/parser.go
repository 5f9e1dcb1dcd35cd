package generator

import (
	"regexp"
	"strings"

	"github.com/example/doc-buildr/internal/errors"
)

var (
	structPattern   = regexp.MustCompile(`(?s)struct\s+(\w+)\s*\{(.*?)\}`)
	enumPattern     = regexp.MustCompile(`(?s)enum\s+(\w+)\s*\{(.*?)\}`)
	functionPattern = regexp.MustCompile(`(?s)(\w+)\s+(\w+)\s*\((.*?)\)`)
)

// ParseSpans parses every span in order. The first span that does not fit
// its grammar aborts the whole input.
func ParseSpans(spans []Span) ([]Parsed, error) {
	parsed := make([]Parsed, 0, len(spans))
	for _, span := range spans {
		p, err := ParseSpan(span)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

// ParseSpan turns one span into a DocComment or a Declaration.
func ParseSpan(span Span) (Parsed, error) {
	switch span.Kind {
	case DocCommentToken:
		doc, err := ParseDocComment(span.Value)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Doc: doc}, nil
	case StructToken:
		s, err := ParseStruct(span.Value)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Decl: s}, nil
	case EnumToken:
		e, err := ParseEnum(span.Value)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Decl: e}, nil
	case FunctionToken:
		f, err := ParseFunction(span.Value)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{Decl: f}, nil
	default:
		return Parsed{}, errors.Errorf(errors.KindInternal, "unknown token kind %s", span.Kind)
	}
}

// ParseStruct parses `struct Name { members; }`. Members are split on ';'.
func ParseStruct(src string) (*Struct, error) {
	m := structPattern.FindStringSubmatch(src)
	if m == nil {
		return nil, mismatch(StructToken, src)
	}
	return &Struct{Name: m[1], Members: splitTrimmed(m[2], ";")}, nil
}

// ParseEnum parses `enum Name { A, B }`. Variants are split on ','.
func ParseEnum(src string) (*Enum, error) {
	m := enumPattern.FindStringSubmatch(src)
	if m == nil {
		return nil, mismatch(EnumToken, src)
	}
	return &Enum{Name: m[1], Variants: splitTrimmed(m[2], ",")}, nil
}

// ParseFunction parses `ReturnType name(params)`.
func ParseFunction(src string) (*Function, error) {
	m := functionPattern.FindStringSubmatch(src)
	if m == nil {
		return nil, mismatch(FunctionToken, src)
	}
	return &Function{ReturnType: m[1], Name: m[2], Params: splitTrimmed(m[3], ",")}, nil
}

func mismatch(kind TokenKind, src string) error {
	err := errors.Errorf(errors.KindStructuralMismatch, "%s declaration does not match the %s grammar: %q", kind, kind, src)
	err = errors.Attr(err, "kind", kind.String())
	return errors.Attr(err, "span", src)
}

// splitTrimmed splits s on sep, trims each piece and drops empty ones.
func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
