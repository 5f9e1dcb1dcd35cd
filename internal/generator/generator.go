// Package generator turns C-style declarations and their /** ... */ doc
// comments into Markdown.
//
// The pipeline is Tokenize -> ParseSpans -> Assemble -> RenderMarkdown. Each
// stage is a pure function of its input; Generator adds file handling,
// caching and parallelism on top.
package generator

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/example/doc-buildr/internal/errors"
)

// Build tokenizes, parses and assembles src.
func Build(src string) (Document, error) {
	parsed, err := ParseSpans(Tokenize(src))
	if err != nil {
		return Document{}, err
	}
	return Assemble(parsed), nil
}

// Generator generates Markdown for one or more source inputs.
type Generator struct {
	logger        logrus.FieldLogger
	cache         *Cache
	jobs          int
	moduleHeading bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithCache enables the render cache.
func WithCache(c *Cache) Option {
	return func(g *Generator) { g.cache = c }
}

// WithJobs limits how many files GenerateFiles processes at once.
// Zero or less means runtime.GOMAXPROCS(0).
func WithJobs(n int) Option {
	return func(g *Generator) { g.jobs = n }
}

// WithModuleHeading controls the "# Module <name>" banner. It is on by default.
func WithModuleHeading(enabled bool) Option {
	return func(g *Generator) { g.moduleHeading = enabled }
}

// New creates a generator.
func New(opts ...Option) *Generator {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	g := &Generator{
		logger:        discard,
		moduleHeading: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.jobs <= 0 {
		g.jobs = runtime.GOMAXPROCS(0)
	}
	return g
}

// Generate renders the Markdown for src without a module banner.
func (g *Generator) Generate(src string) (string, error) {
	doc, err := Build(src)
	if err != nil {
		return "", err
	}
	names := make([]string, len(doc.Nodes))
	for i, n := range doc.Nodes {
		names[i] = n.Decl.DeclName()
	}
	g.logger.WithField("declarations", names).Debug("Assembled declarations")

	if doc.Discarded > 0 {
		g.logger.WithField("count", doc.Discarded).Debug("Dropped doc comments with no following declaration")
	}
	return RenderMarkdown(doc), nil
}

// GenerateModule renders src under a "# Module <name>" banner.
func (g *Generator) GenerateModule(name, src string) (string, error) {
	if g.cache != nil {
		if out, ok := g.cache.Get(name, src); ok {
			g.logger.WithField("module", name).Debug("Render cache hit")
			return out, nil
		}
	}

	md, err := g.Generate(src)
	if err != nil {
		return "", errors.Attr(err, "module", name)
	}

	out := md
	if g.moduleHeading {
		out = fmt.Sprintf("# Module %s\n\n%s", name, md)
	}
	if g.cache != nil {
		g.cache.Add(name, src, out)
	}
	return out, nil
}

// GenerateFile reads path and renders it under a banner named after the
// file's base name without extension.
func (g *Generator) GenerateFile(path string) (string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		err = errors.Wrapf(err, errors.KindInputUnavailable, "File '%s' not found", path)
		return "", errors.Attr(err, "file", path)
	}

	out, err := g.GenerateModule(ModuleName(path), string(data))
	if err != nil {
		return "", errors.Attr(err, "file", path)
	}
	return out, nil
}

// FileResult is the outcome of generating one input file.
type FileResult struct {
	Path   string
	Output string
	Err    error
}

// GenerateFiles renders paths concurrently. Results are in the order of
// paths and a failing file never stops the others.
func (g *Generator) GenerateFiles(ctx context.Context, paths []string) []FileResult {
	results := make([]FileResult, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.jobs)

	for i, path := range paths {
		eg.Go(func() error {
			results[i].Path = path
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			out, err := g.GenerateFile(path)
			if err != nil {
				g.logger.WithFields(logrus.Fields{
					"file": path,
					"kind": errors.GetKind(err).String(),
				}).WithError(err).Warn("Failed to generate documentation")
				results[i].Err = err
				return nil
			}
			results[i].Output = out
			return nil
		})
	}

	_ = eg.Wait()
	return results
}

// ModuleName returns the base name of path without its extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
