package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sirupsen/logrus"

	"github.com/example/doc-buildr/internal/errors"
	"github.com/example/doc-buildr/internal/generator"
	"github.com/example/doc-buildr/internal/watch"
)

// watchCacheSize bounds the render cache used by --watch.
const watchCacheSize = 256

// GenerateDocs generates documentation for config.Inputs and writes, checks
// or watches the result according to config.
func GenerateDocs(ctx context.Context, config *GenerateConfig, stdout, stderr io.Writer) error {
	if len(config.Inputs) == 0 {
		fmt.Fprintln(stdout, "No input files!")
		return nil
	}
	if err := validateConfig(config); err != nil {
		return err
	}

	logger := newLogger(config, stderr)

	opts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithJobs(config.Jobs),
		generator.WithModuleHeading(!config.NoModuleHeading),
	}
	if config.Watch {
		opts = append(opts, generator.WithCache(generator.NewCache(watchCacheSize, 0)))
	}

	r := &runner{
		config: config,
		gen:    generator.New(opts...),
		logger: logger,
		stdout: stdout,
		fs:     defaultFileSystem,
	}

	if !config.Watch {
		return r.run(ctx)
	}

	if err := r.run(ctx); err != nil {
		logger.WithError(err).Error("Initial generation failed")
	}

	w, err := watch.New(config.Inputs, r.run)
	if err != nil {
		return err
	}
	w.Logger = logger

	logger.WithField("files", len(config.Inputs)).Info("Watching for changes")
	return w.Run(ctx)
}

type runner struct {
	config *GenerateConfig
	gen    *generator.Generator
	logger logrus.FieldLogger
	stdout io.Writer
	fs     FileSystem
}

// run performs one generation pass. Outputs of the inputs that succeeded are
// always written; the error reports the inputs that did not.
func (r *runner) run(ctx context.Context) error {
	results := r.gen.GenerateFiles(ctx, r.config.Inputs)

	var (
		outputs []string
		failed  []error
	)
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Err)
			continue
		}
		outputs = append(outputs, res.Output)
	}

	content, err := r.render(outputs)
	if err != nil {
		return err
	}

	if r.config.Check {
		err = r.check(content)
	} else {
		err = writeOutputWithFS(content, r.config.OutputPath, r.stdout, r.fs)
		if err == nil && r.config.OutputPath != "-" {
			r.logger.WithFields(logrus.Fields{
				"file":    r.config.OutputPath,
				"modules": len(outputs),
			}).Info("Documentation written")
		}
	}
	if err != nil {
		return err
	}

	if len(failed) > 0 {
		return errors.Wrapf(failed[0], errors.GetKind(failed[0]), "%d of %d input(s) failed", len(failed), len(results))
	}
	return nil
}

// render joins module outputs with a blank line, ends the result with a
// newline and applies the output format.
func (r *runner) render(outputs []string) (string, error) {
	if len(outputs) == 0 {
		return "", nil
	}
	content := strings.Join(outputs, "\n\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if r.config.Format == "html" {
		return generator.RenderHTML(content)
	}
	return content, nil
}

// check compares content with the output file and prints a unified diff when
// they differ.
func (r *runner) check(content string) error {
	path := r.config.OutputPath

	current, err := os.ReadFile(filepath.Clean(path))
	if err != nil && !os.IsNotExist(err) {
		err = errors.Wrap(err, errors.KindInputUnavailable, "read output for check")
		return errors.Attr(err, "file", path)
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(content),
		FromFile: path,
		ToFile:   path + " (generated)",
		Context:  3,
	})
	if err != nil {
		return errors.Wrap(err, errors.KindInternal, "diff output")
	}

	if diff == "" {
		r.logger.WithField("file", path).Info("Documentation is up to date")
		return nil
	}

	fmt.Fprint(r.stdout, diff)
	err = errors.Errorf(errors.KindInvalidOutput, "%s is out of date", path)
	return errors.Attr(err, "file", path)
}

// FileSystem is the part of the OS the output writer needs.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Create(name string) (io.WriteCloser, error)
}

// DefaultFileSystem implements FileSystem with the os package.
type DefaultFileSystem struct{}

func (fs *DefaultFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

func (fs *DefaultFileSystem) Create(name string) (io.WriteCloser, error) {
	return os.Create(filepath.Clean(name))
}

var defaultFileSystem FileSystem = &DefaultFileSystem{}

func writeOutputWithFS(content, path string, stdout io.Writer, fs FileSystem) error {
	if path == "-" {
		_, err := io.WriteString(stdout, content)
		return err
	}

	outDir := filepath.Dir(path)
	if fi, err := fs.Stat(outDir); err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf(errors.KindConfiguration, "output directory %s does not exist, please create it first", outDir)
			return errors.Attr(err, "file", path)
		}
		return errors.Wrap(err, errors.KindConfiguration, "stat output directory")
	} else if !fi.IsDir() {
		return errors.Errorf(errors.KindConfiguration, "output path %s is not a directory", outDir)
	}

	f, err := fs.Create(path)
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindConfiguration, "create output"), "file", path)
	}
	if _, err := io.WriteString(f, content); err != nil {
		_ = f.Close()
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "write output"), "file", path)
	}
	return f.Close()
}
