package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/example/doc-buildr/internal/errors"
)

// DefaultConfigFile is loaded from the working directory when --config is
// not given and the file exists.
const DefaultConfigFile = ".doc-buildr.yml"

// GenerateConfig holds configuration for documentation generation.
type GenerateConfig struct {
	Inputs          []string `validate:"dive,required"`
	OutputPath      string   `validate:"required"`
	Format          string   `validate:"oneof=markdown html"`
	Jobs            int      `validate:"min=0,max=64"`
	NoModuleHeading bool
	LogLevel        string `validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`
	Verbose         bool
	Check           bool
	Watch           bool
	ConfigPath      string
}

// fileConfig is the layout of .doc-buildr.yml.
type fileConfig struct {
	Inputs        []string `yaml:"inputs"`
	Output        string   `yaml:"output"`
	Format        string   `yaml:"format"`
	Jobs          *int     `yaml:"jobs"`
	ModuleHeading *bool    `yaml:"module_heading"`
	LogLevel      string   `yaml:"log_level"`
}

// loadConfigFile merges the config file into config. A value from the file
// only applies when the matching flag was not set on the command line.
func loadConfigFile(config *GenerateConfig, changed func(flag string) bool) error {
	path := config.ConfigPath
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		err = errors.Wrap(err, errors.KindConfiguration, "read config")
		return errors.Attr(err, "config", path)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		err = errors.Wrap(err, errors.KindConfiguration, "parse config")
		return errors.Attr(err, "config", path)
	}

	if len(config.Inputs) == 0 {
		config.Inputs = cfg.Inputs
	}
	if !changed("output") && cfg.Output != "" {
		config.OutputPath = cfg.Output
	}
	if !changed("format") && cfg.Format != "" {
		config.Format = cfg.Format
	}
	if !changed("jobs") && cfg.Jobs != nil {
		config.Jobs = *cfg.Jobs
	}
	if !changed("no-module-heading") && cfg.ModuleHeading != nil {
		config.NoModuleHeading = !*cfg.ModuleHeading
	}
	if config.LogLevel == "" {
		config.LogLevel = cfg.LogLevel
	}

	return nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// validateConfig checks the merged configuration.
func validateConfig(config *GenerateConfig) error {
	config.Format = strings.ToLower(config.Format)
	config.LogLevel = strings.ToLower(config.LogLevel)

	err := configValidator.Struct(config)
	if err == nil {
		if config.Check && config.OutputPath == "-" {
			return errors.New(errors.KindConfiguration, "--check needs an output file, not stdout")
		}
		if config.Check && config.Watch {
			return errors.New(errors.KindConfiguration, "--check and --watch cannot be combined")
		}
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, errors.KindConfiguration, "invalid configuration")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.New(errors.KindConfiguration, "invalid configuration: "+strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "required":
		return fmt.Sprintf("%s must not be empty", fe.Namespace())
	default:
		return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
}

// newLogger builds the CLI logger. --verbose wins over the configured level.
func newLogger(config *GenerateConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)

	if config.LogLevel != "" {
		if level, err := logrus.ParseLevel(config.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}
