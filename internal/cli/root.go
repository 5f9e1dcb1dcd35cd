// Package cli provides the doc-buildr command-line interface.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Execute creates and runs the root command. SIGINT and SIGTERM cancel the
// command's context, which ends --watch cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	var config GenerateConfig

	cmd := &cobra.Command{
		Use:   "doc-buildr [flags] FILE...",
		Short: "Generate Markdown documentation from C-style headers",
		Long: `doc-buildr reads C-style source files, pairs each /** ... */ doc comment
with the struct, enum or function declaration that follows it, and writes
Markdown documentation for every declaration it finds.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Inputs = args
			if err := loadConfigFile(&config, cmd.Flags().Changed); err != nil {
				return err
			}
			return GenerateDocs(cmd.Context(), &config, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&config.OutputPath, "output", "o", "-", "Path to output file or '-' for stdout")
	cmd.Flags().StringVarP(&config.Format, "format", "f", "markdown", "Output format: markdown or html")
	cmd.Flags().StringVarP(&config.ConfigPath, "config", "c", "", "Path to config file (default "+DefaultConfigFile+" when present)")
	cmd.Flags().IntVarP(&config.Jobs, "jobs", "j", 0, "Files processed in parallel (0 = number of CPUs)")
	cmd.Flags().BoolVar(&config.NoModuleHeading, "no-module-heading", false, "Omit the '# Module <name>' banner")
	cmd.Flags().BoolVar(&config.Check, "check", false, "Fail with a diff when the output file is out of date instead of writing it")
	cmd.Flags().BoolVar(&config.Watch, "watch", false, "Regenerate whenever an input file changes")
	cmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newValidateCommand())

	return cmd
}
