package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/doc-buildr/internal/errors"
	mdvalidator "github.com/example/doc-buildr/internal/validator"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check that Markdown files have the structure doc-buildr generates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ValidateDocs(args, cmd.OutOrStdout())
		},
	}
}

// ValidateDocs validates every path and reports each result to out.
func ValidateDocs(paths []string, out io.Writer) error {
	var (
		failed int
		kind   errors.Kind
	)
	for _, path := range paths {
		if err := mdvalidator.ValidateFile(path); err != nil {
			fmt.Fprintf(out, "✗ %v\n", err)
			if failed == 0 {
				kind = errors.GetKind(err)
			}
			failed++
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}

	if failed > 0 {
		return errors.Errorf(kind, "%d of %d file(s) failed validation", failed, len(paths))
	}
	return nil
}
