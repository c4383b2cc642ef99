package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/importer"
)

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import <file.md>",
		Aliases: []string{"rf"},
		Short:   "Batch-import principles from a markdown document",
		Long: `Import principles from a markdown file. Each heading of the form
"# Long Name (shortcode)" starts a principle; the text up to the next
such heading becomes its guidance. The whole batch is validated before
anything commits, so a single bad shortcode fails the import and leaves
the store untouched.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runImport(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	data, err := os.ReadFile(path)
	if err != nil {
		readErr := fmt.Errorf("read %s: %w", path, err)
		_ = formatter.Error("IO_ERROR", readErr.Error())
		return WrapExitError(ExitCommandError, "IO_ERROR", readErr)
	}

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	added, err := importer.Import(s, string(data))
	if err != nil {
		return fail(formatter, err)
	}
	if len(added) == 0 {
		return formatter.Successf(added, "No principle headings found in %s", path)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(added, "Imported %d principle(s) from %s", len(added), path)
}
