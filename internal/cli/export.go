package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/report"
)

// NewExportCommand creates the export command. The report format is a
// positional argument because --format is taken by the global output
// flag.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:     "export [md|json]",
		Aliases: []string{"ex"},
		Short:   "Write an assessment report into the VQL directory",
		Long: `Render an assessment report covering every tracked asset and write it
next to the storage file, as vql-report.md or vql-report.json. The
format defaults to markdown.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reportFormat := "md"
			if len(args) == 1 {
				reportFormat = args[0]
			}
			return runExport(rootOpts, cmd, reportFormat, details)
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "include per-review analysis text (md only)")
	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command, reportFormat string, details bool) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	if reportFormat != "md" && reportFormat != "json" {
		err := fmt.Errorf("invalid report format %q: use md or json", reportFormat)
		_ = formatter.Error("ERROR", err.Error())
		return WrapExitError(ExitFailure, "ERROR", err)
	}

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	doc := s.Document()
	r := report.Build(doc, s.Options().Clock())

	var (
		data []byte
		name string
	)
	switch reportFormat {
	case "json":
		name = "vql-report.json"
		data, err = r.JSON()
		if err != nil {
			_ = formatter.Error("ERROR", err.Error())
			return WrapExitError(ExitFailure, "ERROR", err)
		}
	default:
		name = "vql-report.md"
		data = []byte(r.Markdown(doc, details))
	}

	path := filepath.Join(s.Dir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		writeErr := fmt.Errorf("write %s: %w", path, err)
		_ = formatter.Error("IO_ERROR", writeErr.Error())
		return WrapExitError(ExitCommandError, "IO_ERROR", writeErr)
	}

	return formatter.Successf(map[string]any{
		"path":   path,
		"assets": len(r.Assets),
	}, "Wrote report for %d asset(s) to %s", len(r.Assets), path)
}
