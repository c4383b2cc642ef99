package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/report"
)

// NewMetricsCommand creates the metrics command.
func NewMetricsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "metrics <asset>",
		Short:         "Show quality metrics for one asset",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMetrics(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runMetrics(opts *RootOptions, cmd *cobra.Command, asset string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	ref, err := s.GetAssetReference(asset)
	if err != nil {
		return fail(formatter, err)
	}

	m := report.Metrics(s.Document(), ref)
	if formatter.Format == "json" {
		return formatter.Success(m)
	}

	fmt.Fprintf(formatter.Writer, "%s (%s)\n", m.Asset, m.Path)
	fmt.Fprintf(formatter.Writer, "Reviewed: %d\tScore: %d/%d (%.1f%%)\n", m.Reviewed, m.Score, m.MaxScore, m.Percent)

	shorts := make([]string, 0, len(m.Ratings))
	for short := range m.Ratings {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)
	for _, short := range shorts {
		fmt.Fprintf(formatter.Writer, "  %s\t%s\n", short, m.Ratings[short])
	}
	return nil
}
