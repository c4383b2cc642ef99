package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query <asset> [principles...]",
		Aliases: []string{"rv"},
		Short:   "Show the reviews recorded for an asset",
		Long: `Show the reviews recorded for an asset, optionally filtered to the
given principle identifiers. Identifiers may be passed as separate
arguments or comma-separated; filter identifiers with no review on the
asset are omitted from the output, not reported as errors.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, cmd, args[0], splitPrincipleArgs(args[1:]))
		},
	}
	return cmd
}

// splitPrincipleArgs flattens positional filter arguments, treating each
// as a comma-separated list.
func splitPrincipleArgs(args []string) []string {
	var principles []string
	for _, arg := range args {
		for _, p := range strings.Split(arg, ",") {
			if p = strings.TrimSpace(p); p != "" {
				principles = append(principles, p)
			}
		}
	}
	return principles
}

func runQuery(opts *RootOptions, cmd *cobra.Command, asset string, principles []string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	reviews, err := s.QueryReviews(asset, principles)
	if err != nil {
		return fail(formatter, err)
	}
	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"asset":   asset,
			"reviews": reviews,
		})
	}

	if len(reviews) == 0 {
		fmt.Fprintf(formatter.Writer, "No reviews recorded for %s.\n", asset)
		return nil
	}

	shorts := make([]string, 0, len(reviews))
	for short := range reviews {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)

	for _, short := range shorts {
		review := reviews[short]
		fmt.Fprintf(formatter.Writer, "%s\t%s\t%s\n", short, review.Rating.Display(), review.LastModified)
		if review.Analysis != "" {
			fmt.Fprintln(formatter.Writer, strings.TrimRight(review.Analysis, "\n"))
		}
	}
	return nil
}
