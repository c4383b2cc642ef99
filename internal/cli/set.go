package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/schema"
	"github.com/roach88/vql/internal/store"
)

// NewSetCommand creates the set command family (exemplar, compliance).
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set asset flags and compliance ratings",
	}

	exemplar := &cobra.Command{
		Use:           "exemplar <asset> <true|false>",
		Aliases:       []string{"se"},
		Short:         "Mark or unmark an asset as a best-practice example",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetExemplar(rootOpts, cmd, args[0], args[1])
		},
	}

	compliance := &cobra.Command{
		Use:     "compliance <asset> <principle> <H|M|L>",
		Aliases: []string{"sc"},
		Short:   "Set a compliance rating, preserving any analysis text",
		Long: `Set the rating for one (asset, principle) pair. The review record is
created if absent; an existing review keeps its analysis text and only
the rating changes.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetCompliance(rootOpts, cmd, args[0], args[1], args[2])
		},
	}

	cmd.AddCommand(exemplar, compliance)
	return cmd
}

func runSetExemplar(opts *RootOptions, cmd *cobra.Command, asset, value string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	flag, err := parseExemplarFlag(value)
	if err != nil {
		_ = formatter.Error("ERROR", err.Error())
		return WrapExitError(ExitFailure, "ERROR", err)
	}

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	ref, err := s.SetExemplar(asset, flag)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(ref, "Asset %s exemplar status set to %t", ref.ShortName, ref.Exemplar)
}

func runSetCompliance(opts *RootOptions, cmd *cobra.Command, asset, principle, rating string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	parsed, err := schema.ParseRating(rating)
	if err != nil {
		_ = formatter.Error(string(store.ErrCodeInvalidRating), err.Error())
		return WrapExitError(ExitFailure, string(store.ErrCodeInvalidRating), err)
	}

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	review, err := s.SetCompliance(asset, principle, parsed)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(review, "Set %s compliance for %s to %s", principle, asset, review.Rating.Display())
}

// parseExemplarFlag accepts the tolerant boolean spellings the original
// tool accepted.
func parseExemplarFlag(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "t", "yes", "y":
		return true, nil
	case "false", "f", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("invalid exemplar status %q: use true/t/yes/y or false/f/no/n", value)
	}
}
