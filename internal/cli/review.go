package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/schema"
	"github.com/roach88/vql/internal/store"
)

// ReviewOptions holds flags for the review store command.
type ReviewOptions struct {
	*RootOptions
	Rating string
}

// NewReviewCommand creates the review command family.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review",
		Aliases: []string{"st"},
		Short:   "Record principle reviews for assets",
	}

	opts := &ReviewOptions{RootOptions: rootOpts}
	storeCmd := &cobra.Command{
		Use:   "store <asset> <principle> <text>",
		Short: "Store a review, replacing any prior review for the pair",
		Long: `Store a principle's review of an asset. Without --rating, a
compliance level is derived from the text ("HIGH compliance",
"compliance: low", ...); text with no recognizable level is stored
unrated, which is valid. The latest review wins: text and rating are
both replaced.`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReviewStore(opts, cmd, args[0], args[1], args[2])
		},
	}
	storeCmd.Flags().StringVar(&opts.Rating, "rating", "", "explicit rating (H|M|L); overrides extraction")

	show := &cobra.Command{
		Use:           "show <asset> <principle>",
		Short:         "Show the stored review for one (asset, principle) pair",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReviewShow(rootOpts, cmd, args[0], args[1])
		},
	}

	cmd.AddCommand(storeCmd, show)
	return cmd
}

func runReviewShow(opts *RootOptions, cmd *cobra.Command, asset, principle string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	reviews, err := s.QueryReviews(asset, []string{principle})
	if err != nil {
		return fail(formatter, err)
	}
	review, ok := reviews[principle]
	if !ok {
		return formatter.Successf(nil, "No review of %s recorded for %s", principle, asset)
	}
	if formatter.Format == "json" {
		return formatter.Success(review)
	}

	fmt.Fprintf(formatter.Writer, "%s\t%s\t%s\n", principle, review.Rating.Display(), review.LastModified)
	if review.Analysis != "" {
		fmt.Fprintln(formatter.Writer, review.Analysis)
	}
	return nil
}

func runReviewStore(opts *ReviewOptions, cmd *cobra.Command, asset, principle, text string) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	configureLogging(opts.RootOptions)

	var rating schema.Rating
	if opts.Rating != "" {
		parsed, err := schema.ParseRating(opts.Rating)
		if err != nil {
			_ = formatter.Error(string(store.ErrCodeInvalidRating), err.Error())
			return WrapExitError(ExitFailure, string(store.ErrCodeInvalidRating), err)
		}
		rating = parsed
	}

	s, err := openStore(opts.RootOptions, formatter)
	if err != nil {
		return err
	}

	review, err := s.StoreReview(asset, principle, text, rating)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}

	if review.Rating.Valid() {
		return formatter.Successf(review, "Stored %s review for %s with %s compliance rating", principle, asset, review.Rating.Display())
	}
	return formatter.Successf(review, "Stored %s review for %s (unrated)", principle, asset)
}
