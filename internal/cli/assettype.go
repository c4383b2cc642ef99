package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAssetTypeCommand creates the asset-type command family.
func NewAssetTypeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "asset-type",
		Aliases: []string{"at"},
		Short:   "Manage asset type categories",
	}

	add := &cobra.Command{
		Use:           "add <short> <description>",
		Short:         "Add or overwrite an asset type",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetTypeAdd(rootOpts, cmd, args[0], args[1])
		},
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List asset types",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetTypeList(rootOpts, cmd)
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func runAssetTypeAdd(opts *RootOptions, cmd *cobra.Command, short, description string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	at, err := s.AddAssetType(short, description)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(at, "Added asset type %s (%s)", at.ShortName, at.Description)
}

func runAssetTypeList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	types := s.ListAssetTypes()
	if formatter.Format == "json" {
		return formatter.Success(types)
	}

	if len(types) == 0 {
		fmt.Fprintln(formatter.Writer, "No asset types defined.")
		return nil
	}
	for _, at := range types {
		fmt.Fprintf(formatter.Writer, "%s\t%s\n", at.ShortName, at.Description)
	}
	return nil
}
