package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewAssetCommand creates the asset command family.
func NewAssetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "asset",
		Aliases: []string{"ar"},
		Short:   "Manage tracked asset references",
	}

	add := &cobra.Command{
		Use:   "add <short> <entity> <asset-type> <path>",
		Short: "Track a file as an asset reference",
		Long: `Register a file under a short name linked to an existing entity and
asset type. The path is stored forward-slash separated and relative to
the workspace root; paths outside the workspace are rejected.`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetAdd(rootOpts, cmd, args[0], args[1], args[2], args[3])
		},
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List asset references",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetList(rootOpts, cmd)
		},
	}

	setPath := &cobra.Command{
		Use:           "set-path <short> <path>",
		Short:         "Repoint an asset reference at a new file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssetSetPath(rootOpts, cmd, args[0], args[1])
		},
	}

	cmd.AddCommand(add, list, setPath)
	return cmd
}

func runAssetAdd(opts *RootOptions, cmd *cobra.Command, short, entity, assetType, path string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	ref, err := s.AddAssetReference(short, entity, assetType, path)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(ref, "Added asset %s -> %s", ref.ShortName, ref.Path)
}

func runAssetList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	refs := s.ListAssetReferences()
	if formatter.Format == "json" {
		return formatter.Success(refs)
	}

	if len(refs) == 0 {
		fmt.Fprintln(formatter.Writer, "No asset references defined.")
		return nil
	}
	for _, ref := range refs {
		exemplar := ""
		if ref.Exemplar {
			exemplar = "\t[exemplar]"
		}
		fmt.Fprintf(formatter.Writer, "%s\t%s/%s\t%s%s\n", ref.ShortName, ref.Entity, ref.AssetType, ref.Path, exemplar)
	}
	return nil
}

func runAssetSetPath(opts *RootOptions, cmd *cobra.Command, short, path string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	ref, err := s.SetAssetPath(short, path)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(ref, "Asset %s now points at %s", ref.ShortName, ref.Path)
}
