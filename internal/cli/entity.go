package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewEntityCommand creates the entity command family.
func NewEntityCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entity",
		Aliases: []string{"er"},
		Short:   "Manage entities used to classify tracked files",
	}

	add := &cobra.Command{
		Use:           "add <short> <description>",
		Short:         "Add or overwrite an entity",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntityAdd(rootOpts, cmd, args[0], args[1])
		},
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List entities",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntityList(rootOpts, cmd)
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func runEntityAdd(opts *RootOptions, cmd *cobra.Command, short, description string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	e, err := s.AddEntity(short, description)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(e, "Added entity %s (%s)", e.ShortName, e.Description)
}

func runEntityList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	entities := s.ListEntities()
	if formatter.Format == "json" {
		return formatter.Success(entities)
	}

	if len(entities) == 0 {
		fmt.Fprintln(formatter.Writer, "No entities defined.")
		return nil
	}
	for _, e := range entities {
		fmt.Fprintf(formatter.Writer, "%s\t%s\n", e.ShortName, e.Description)
	}
	return nil
}
