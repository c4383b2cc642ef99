package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewPrincipleCommand creates the principle command family.
func NewPrincipleCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "principle",
		Aliases: []string{"pr"},
		Short:   "Manage review principles",
	}

	add := &cobra.Command{
		Use:   "add <short> <long-name> [guidance]",
		Short: "Add or overwrite a principle",
		Long: `Add a principle to the store. Re-adding an existing principle
overwrites it; a short name already used by an entity, asset type, or
asset reference is a namespace conflict.`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			guidance := ""
			if len(args) == 3 {
				guidance = args[2]
			}
			return runPrincipleAdd(rootOpts, cmd, args[0], args[1], guidance)
		},
	}

	list := &cobra.Command{
		Use:           "list",
		Short:         "List principles",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrincipleList(rootOpts, cmd)
		},
	}

	get := &cobra.Command{
		Use:           "get <short>",
		Short:         "Show one principle, including guidance",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrincipleGet(rootOpts, cmd, args[0])
		},
	}

	cmd.AddCommand(add, list, get)
	return cmd
}

func runPrincipleAdd(opts *RootOptions, cmd *cobra.Command, short, longName, guidance string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	p, err := s.AddPrinciple(short, longName, guidance)
	if err != nil {
		return fail(formatter, err)
	}
	if err := saveStore(s, formatter); err != nil {
		return err
	}
	return formatter.Successf(p, "Added principle %s (%s)", p.ShortName, p.LongName)
}

func runPrincipleList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	principles := s.ListPrinciples()
	if formatter.Format == "json" {
		return formatter.Success(principles)
	}

	if len(principles) == 0 {
		fmt.Fprintln(formatter.Writer, "No principles defined.")
		return nil
	}
	for _, p := range principles {
		fmt.Fprintf(formatter.Writer, "%s\t%s\n", p.ShortName, p.LongName)
	}
	return nil
}

func runPrincipleGet(opts *RootOptions, cmd *cobra.Command, short string) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	s, err := openStore(opts, formatter)
	if err != nil {
		return err
	}

	p, err := s.GetPrinciple(short)
	if err != nil {
		return fail(formatter, err)
	}
	if formatter.Format == "json" {
		return formatter.Success(p)
	}

	fmt.Fprintf(formatter.Writer, "%s: %s\n", p.ShortName, p.LongName)
	if p.Guidance != "" {
		fmt.Fprintln(formatter.Writer, strings.TrimRight(p.Guidance, "\n"))
	}
	return nil
}
