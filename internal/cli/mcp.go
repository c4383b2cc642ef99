package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/mcp"
)

// NewMCPCommand creates the mcp command. It serves the VQL tool set over
// stdio until the client disconnects, spawning this same binary for each
// tool call.
func NewMCPCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mcp",
		Short:         "Serve VQL tools over the Model Context Protocol (stdio)",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(rootOpts, cmd)
		},
	}
	return cmd
}

func runMCP(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	binary, err := os.Executable()
	if err != nil {
		execErr := fmt.Errorf("locate executable: %w", err)
		_ = formatter.Error("IO_ERROR", execErr.Error())
		return WrapExitError(ExitCommandError, "IO_ERROR", execErr)
	}

	srv := mcp.NewServer(binary, opts.Dir)
	if err := srv.Run(cmd.Context()); err != nil {
		serveErr := fmt.Errorf("mcp server: %w", err)
		_ = formatter.Error("ERROR", serveErr.Error())
		return WrapExitError(ExitCommandError, "ERROR", serveErr)
	}
	return nil
}
