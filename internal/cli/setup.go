package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/config"
	"github.com/roach88/vql/internal/store"
	"github.com/roach88/vql/internal/workspace"
)

// NewSetupCommand creates the setup command.
func NewSetupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "setup",
		Aliases: []string{"su"},
		Short:   "Initialize a VQL workspace in the current directory",
		Long: `Create a VQL directory in the current (or --dir) directory and
synthesize a fresh storage document if none exists. Running setup in an
already-initialized workspace is a no-op that reports the existing
document.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(rootOpts, cmd)
		},
	}
	return cmd
}

func runSetup(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	configureLogging(opts)

	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return fail(formatter, err)
	}

	vqlDir, err := workspace.EnsureDir(root)
	if err != nil {
		_ = formatter.Error(string(store.ErrCodeIO), err.Error())
		return WrapExitError(ExitCommandError, string(store.ErrCodeIO), err)
	}

	cfg, err := config.Load(vqlDir)
	if err != nil {
		_ = formatter.Error(string(store.ErrCodeIO), err.Error())
		return WrapExitError(ExitCommandError, string(store.ErrCodeIO), err)
	}

	s, err := store.Init(vqlDir, storeOptions(cfg))
	if err != nil {
		return fail(formatter, err)
	}

	payload := map[string]string{
		"vql_dir": s.Dir(),
		"storage": workspace.StoragePath(s.Dir()),
		"version": s.Document().Version,
	}
	return formatter.Successf(payload, "VQL workspace ready at %s", s.Dir())
}
