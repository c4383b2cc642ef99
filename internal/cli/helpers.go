package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/vql/internal/config"
	"github.com/roach88/vql/internal/store"
	"github.com/roach88/vql/internal/workspace"
)

// newFormatter builds the formatter for a command, wiring verbose output
// to stderr so JSON on stdout stays parseable.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// configureLogging routes slog to stderr with a level derived from the
// verbose flag.
func configureLogging(opts *RootOptions) {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// storeOptions converts workspace config to store options.
func storeOptions(cfg config.Config) store.Options {
	opts := store.DefaultOptions()
	opts.StrictIdentifiers = cfg.StrictIdentifiers
	opts.ExtractRatings = cfg.ExtractRatings
	opts.StaleCheck = cfg.StaleCheck
	return opts
}

// openStore discovers the workspace from the --dir flag, loads optional
// config, and opens the document. Every command is one load-mutate-save
// cycle; nothing caches the store across invocations.
func openStore(opts *RootOptions, f *OutputFormatter) (*store.Store, error) {
	_, vqlDir, err := workspace.FindRoot(opts.Dir)
	if err != nil {
		_ = f.Error(string(store.ErrCodeNotFound), err.Error())
		return nil, WrapExitError(ExitCommandError, string(store.ErrCodeNotFound), err)
	}
	f.VerboseLog("using VQL directory %s", vqlDir)

	cfg, err := config.Load(vqlDir)
	if err != nil {
		_ = f.Error(string(store.ErrCodeIO), err.Error())
		return nil, WrapExitError(ExitCommandError, string(store.ErrCodeIO), err)
	}

	s, err := store.OpenWith(vqlDir, storeOptions(cfg))
	if err != nil {
		return nil, fail(f, err)
	}
	return s, nil
}

// saveStore persists the document, mapping failures to exit errors.
func saveStore(s *store.Store, f *OutputFormatter) error {
	if err := s.Save(); err != nil {
		return fail(f, err)
	}
	return nil
}
