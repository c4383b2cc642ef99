// Command vql tracks compliance reviews of source files against
// user-defined quality principles.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/vql/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands render their own diagnostics before returning; only
		// flag and usage errors land here unprinted.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
