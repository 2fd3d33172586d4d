package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Stack-Syndicate/ziggle/internal/branding"
	"github.com/Stack-Syndicate/ziggle/internal/config"
	"github.com/Stack-Syndicate/ziggle/internal/project"
	"github.com/Stack-Syndicate/ziggle/internal/toolchain"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool

	// configErr is the config file error from the last Load.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` bootstraps projects that pair a Zig executable with a Rust library.
It runs zig init and cargo init, generates a C header for the library with
cbindgen, and wires the cargo build into build.zig.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configErr = config.Load()
		// doctor reports it as a check line instead.
		if configErr != nil && cmd.Name() != "doctor" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v; using defaults\n", configErr)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Echo each external command before it runs")
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr before being returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status. A
// failed zig build passes its own status through.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := project.BuildExitCode(err); ok {
		return code
	}
	return 1
}

// newRunner returns the runner for external tools. Tests replace it.
var newRunner = func(cmd *cobra.Command) toolchain.Runner {
	r := &toolchain.ExecRunner{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	if verbose {
		r.Trace = cmd.ErrOrStderr()
	}
	return r
}
