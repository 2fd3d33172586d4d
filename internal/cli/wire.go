package cli

import (
	"github.com/Stack-Syndicate/ziggle/internal/project"
	"github.com/spf13/cobra"
)

var (
	wireLayout layoutFlags
	wireDryRun bool
)

func init() {
	wireLayout.register(wireCmd)
	wireCmd.Flags().BoolVar(&wireDryRun, "dry-run", false, "Print what would change without writing")
	rootCmd.AddCommand(wireCmd)
}

var wireCmd = &cobra.Command{
	Use:   "wire [dir]",
	Short: "Link the Rust library into an existing build.zig",
	Long: `Splice the cargo build and library link steps into build.zig and point the
default Zig source paths at the configured source directory. The library name
is read from Cargo.toml unless --name is given. A build.zig that is already
wired is left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := wireLayout.options(cmd, dirArg(args))
		opts.DryRun = wireDryRun
		_, err := project.Rewire(opts)
		return err
	},
}
