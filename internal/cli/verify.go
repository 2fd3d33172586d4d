package cli

import (
	"errors"

	"github.com/Stack-Syndicate/ziggle/internal/project"
	"github.com/spf13/cobra"
)

var verifyLayout layoutFlags

func init() {
	verifyLayout.register(verifyCmd)
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify [dir]",
	Short: "Check that a project is wired for the Rust library",
	Long: `Check the manifest crate-type, the header path written by build.rs, the
cargo build and link steps in build.zig, and the Zig source directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := project.Verify(verifyLayout.options(cmd, dirArg(args)))
		if err != nil {
			return err
		}
		report.Print(cmd.OutOrStdout())
		if !report.OK() {
			return errors.New("project verification failed")
		}
		return nil
	},
}
