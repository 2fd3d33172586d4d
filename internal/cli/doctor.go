package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/Stack-Syndicate/ziggle/internal/config"
	"github.com/Stack-Syndicate/ziggle/internal/toolchain"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that zig and cargo are installed",
	Long: `Resolve zig and cargo, print their versions and check them against the
configured constraints (zig_constraint, cargo_constraint).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		checkConfigFile(w)

		s := config.Current()
		tools := []toolchain.Tool{
			toolchain.ZigTool(s.ZigBin, s.ZigConstraint),
			toolchain.CargoTool(s.CargoBin, s.CargoConstraint),
		}
		return toolchain.Diagnose(cmd.Context(), w, newRunner(cmd), tools)
	},
}

func checkConfigFile(w io.Writer) {
	path := config.FilePath()
	if configErr != nil {
		fmt.Fprintf(w, "  [WARN] %v; using defaults\n", configErr)
		return
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "  [WARN] no config file at %s, using defaults\n", path)
		return
	}
	fmt.Fprintf(w, "  [ OK ] config %s\n", path)
}
