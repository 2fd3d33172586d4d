package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Stack-Syndicate/ziggle/internal/project"
	"github.com/Stack-Syndicate/ziggle/internal/prompt"
	"github.com/spf13/cobra"
)

var (
	initLayout    layoutFlags
	initForce     bool
	initSkipBuild bool
	initDryRun    bool
	initYes       bool
)

func init() {
	initLayout.register(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Continue over an existing project and overwrite build.rs")
	initCmd.Flags().BoolVar(&initSkipBuild, "skip-build", false, "Stop before running zig build")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Print the steps without running them")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept defaults instead of prompting")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a Zig executable linked against a Rust library",
	Long: `Create a hybrid project in dir.

Runs zig init and moves the Zig sources to src-zig, runs cargo init --lib and
adds cbindgen as a build dependency, writes a build.rs that generates
target/headers/<name>.h, sets lib.crate-type, and wires the cargo build into
build.zig. Finishes with zig build unless --skip-build is given.

Without a dir argument or --name, both are prompted for.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}
	name := initLayout.name

	if !initYes {
		ctx := cmd.Context()
		p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
		var err error
		if dir == "" {
			if dir, err = p.Text(ctx, "Project directory:", "."); err != nil {
				return err
			}
		}
		if name == "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", dir, err)
			}
			if name, err = p.Text(ctx, "Project name:", filepath.Base(abs)); err != nil {
				return err
			}
		}
		if !initDryRun && !initForce && hasEntries(dir) {
			ok, err := p.Confirm(ctx, fmt.Sprintf("%s is not empty. Continue?", dir), false)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("aborted")
			}
		}
	}
	if dir == "" {
		dir = "."
	}

	opts := initLayout.options(cmd, dir)
	opts.Name = name
	opts.Force = initForce
	opts.DryRun = initDryRun
	if initSkipBuild {
		opts.SkipBuild = true
	}

	_, err := project.Bootstrap(cmd.Context(), opts)
	return err
}

// hasEntries reports whether dir exists and contains anything.
func hasEntries(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}
