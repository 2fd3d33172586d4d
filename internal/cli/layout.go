package cli

import (
	"github.com/Stack-Syndicate/ziggle/internal/config"
	"github.com/Stack-Syndicate/ziggle/internal/project"
	"github.com/spf13/cobra"
)

// layoutFlags are the project layout flags shared by init, wire and verify.
// Each one overrides the matching config key.
type layoutFlags struct {
	name       string
	srcDir     string
	headerDir  string
	crateTypes []string
}

func (l *layoutFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&l.name, "name", "", "Project (cargo package) name")
	f.StringVar(&l.srcDir, "src-dir", "", "Directory holding the Zig sources (config: src_dir)")
	f.StringVar(&l.headerDir, "header-dir", "", "Directory cbindgen writes the C header to (config: header_dir)")
	f.StringSliceVar(&l.crateTypes, "crate-types", nil, "Library kinds written to lib.crate-type (config: crate_types)")
}

// options merges the flags over the configured settings for a project in dir.
func (l *layoutFlags) options(cmd *cobra.Command, dir string) project.Options {
	s := config.Current()
	opts := project.Options{
		Dir:             dir,
		Name:            l.name,
		SrcDir:          s.SrcDir,
		HeaderDir:       s.HeaderDir,
		CrateTypes:      s.CrateTypes,
		ZigBin:          s.ZigBin,
		CargoBin:        s.CargoBin,
		ZigConstraint:   s.ZigConstraint,
		CargoConstraint: s.CargoConstraint,
		SkipBuild:       s.SkipBuild,
		Runner:          newRunner(cmd),
		Out:             cmd.OutOrStdout(),
	}
	if l.srcDir != "" {
		opts.SrcDir = l.srcDir
	}
	if l.headerDir != "" {
		opts.HeaderDir = l.headerDir
	}
	if len(l.crateTypes) > 0 {
		opts.CrateTypes = l.crateTypes
	}
	return opts
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
