package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Stack-Syndicate/ziggle/internal/manifest"
	"github.com/Stack-Syndicate/ziggle/internal/scaffold"
	"github.com/Stack-Syndicate/ziggle/internal/toolchain"
)

// File and directory names fixed by the two toolchains.
const (
	BuildScript   = "build.zig"
	CargoManifest = "Cargo.toml"
	defaultSrcDir = "src-zig"
	cargoSrcDir   = "src"
	bindgenCrate  = "cbindgen"
)

// namePattern matches names cargo accepts for a new package.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Options configures Bootstrap, Rewire and Verify. Zero values select the
// defaults.
type Options struct {
	Dir        string   // project root; "" means the working directory
	Name       string   // package name; defaults to the base name of Dir
	SrcDir     string   // where the Zig sources are moved; default "src-zig"
	HeaderDir  string   // generated header directory; default "target/headers"
	CrateTypes []string // lib.crate-type; default cdylib, rlib, staticlib

	ZigBin          string
	CargoBin        string
	ZigConstraint   string
	CargoConstraint string

	Force     bool // continue over an existing project and overwrite build.rs
	SkipBuild bool // stop before zig build
	DryRun    bool // print the plan without running anything

	Runner toolchain.Runner
	Out    io.Writer
}

// ArtifactName returns the library name cargo produces for a package: the
// package name with "-" replaced by "_".
func ArtifactName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// ValidateName reports whether name can be used as a cargo package name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("invalid project name %q: use letters, digits, '-' or '_', not starting with a digit", name)
	}
	return nil
}

// resolve fills in defaults and makes Dir absolute.
func (o Options) resolve() (Options, error) {
	dir := o.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return o, fmt.Errorf("resolving project directory %s: %w", dir, err)
	}
	o.Dir = abs

	if o.Name == "" {
		o.Name = filepath.Base(abs)
	}
	if o.SrcDir == "" {
		o.SrcDir = defaultSrcDir
	}
	if filepath.Clean(o.SrcDir) == cargoSrcDir {
		return o, fmt.Errorf("source directory %q collides with the cargo source directory", o.SrcDir)
	}
	if o.HeaderDir == "" {
		o.HeaderDir = scaffold.DefaultHeaderDir
	}
	if len(o.CrateTypes) == 0 {
		o.CrateTypes = manifest.DefaultLibraryKinds
	}
	if o.Runner == nil {
		o.Runner = &toolchain.ExecRunner{}
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	return o, nil
}

func (o Options) path(rel string) string {
	return filepath.Join(o.Dir, filepath.FromSlash(rel))
}

func (o Options) zig() *toolchain.Zig {
	return &toolchain.Zig{Bin: o.ZigBin, Runner: o.Runner}
}

func (o Options) cargo() *toolchain.Cargo {
	return &toolchain.Cargo{Bin: o.CargoBin, Runner: o.Runner}
}

// Tools returns the toolchain requirements for opts.
func (o Options) Tools() []toolchain.Tool {
	return []toolchain.Tool{
		toolchain.ZigTool(o.ZigBin, o.ZigConstraint),
		toolchain.CargoTool(o.CargoBin, o.CargoConstraint),
	}
}
