package toolchain

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)

// Tool describes an external binary and the versions the pipeline accepts.
type Tool struct {
	Name        string   // display name, e.g. "zig"
	Bin         string   // binary name or path
	VersionArgs []string // arguments that print the version
	Constraint  string   // semver constraint, empty to accept any version
	Purpose     string
}

// ZigTool describes the zig compiler.
func ZigTool(bin, constraint string) Tool {
	return Tool{
		Name:        "zig",
		Bin:         orDefault(bin, "zig"),
		VersionArgs: []string{"version"},
		Constraint:  constraint,
		Purpose:     "scaffolds and builds the Zig executable",
	}
}

// CargoTool describes the cargo package manager.
func CargoTool(bin, constraint string) Tool {
	return Tool{
		Name:        "cargo",
		Bin:         orDefault(bin, "cargo"),
		VersionArgs: []string{"--version"},
		Constraint:  constraint,
		Purpose:     "scaffolds and builds the Rust library",
	}
}

// Version runs the tool's version command and parses the result.
func (t Tool) Version(ctx context.Context, r Runner) (*semver.Version, error) {
	out, err := r.Run(ctx, Command{Name: t.Bin, Args: t.VersionArgs})
	if err != nil {
		return nil, err
	}
	v, err := ParseVersion(out.Stdout)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}
	return v, nil
}

// Check resolves the tool's version and verifies it against the constraint.
func (t Tool) Check(ctx context.Context, r Runner) (*semver.Version, error) {
	v, err := t.Version(ctx, r)
	if err != nil {
		return nil, err
	}
	if err := CheckVersion(v, t.Constraint); err != nil {
		return v, fmt.Errorf("%s: %w", t.Name, err)
	}
	return v, nil
}

// ParseVersion extracts the first semantic version from tool output, such as
// "0.14.0-dev.3+aa1b" from `zig version` or "1.80.0" from
// "cargo 1.80.0 (376290515 2024-07-16)".
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(match)
}

// CheckVersion verifies v against a semver constraint. An empty constraint
// accepts any version.
func CheckVersion(v *semver.Version, constraint string) error {
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %s does not satisfy %s", v, constraint)
	}
	return nil
}

// Zig wraps the zig subcommands the pipeline uses.
type Zig struct {
	Bin    string
	Runner Runner
}

// Init scaffolds a Zig project in dir.
func (z *Zig) Init(ctx context.Context, dir string) error {
	_, err := z.Runner.Run(ctx, Command{Name: orDefault(z.Bin, "zig"), Args: []string{"init"}, Dir: dir})
	return err
}

// Build runs `zig build` in dir attached to the terminal.
func (z *Zig) Build(ctx context.Context, dir string) error {
	_, err := z.Runner.Run(ctx, Command{
		Name:        orDefault(z.Bin, "zig"),
		Args:        []string{"build"},
		Dir:         dir,
		Interactive: true,
	})
	return err
}

// Cargo wraps the cargo subcommands the pipeline uses.
type Cargo struct {
	Bin    string
	Runner Runner
}

// InitLib scaffolds a library crate named name in dir.
func (c *Cargo) InitLib(ctx context.Context, dir, name string) error {
	args := []string{"init", "--lib"}
	if name != "" {
		args = append(args, "--name", name)
	}
	_, err := c.Runner.Run(ctx, Command{Name: c.bin(), Args: args, Dir: dir})
	return err
}

// AddBuildDependency adds crate to [build-dependencies].
func (c *Cargo) AddBuildDependency(ctx context.Context, dir, crate string) error {
	_, err := c.Runner.Run(ctx, Command{Name: c.bin(), Args: []string{"add", crate, "--build"}, Dir: dir})
	return err
}

// Fmt formats the given files with rustfmt.
func (c *Cargo) Fmt(ctx context.Context, dir string, files ...string) error {
	args := append([]string{"fmt", "--"}, files...)
	_, err := c.Runner.Run(ctx, Command{Name: c.bin(), Args: args, Dir: dir})
	return err
}

func (c *Cargo) bin() string {
	return orDefault(c.Bin, "cargo")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
