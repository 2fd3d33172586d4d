package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Stack-Syndicate/ziggle/internal/branding"
	"github.com/Stack-Syndicate/ziggle/internal/buildgraph"
	"github.com/Stack-Syndicate/ziggle/internal/manifest"
	"github.com/Stack-Syndicate/ziggle/internal/patch"
	"github.com/Stack-Syndicate/ziggle/internal/platform"
	"github.com/Stack-Syndicate/ziggle/internal/scaffold"
	"github.com/Stack-Syndicate/ziggle/internal/toolchain"
)

// Pipeline step names, as reported by StepError.
const (
	StepPreflight   = "preflight"
	StepCreateDir   = "create directory"
	StepZigInit     = "zig init"
	StepMoveSources = "move zig sources"
	StepPatchScript = "clean build.zig"
	StepCargoInit   = "cargo init"
	StepAddBindgen  = "add cbindgen"
	StepWriteStub   = "write build.rs"
	StepSetKinds    = "set crate-type"
	StepWire        = "wire build.zig"
	StepBuild       = "zig build"
)

// Result describes a completed (or planned) bootstrap.
type Result struct {
	Dir          string
	Name         string
	ArtifactName string
	Steps        []string // steps run, or planned in a dry run
	Warnings     []string
	Built        bool
}

type step struct {
	name string
	desc string
	run  func(ctx context.Context) error
}

type bootstrapper struct {
	opts   Options
	result *Result
}

// Bootstrap creates a hybrid project in opts.Dir. Steps run strictly in
// order and the first failure stops the pipeline with a *StepError; files
// written by earlier steps are left in place.
func Bootstrap(ctx context.Context, opts Options) (*Result, error) {
	opts, err := opts.resolve()
	if err != nil {
		return nil, &StepError{Step: StepPreflight, Err: err}
	}
	if err := ValidateName(opts.Name); err != nil {
		return nil, &StepError{Step: StepPreflight, Err: err}
	}

	b := &bootstrapper{
		opts: opts,
		result: &Result{
			Dir:          opts.Dir,
			Name:         opts.Name,
			ArtifactName: ArtifactName(opts.Name),
		},
	}
	out := opts.Out

	if opts.DryRun {
		fmt.Fprintf(out, "Plan for %s in %s:\n", opts.Name, opts.Dir)
	}
	for i, s := range b.steps() {
		b.result.Steps = append(b.result.Steps, s.name)
		if opts.DryRun {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, s.desc)
			continue
		}
		fmt.Fprintf(out, "==> %s\n", s.desc)
		if err := s.run(ctx); err != nil {
			return b.result, &StepError{Step: s.name, Err: err}
		}
	}

	if opts.DryRun {
		return b.result, nil
	}
	for _, w := range b.result.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintf(out, "\n%s\n", branding.Banner())
	return b.result, nil
}

func (b *bootstrapper) steps() []step {
	o := b.opts
	steps := []step{
		{StepPreflight, "check zig and cargo", b.preflight},
		{StepCreateDir, "create " + o.Dir, b.createDir},
		{StepZigInit, "zig init", b.zigInit},
		{StepMoveSources, fmt.Sprintf("move src to %s", o.SrcDir), b.moveSources},
		{StepPatchScript, "strip comments from " + BuildScript, b.patchScript},
		{StepCargoInit, "cargo init --lib --name " + o.Name, b.cargoInit},
		{StepAddBindgen, "cargo add " + bindgenCrate + " --build", b.addBindgen},
		{StepWriteStub, "write " + scaffold.StubFileName, b.writeStub},
		{StepSetKinds, fmt.Sprintf("set lib.crate-type to %v", o.CrateTypes), b.setKinds},
		{StepWire, "link lib" + ArtifactName(o.Name) + " from " + BuildScript, b.wire},
	}
	if !o.SkipBuild {
		steps = append(steps, step{StepBuild, "zig build", b.build})
	}
	return steps
}

func (b *bootstrapper) preflight(ctx context.Context) error {
	o := b.opts
	for _, t := range o.Tools() {
		if _, err := t.Check(ctx, o.Runner); err != nil {
			return err
		}
	}
	if o.Force {
		return nil
	}
	for _, name := range []string{BuildScript, CargoManifest, scaffold.StubFileName} {
		if platform.Exists(o.path(name)) {
			return fmt.Errorf("%w: %s exists (use --force to continue)", ErrProjectExists, o.path(name))
		}
	}
	return nil
}

func (b *bootstrapper) createDir(context.Context) error {
	if err := os.MkdirAll(b.opts.Dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", b.opts.Dir, err)
	}
	return nil
}

func (b *bootstrapper) zigInit(ctx context.Context) error {
	return b.opts.zig().Init(ctx, b.opts.Dir)
}

func (b *bootstrapper) moveSources(context.Context) error {
	return platform.MoveDir(b.opts.path(cargoSrcDir), b.opts.path(b.opts.SrcDir))
}

func (b *bootstrapper) patchScript(context.Context) error {
	return rewriteFile(b.opts.path(BuildScript), func(s string) (string, error) {
		return patch.StripCommentsAndBlankRuns(s), nil
	})
}

func (b *bootstrapper) cargoInit(ctx context.Context) error {
	return b.opts.cargo().InitLib(ctx, b.opts.Dir, b.opts.Name)
}

func (b *bootstrapper) addBindgen(ctx context.Context) error {
	return b.opts.cargo().AddBuildDependency(ctx, b.opts.Dir, bindgenCrate)
}

func (b *bootstrapper) writeStub(ctx context.Context) error {
	data := scaffold.NewStubData(b.result.ArtifactName, b.opts.HeaderDir)
	if _, err := scaffold.WriteInteropStub(b.opts.Dir, data, b.opts.Force); err != nil {
		return err
	}
	// The template is already formatted; rustfmt only normalizes it.
	if err := b.opts.cargo().Fmt(ctx, b.opts.Dir, scaffold.StubFileName); err != nil {
		b.result.Warnings = append(b.result.Warnings, fmt.Sprintf("formatting %s: %v", scaffold.StubFileName, err))
	}
	return nil
}

func (b *bootstrapper) setKinds(context.Context) error {
	return setLibraryKinds(b.opts.path(CargoManifest), b.opts.CrateTypes)
}

func (b *bootstrapper) wire(context.Context) error {
	return wireScript(b.opts, b.result.ArtifactName)
}

func (b *bootstrapper) build(ctx context.Context) error {
	if err := b.opts.zig().Build(ctx, b.opts.Dir); err != nil {
		return err
	}
	b.result.Built = true
	return nil
}

// setLibraryKinds edits the manifest at path and checks the result against
// the manifest schema before replacing the file.
func setLibraryKinds(path string, kinds []string) error {
	return rewriteFile(path, func(s string) (string, error) {
		out, err := manifest.SetLibraryOutputKinds(s, kinds)
		if err != nil {
			return "", err
		}
		res, err := manifest.Validate([]byte(out))
		if err != nil {
			return "", err
		}
		if !res.Valid {
			return "", fmt.Errorf("edited manifest is invalid: %s", res.Issues[0])
		}
		return out, nil
	})
}

// wireScript splices the library build into build.zig under opts.Dir.
func wireScript(opts Options, artifact string) error {
	return rewriteFile(opts.path(BuildScript), func(s string) (string, error) {
		return buildgraph.WireLibrary(s, buildgraph.Options{
			ArtifactName: artifact,
			SourceDir:    opts.SrcDir,
			HeaderDir:    opts.HeaderDir,
		})
	})
}

// rewriteFile reads path, applies edit and atomically replaces the file.
// Nothing is written when edit fails.
func rewriteFile(path string, edit func(string) (string, error)) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := edit(string(data))
	if err != nil {
		return fmt.Errorf("editing %s: %w", filepath.Base(path), err)
	}
	if out == string(data) {
		return nil
	}
	return platform.WriteFileAtomic(path, []byte(out), 0644)
}

// BuildExitCode returns the exit status of a failed final zig build, which
// the CLI passes through as its own.
func BuildExitCode(err error) (int, bool) {
	var se *StepError
	if !errors.As(err, &se) || se.Step != StepBuild {
		return 0, false
	}
	var pe *toolchain.ProcessError
	if errors.As(err, &pe) && pe.ExitCode > 0 {
		return pe.ExitCode, true
	}
	return 0, false
}
