package project

import (
	"fmt"

	"github.com/Stack-Syndicate/ziggle/internal/manifest"
)

// Rewire applies the build-graph wiring to an existing project whose
// build.zig was not wired yet, for example one regenerated by `zig init`.
// When opts.Name is empty the artifact name is read from Cargo.toml.
func Rewire(opts Options) (*Result, error) {
	explicit := opts.Name
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	artifact, err := resolveArtifact(opts, explicit)
	if err != nil {
		return nil, err
	}

	res := &Result{Dir: opts.Dir, Name: opts.Name, ArtifactName: artifact, Steps: []string{StepWire}}
	if opts.DryRun {
		fmt.Fprintf(opts.Out, "Would link lib%s from %s\n", artifact, opts.path(BuildScript))
		return res, nil
	}
	if err := wireScript(opts, artifact); err != nil {
		return res, &StepError{Step: StepWire, Err: err}
	}
	fmt.Fprintf(opts.Out, "Wired lib%s into %s\n", artifact, opts.path(BuildScript))
	return res, nil
}

// resolveArtifact derives the library name from an explicit project name,
// falling back to the [lib] or [package] name declared in Cargo.toml.
func resolveArtifact(opts Options, explicit string) (string, error) {
	if explicit != "" {
		return ArtifactName(explicit), nil
	}
	m, err := manifest.ReadFile(opts.path(CargoManifest))
	if err != nil {
		return "", fmt.Errorf("resolving library name (pass --name to skip): %w", err)
	}
	if m.Lib != nil && m.Lib.Name != "" {
		return m.Lib.Name, nil
	}
	if m.Package.Name == "" {
		return "", fmt.Errorf("%s declares no package name", opts.path(CargoManifest))
	}
	return ArtifactName(m.Package.Name), nil
}
