// Package buildgraph splices a cargo-built library into a build.zig script.
//
// All edits are literal text substitutions against the script produced by
// `zig init`: the install statement is the splice anchor, and the default
// source paths are redirected to the directory the Zig sources were moved to.
package buildgraph

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"
)

// Anchor is the statement that finalizes the executable target.
const Anchor = "b.installArtifact(exe);"

// Default source entry points written by `zig init`.
var DefaultSourcePaths = []string{"src/root.zig", "src/main.zig"}

const (
	defaultSourceDir  = "src"
	defaultHeaderDir  = "target/headers"
	defaultReleaseDir = "target/release"
	defaultCargo      = "cargo"

	// dependencyMarker identifies a script that has already been wired.
	dependencyMarker = "exe.step.dependOn(&rust_build.step);"
)

// ErrAlreadyWired is returned when the script already depends on the cargo
// build step; splicing again would declare rust_build twice.
var ErrAlreadyWired = errors.New("build script is already wired to the cargo build")

// AnchorNotFoundError reports that a required splice or redirect target is
// missing from the build script.
type AnchorNotFoundError struct {
	Anchor string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("build script does not contain %q", e.Anchor)
}

// Options configures the wiring.
type Options struct {
	ArtifactName string // library name passed to linkSystemLibrary
	SourceDir    string // directory the Zig sources now live in, e.g. "src-zig"
	HeaderDir    string // generated header directory; default "target/headers"
	ReleaseDir   string // cargo release output; default "target/release"
	CargoCommand string // default "cargo"
}

func (o Options) withDefaults() Options {
	if o.HeaderDir == "" {
		o.HeaderDir = defaultHeaderDir
	}
	if o.ReleaseDir == "" {
		o.ReleaseDir = defaultReleaseDir
	}
	if o.CargoCommand == "" {
		o.CargoCommand = defaultCargo
	}
	return o
}

var spliceTmpl = template.Must(template.New("splice").Parse(
	`const rust_build = b.addSystemCommand(&[_][]const u8{ {{printf "%q" .CargoCommand}}, "build", "--release" });
    exe.linkLibC();
    exe.addLibraryPath(b.path({{printf "%q" .ReleaseDir}}));
    exe.addIncludePath(b.path({{printf "%q" .HeaderDir}}));
    exe.linkSystemLibrary({{printf "%q" .ArtifactName}});
    ` + dependencyMarker + `
    ` + Anchor))

// SpliceBlock returns the text that replaces each anchor occurrence. The
// anchor is re-emitted last so installation still happens after every
// dependency is satisfied.
func SpliceBlock(opts Options) (string, error) {
	opts = opts.withDefaults()
	data := struct {
		CargoCommand string
		ReleaseDir   string
		HeaderDir    string
		ArtifactName string
	}{
		CargoCommand: opts.CargoCommand,
		ReleaseDir:   dirLiteral(opts.ReleaseDir),
		HeaderDir:    dirLiteral(opts.HeaderDir),
		ArtifactName: opts.ArtifactName,
	}

	var b strings.Builder
	if err := spliceTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering splice block: %w", err)
	}
	return b.String(), nil
}

// WireLibrary returns script with the library build spliced in at every
// anchor and the default source paths redirected under opts.SourceDir.
// The input is never modified; on error the returned string is empty.
func WireLibrary(script string, opts Options) (string, error) {
	if opts.ArtifactName == "" {
		return "", fmt.Errorf("artifact name is required")
	}
	if IsWired(script) {
		return "", ErrAlreadyWired
	}
	if !strings.Contains(script, Anchor) {
		return "", &AnchorNotFoundError{Anchor: Anchor}
	}

	block, err := SpliceBlock(opts)
	if err != nil {
		return "", err
	}
	out := strings.ReplaceAll(script, Anchor, block)

	return RedirectSourcePaths(out, opts.SourceDir)
}

// RedirectSourcePaths rewrites every default source path literal to live
// under srcDir. At least one default path must be present.
func RedirectSourcePaths(script, srcDir string) (string, error) {
	if srcDir == "" || srcDir == defaultSourceDir {
		return script, nil
	}

	found := false
	for _, p := range DefaultSourcePaths {
		if strings.Contains(script, p) {
			found = true
			script = strings.ReplaceAll(script, p, relocate(p, srcDir))
		}
	}
	if !found {
		return "", &AnchorNotFoundError{Anchor: strings.Join(DefaultSourcePaths, " or ")}
	}
	return script, nil
}

// IsWired reports whether script already depends on the cargo build step.
func IsWired(script string) bool {
	return strings.Contains(script, dependencyMarker)
}

// MissingClauses lists the wiring statements absent from script. An empty
// result means the script links the library as WireLibrary would.
func MissingClauses(script string, opts Options) []string {
	block, err := SpliceBlock(opts)
	if err != nil {
		return []string{err.Error()}
	}
	var missing []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.Contains(script, line) {
			missing = append(missing, line)
		}
	}
	if opts.SourceDir != "" && opts.SourceDir != defaultSourceDir {
		for _, p := range DefaultSourcePaths {
			if strings.Contains(script, `"`+p+`"`) {
				missing = append(missing, "redirect "+p+" to "+relocate(p, opts.SourceDir))
			}
		}
	}
	return missing
}

func relocate(p, srcDir string) string {
	return path.Join(srcDir, strings.TrimPrefix(p, defaultSourceDir+"/"))
}

// dirLiteral normalizes a directory for b.path(): slash separated with a
// trailing slash.
func dirLiteral(dir string) string {
	dir = strings.TrimSuffix(path.Clean(strings.ReplaceAll(dir, "\\", "/")), "/")
	return dir + "/"
}
