package project

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/Stack-Syndicate/ziggle/internal/buildgraph"
	"github.com/Stack-Syndicate/ziggle/internal/manifest"
	"github.com/Stack-Syndicate/ziggle/internal/platform"
	"github.com/Stack-Syndicate/ziggle/internal/scaffold"
)

// Check is one verified property of a project on disk.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report collects the checks run by Verify.
type Report struct {
	Dir          string
	ArtifactName string
	Checks       []Check
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Print writes one status line per check.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Project %s (lib%s):\n", r.Dir, r.ArtifactName)
	for _, c := range r.Checks {
		status := "[ OK ]"
		if !c.OK {
			status = "[FAIL]"
		}
		if c.Detail != "" {
			fmt.Fprintf(w, "  %s %s: %s\n", status, c.Name, c.Detail)
		} else {
			fmt.Fprintf(w, "  %s %s\n", status, c.Name)
		}
	}
}

func (r *Report) add(name string, err error) {
	c := Check{Name: name, OK: err == nil}
	if err != nil {
		c.Detail = err.Error()
	}
	r.Checks = append(r.Checks, c)
}

// Verify checks that the project in opts.Dir is wired the way Bootstrap
// leaves it: the manifest declares the library kinds, build.rs writes the
// header build.zig includes, and build.zig builds and links the library.
// The error return is reserved for an unresolvable project.
func Verify(opts Options) (*Report, error) {
	explicit := opts.Name
	opts, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	if !platform.Exists(opts.Dir) {
		return nil, fmt.Errorf("project directory %s does not exist", opts.Dir)
	}

	r := &Report{Dir: opts.Dir}
	artifact, err := resolveArtifact(opts, explicit)
	if err != nil {
		r.add(CargoManifest, err)
		return r, nil
	}
	r.ArtifactName = artifact

	r.add(CargoManifest, checkManifest(opts))
	r.add(scaffold.StubFileName, checkStub(opts, artifact))
	r.add(BuildScript, checkScript(opts, artifact))
	r.add(opts.SrcDir, checkSources(opts))
	return r, nil
}

func checkManifest(opts Options) error {
	path := opts.path(CargoManifest)
	res, err := manifest.ValidateFile(path)
	if err != nil {
		return err
	}
	if !res.Valid {
		issues := make([]string, len(res.Issues))
		for i, is := range res.Issues {
			issues[i] = is.String()
		}
		return fmt.Errorf("schema: %s", strings.Join(issues, "; "))
	}

	m, err := manifest.ReadFile(path)
	if err != nil {
		return err
	}
	if got := m.LibraryKinds(); !reflect.DeepEqual(got, opts.CrateTypes) {
		return fmt.Errorf("lib.crate-type is %v, want %v", got, opts.CrateTypes)
	}
	if !m.HasBuildDependency("cbindgen") {
		return fmt.Errorf("cbindgen is not a build dependency")
	}
	return nil
}

func checkStub(opts Options, artifact string) error {
	data, err := os.ReadFile(opts.path(scaffold.StubFileName))
	if err != nil {
		return err
	}
	header := scaffold.HeaderPath(opts.HeaderDir, artifact)
	if !strings.Contains(string(data), `"`+header+`"`) {
		return fmt.Errorf("does not write %s", header)
	}
	return nil
}

func checkScript(opts Options, artifact string) error {
	data, err := os.ReadFile(opts.path(BuildScript))
	if err != nil {
		return err
	}
	missing := buildgraph.MissingClauses(string(data), buildgraph.Options{
		ArtifactName: artifact,
		SourceDir:    opts.SrcDir,
		HeaderDir:    opts.HeaderDir,
	})
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, "; "))
	}
	return nil
}

func checkSources(opts Options) error {
	info, err := os.Stat(opts.path(opts.SrcDir))
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", opts.SrcDir)
	}
	return nil
}
