package project

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Stack-Syndicate/ziggle/internal/buildgraph"
)

func newUnwiredProject(t *testing.T, cargoToml string) string {
	t.Helper()
	dir := t.TempDir()
	if err := writeFiles(dir, map[string]string{
		"build.zig":        zigInitScript,
		"Cargo.toml":       cargoToml,
		"src-zig/main.zig": "pub fn main() !void {}\n",
	}); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRewireReadsNameFromManifest(t *testing.T) {
	dir := newUnwiredProject(t, "[package]\nname = \"fast-math\"\nversion = \"0.1.0\"\n")
	var out bytes.Buffer

	res, err := Rewire(Options{Dir: dir, Out: &out})
	if err != nil {
		t.Fatalf("Rewire() error: %v", err)
	}
	if res.ArtifactName != "fast_math" {
		t.Errorf("ArtifactName = %q", res.ArtifactName)
	}

	script := readFile(t, filepath.Join(dir, "build.zig"))
	assertContains(t, script, `exe.linkSystemLibrary("fast_math");`)
	assertContains(t, script, `b.path("src-zig/main.zig")`)
	// Comments are left alone; only bootstrap strips them.
	assertContains(t, script, "// This declares intent")
	assertContains(t, out.String(), "Wired libfast_math")
}

func TestRewirePrefersLibName(t *testing.T) {
	dir := newUnwiredProject(t, "[package]\nname = \"wrapper\"\n\n[lib]\nname = \"core_ffi\"\n")

	res, err := Rewire(Options{Dir: dir, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if res.ArtifactName != "core_ffi" {
		t.Errorf("ArtifactName = %q, want core_ffi", res.ArtifactName)
	}
}

func TestRewireExplicitName(t *testing.T) {
	dir := newUnwiredProject(t, "[package]\nname = \"ignored\"\n")

	res, err := Rewire(Options{Dir: dir, Name: "chosen-name", Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if res.ArtifactName != "chosen_name" {
		t.Errorf("ArtifactName = %q", res.ArtifactName)
	}
}

func TestRewireTwice(t *testing.T) {
	dir := newUnwiredProject(t, "[package]\nname = \"demo\"\n")
	if _, err := Rewire(Options{Dir: dir, Out: &bytes.Buffer{}}); err != nil {
		t.Fatal(err)
	}
	before := readFile(t, filepath.Join(dir, "build.zig"))

	_, err := Rewire(Options{Dir: dir, Out: &bytes.Buffer{}})
	if !errors.Is(err, buildgraph.ErrAlreadyWired) {
		t.Fatalf("error = %v, want ErrAlreadyWired", err)
	}
	if after := readFile(t, filepath.Join(dir, "build.zig")); after != before {
		t.Error("build.zig changed on a failed rewire")
	}
}

func TestRewireDryRun(t *testing.T) {
	dir := newUnwiredProject(t, "[package]\nname = \"demo\"\n")
	var out bytes.Buffer

	if _, err := Rewire(Options{Dir: dir, DryRun: true, Out: &out}); err != nil {
		t.Fatal(err)
	}
	if readFile(t, filepath.Join(dir, "build.zig")) != zigInitScript {
		t.Error("dry run modified build.zig")
	}
	assertContains(t, out.String(), "Would link libdemo")
}

func TestRewireMissingAnchor(t *testing.T) {
	dir := t.TempDir()
	if err := writeFiles(dir, map[string]string{
		"build.zig":  "pub fn build(b: *std.Build) void {}\n",
		"Cargo.toml": "[package]\nname = \"demo\"\n",
	}); err != nil {
		t.Fatal(err)
	}

	_, err := Rewire(Options{Dir: dir, Out: &bytes.Buffer{}})
	var anchorErr *buildgraph.AnchorNotFoundError
	if !errors.As(err, &anchorErr) {
		t.Fatalf("error = %v, want AnchorNotFoundError", err)
	}
}
