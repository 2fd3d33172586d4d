package project

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func bootstrapped(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := Bootstrap(context.Background(), Options{
		Dir:       dir,
		Name:      "demo",
		SkipBuild: true,
		Runner:    newFakeToolchain(),
		Out:       &bytes.Buffer{},
	})
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func failedChecks(r *Report) []string {
	var names []string
	for _, c := range r.Checks {
		if !c.OK {
			names = append(names, c.Name)
		}
	}
	return names
}

func TestVerifyDetectsUnwiredScript(t *testing.T) {
	dir := bootstrapped(t)
	if err := os.WriteFile(filepath.Join(dir, "build.zig"), []byte(zigInitScript), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := Verify(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if r.OK() {
		t.Fatal("expected verification to fail")
	}
	if got := failedChecks(r); len(got) != 1 || got[0] != "build.zig" {
		t.Errorf("failed checks = %v, want [build.zig]", got)
	}

	var buf bytes.Buffer
	r.Print(&buf)
	assertContains(t, buf.String(), "[FAIL] build.zig: missing")
	assertContains(t, buf.String(), "[ OK ] Cargo.toml")
}

func TestVerifyDetectsWrongKinds(t *testing.T) {
	dir := bootstrapped(t)

	r, err := Verify(Options{Dir: dir, CrateTypes: []string{"cdylib"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := failedChecks(r); len(got) != 1 || got[0] != "Cargo.toml" {
		t.Errorf("failed checks = %v, want [Cargo.toml]", got)
	}
}

func TestVerifyDetectsMissingStub(t *testing.T) {
	dir := bootstrapped(t)
	if err := os.Remove(filepath.Join(dir, "build.rs")); err != nil {
		t.Fatal(err)
	}

	r, err := Verify(Options{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	if got := failedChecks(r); len(got) != 1 || got[0] != "build.rs" {
		t.Errorf("failed checks = %v, want [build.rs]", got)
	}
}

func TestVerifyMissingDirectory(t *testing.T) {
	if _, err := Verify(Options{Dir: filepath.Join(t.TempDir(), "absent")}); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
