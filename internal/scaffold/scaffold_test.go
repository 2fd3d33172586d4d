package scaffold

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewStubData(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		d := NewStubData("mylib", "")
		if d.HeaderDir != "target/headers" {
			t.Errorf("HeaderDir = %q, want %q", d.HeaderDir, "target/headers")
		}
		if d.HeaderPath != "target/headers/mylib.h" {
			t.Errorf("HeaderPath = %q, want %q", d.HeaderPath, "target/headers/mylib.h")
		}
		if d.EntryPoint != "src/lib.rs" {
			t.Errorf("EntryPoint = %q", d.EntryPoint)
		}
	})

	t.Run("custom header dir", func(t *testing.T) {
		d := NewStubData("core_ffi", "include/")
		if d.HeaderPath != "include/core_ffi.h" {
			t.Errorf("HeaderPath = %q, want %q", d.HeaderPath, "include/core_ffi.h")
		}
	})
}

func TestRenderInteropStub(t *testing.T) {
	content, err := RenderInteropStub("foo")
	if err != nil {
		t.Fatalf("RenderInteropStub() error: %v", err)
	}

	assertContains(t, content, "headers/foo.h")
	assertContains(t, content, `.write_to_file("target/headers/foo.h");`)
	assertContains(t, content, `println!("cargo:rerun-if-changed=src/lib.rs");`)
	assertContains(t, content, `env::var("CARGO_MANIFEST_DIR")`)
	assertContains(t, content, ".with_language(Language::C)")
	assertContains(t, content, `.expect("Unable to generate C bindings.")`)
	assertNotContains(t, content, "{{")

	// The rebuild trigger must come before generation.
	if strings.Index(content, "rerun-if-changed") > strings.Index(content, "cbindgen::Builder") {
		t.Error("rerun-if-changed should be declared before header generation")
	}
}

func TestWriteInteropStub(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteInteropStub(dir, NewStubData("mylib", ""), false)
	if err != nil {
		t.Fatalf("WriteInteropStub() error: %v", err)
	}
	if path != filepath.Join(dir, "build.rs") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(data), "mylib.h")
}

func TestWriteInteropStubExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "build.rs")
	if err := os.WriteFile(existing, []byte("fn main() {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := WriteInteropStub(dir, NewStubData("mylib", ""), false)
	if !errors.Is(err, ErrStubExists) {
		t.Fatalf("error = %v, want ErrStubExists", err)
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "fn main() {}\n" {
		t.Errorf("existing build.rs was modified: %q", data)
	}

	if _, err := WriteInteropStub(dir, NewStubData("mylib", ""), true); err != nil {
		t.Fatalf("WriteInteropStub(force) error: %v", err)
	}
	data, _ = os.ReadFile(existing)
	assertContains(t, string(data), "mylib.h")
}

// ─── Test Helpers ──────────────────────────────────────────────────

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
