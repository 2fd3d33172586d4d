package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Stack-Syndicate/ziggle/internal/toolchain"
)

// zigInitScript is a trimmed build.zig as written by `zig init`.
const zigInitScript = `const std = @import("std");

// Although this function looks imperative, note that its job is to
// declaratively construct a build graph that will be executed by an external
// runner.
pub fn build(b: *std.Build) void {
    // Standard target options allows the person running ` + "`zig build`" + ` to choose
    // what target to build for.
    const target = b.standardTargetOptions(.{});

    const optimize = b.standardOptimizeOption(.{});


    const lib_mod = b.createModule(.{
        // ` + "`root_source_file`" + ` is the Zig "entry point" of the module.
        .root_source_file = b.path("src/root.zig"),
        .target = target,
        .optimize = optimize,
    });

    const exe_mod = b.createModule(.{
        .root_source_file = b.path("src/main.zig"),
        .target = target,
        .optimize = optimize,
    });

    exe_mod.addImport("demo_lib", lib_mod);

    const exe = b.addExecutable(.{
        .name = "demo",
        .root_module = exe_mod,
    });

    // This declares intent for the executable to be installed into the
    // standard location when the user invokes the "install" step.
    b.installArtifact(exe);

    const run_cmd = b.addRunArtifact(exe);
    run_cmd.step.dependOn(b.getInstallStep());
}
`

// fakeToolchain stands in for zig and cargo, writing the files each
// subcommand would create.
type fakeToolchain struct {
	zigVersion   string
	cargoVersion string
	errs         map[string]error // keyed by Command.String()
	calls        []toolchain.Command
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{
		zigVersion:   "0.14.0\n",
		cargoVersion: "cargo 1.80.0 (376290515 2024-07-16)\n",
		errs:         map[string]error{},
	}
}

func (f *fakeToolchain) fail(cmd string, code int) {
	f.errs[cmd] = &toolchain.ProcessError{Command: cmd, ExitCode: code, Stderr: "boom"}
}

func (f *fakeToolchain) Run(_ context.Context, c toolchain.Command) (*toolchain.Output, error) {
	f.calls = append(f.calls, c)
	if err, ok := f.errs[c.String()]; ok {
		return &toolchain.Output{ExitCode: 1}, err
	}

	args := strings.Join(c.Args, " ")
	switch {
	case c.Name == "zig" && args == "version":
		return &toolchain.Output{Stdout: f.zigVersion}, nil
	case c.Name == "cargo" && args == "--version":
		return &toolchain.Output{Stdout: f.cargoVersion}, nil
	case c.Name == "zig" && args == "init":
		return &toolchain.Output{}, writeFiles(c.Dir, map[string]string{
			"build.zig":     zigInitScript,
			"build.zig.zon": ".{ .name = .demo }\n",
			"src/main.zig":  "pub fn main() !void {}\n",
			"src/root.zig":  "pub fn add(a: i32, b: i32) i32 { return a + b; }\n",
		})
	case c.Name == "cargo" && strings.HasPrefix(args, "init --lib --name "):
		name := strings.TrimPrefix(args, "init --lib --name ")
		return &toolchain.Output{}, writeFiles(c.Dir, map[string]string{
			"Cargo.toml": fmt.Sprintf("[package]\nname = %q\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\n", name),
			"src/lib.rs": "pub fn add(left: u64, right: u64) -> u64 {\n    left + right\n}\n",
		})
	case c.Name == "cargo" && args == "add cbindgen --build":
		return &toolchain.Output{}, appendFile(filepath.Join(c.Dir, "Cargo.toml"), "\n[build-dependencies]\ncbindgen = \"0.27.0\"\n")
	}
	return &toolchain.Output{}, nil
}

func (f *fakeToolchain) commands() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

func writeFiles(dir string, files map[string]string) error {
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}
