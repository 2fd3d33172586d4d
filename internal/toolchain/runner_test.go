package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"
)

// TestHelperProcess is not a real test: it is the child process spawned by
// the ExecRunner tests.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("ZIGGLE_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, os.Getenv("HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("HELPER_STDERR"))
	code, _ := strconv.Atoi(os.Getenv("HELPER_EXIT"))
	os.Exit(code)
}

func helperCommand(stdout, stderr string, exit int) Command {
	return Command{
		Name: os.Args[0],
		Args: []string{"-test.run=TestHelperProcess", "--"},
		Env: []string{
			"ZIGGLE_HELPER_PROCESS=1",
			"HELPER_STDOUT=" + stdout,
			"HELPER_STDERR=" + stderr,
			"HELPER_EXIT=" + strconv.Itoa(exit),
		},
	}
}

func TestExecRunnerSuccess(t *testing.T) {
	r := &ExecRunner{}
	out, err := r.Run(context.Background(), helperCommand("0.14.0", "", 0))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", out.ExitCode)
	}
	if out.Stdout != "0.14.0" {
		t.Errorf("Stdout = %q, want %q", out.Stdout, "0.14.0")
	}
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	r := &ExecRunner{}
	out, err := r.Run(context.Background(), helperCommand("", "error: manifest missing", 3))

	var pe *ProcessError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ProcessError", err)
	}
	if pe.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", pe.ExitCode)
	}
	if out == nil || out.ExitCode != 3 {
		t.Errorf("output = %+v, want exit code 3", out)
	}
	if !strings.Contains(err.Error(), "error: manifest missing") {
		t.Errorf("error should include stderr, got: %v", err)
	}
}

func TestExecRunnerInteractiveStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &ExecRunner{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stderr}

	c := helperCommand("Build Summary", "warning", 0)
	c.Interactive = true
	out, err := r.Run(context.Background(), c)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stdout.String() != "Build Summary" || out.Stdout != "Build Summary" {
		t.Errorf("stdout streamed %q, captured %q", stdout.String(), out.Stdout)
	}
	if stderr.String() != "warning" {
		t.Errorf("stderr streamed %q", stderr.String())
	}
}

func TestExecRunnerTrace(t *testing.T) {
	var trace bytes.Buffer
	r := &ExecRunner{Trace: &trace}
	c := helperCommand("", "", 0)
	c.Dir = t.TempDir()
	if _, err := r.Run(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(trace.String(), "-test.run=TestHelperProcess") {
		t.Errorf("trace = %q", trace.String())
	}
}

func TestExecRunnerToolNotFound(t *testing.T) {
	r := &ExecRunner{}
	_, err := r.Run(context.Background(), Command{Name: "ziggle-no-such-tool-xyz", Args: []string{"init"}})
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("error = %v, want ErrToolNotFound", err)
	}
	var pe *ProcessError
	if !errors.As(err, &pe) || pe.ExitCode != -1 {
		t.Errorf("expected ProcessError with exit code -1, got %v", err)
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "cargo", Args: []string{"add", "cbindgen", "--build"}}
	if got := c.String(); got != "cargo add cbindgen --build" {
		t.Errorf("String() = %q", got)
	}
}

func TestLastLines(t *testing.T) {
	in := "a\n\nb\nc\nd\ne\nf\n"
	if got := lastLines(in, 3); got != "d\ne\nf" {
		t.Errorf("lastLines() = %q", got)
	}
	if got := lastLines("", 3); got != "" {
		t.Errorf("lastLines(empty) = %q", got)
	}
}
