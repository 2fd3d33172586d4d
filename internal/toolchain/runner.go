package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrToolNotFound is wrapped by ProcessError when the binary cannot be
// resolved.
var ErrToolNotFound = errors.New("tool not found")

// Command describes one child process invocation.
type Command struct {
	Name string   // binary name or path
	Args []string // arguments
	Dir  string   // working directory
	Env  []string // extra KEY=VALUE pairs appended to the inherited environment

	// Interactive commands inherit the terminal: stdin is forwarded and
	// output is streamed live as well as captured.
	Interactive bool
}

// String renders the command line, e.g. "cargo add cbindgen --build".
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Output captures the result of a command.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands.
type Runner interface {
	// Run executes cmd and blocks until it exits. A non-zero exit status is
	// reported as a *ProcessError alongside the captured output.
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// ProcessError reports a command that could not be started or exited
// non-zero.
type ProcessError struct {
	Command  string
	ExitCode int // -1 when the process never ran
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("running %s: %v", e.Command, e.Err)
	}
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if tail := lastLines(e.Stderr, 5); tail != "" {
		msg += ":\n" + tail
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdin, Stdout and Stderr are used by interactive commands; they
	// default to the process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Trace, when set, receives each command line before it runs.
	Trace io.Writer
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	bin, err := exec.LookPath(c.Name)
	if err != nil {
		return nil, &ProcessError{
			Command:  c.String(),
			ExitCode: -1,
			Err:      fmt.Errorf("%w: %v", ErrToolNotFound, err),
		}
	}

	if r.Trace != nil {
		if c.Dir != "" {
			fmt.Fprintf(r.Trace, "  $ (cd %s && %s)\n", c.Dir, c.String())
		} else {
			fmt.Fprintf(r.Trace, "  $ %s\n", c.String())
		}
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if c.Interactive {
		cmd.Stdin = orReader(r.Stdin, os.Stdin)
		cmd.Stdout = io.MultiWriter(orWriter(r.Stdout, os.Stdout), &stdoutBuf)
		cmd.Stderr = io.MultiWriter(orWriter(r.Stderr, os.Stderr), &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, &ProcessError{
				Command:  c.String(),
				ExitCode: output.ExitCode,
				Stderr:   output.Stderr,
				Err:      err,
			}
		}
		return output, &ProcessError{Command: c.String(), ExitCode: -1, Err: err}
	}

	return output, nil
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

// lastLines returns at most n trailing non-empty lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	var kept []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, "\n")
}
