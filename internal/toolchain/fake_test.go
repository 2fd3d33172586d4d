package toolchain

import (
	"context"
)

// fakeRunner answers commands from a table keyed by Command.String().
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []Command
}

func (f *fakeRunner) Run(_ context.Context, c Command) (*Output, error) {
	f.calls = append(f.calls, c)
	if err, ok := f.errs[c.String()]; ok {
		return &Output{ExitCode: 1}, err
	}
	return &Output{Stdout: f.outputs[c.String()]}, nil
}
