package project

import (
	"errors"
	"fmt"
)

// ErrProjectExists is returned by the preflight step when the directory
// already holds a build script or manifest and Force is not set.
var ErrProjectExists = errors.New("project already initialised")

// StepError names the pipeline step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
