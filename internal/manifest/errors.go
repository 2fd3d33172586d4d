package manifest

import (
	"errors"
	"fmt"
)

// ErrUnsupportedLayout is returned when the [lib] section is declared in a
// form that cannot be edited in place, such as an inline table.
var ErrUnsupportedLayout = errors.New("unsupported [lib] layout")

// ParseError reports a manifest that is not well-formed TOML. It is returned
// before anything is written.
type ParseError struct {
	Line   int // 1-based, 0 when unknown
	Column int // 1-based, 0 when unknown
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("manifest parse error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("manifest parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("manifest parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
