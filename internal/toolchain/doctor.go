package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Diagnose checks each tool and writes one status line per tool to w.
// It returns an error naming the tools that failed.
func Diagnose(ctx context.Context, w io.Writer, r Runner, tools []Tool) error {
	fmt.Fprintln(w, "Toolchain check:")

	var failed []string
	for _, t := range tools {
		v, err := t.Check(ctx, r)
		switch {
		case err == nil:
			if t.Constraint != "" {
				fmt.Fprintf(w, "  [ OK ] %s %s (%s)\n", t.Name, v, t.Constraint)
			} else {
				fmt.Fprintf(w, "  [ OK ] %s %s\n", t.Name, v)
			}
		case errors.Is(err, ErrToolNotFound):
			fmt.Fprintf(w, "  [MISS] %s not found (%s)\n", t.Bin, t.Purpose)
			failed = append(failed, t.Name)
		case v != nil:
			fmt.Fprintf(w, "  [WARN] %s %s does not satisfy %s\n", t.Name, v, t.Constraint)
			failed = append(failed, t.Name)
		default:
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", t.Name, err)
			failed = append(failed, t.Name)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("toolchain check failed for: %v", failed)
	}
	return nil
}
