// Package prompt reads answers to interactive questions from a line-oriented
// input stream.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInput is returned when the input stream ends or fails before an answer
// is read, or when the prompt is interrupted.
var ErrInput = errors.New("reading input")

type lineResult struct {
	line string
	err  error
}

// Prompter asks questions on w and reads answers from r.
type Prompter struct {
	reader *bufio.Reader
	w      io.Writer

	// pending holds a read still blocked after an interrupted prompt; the
	// next prompt takes its answer instead of starting a second read.
	pending chan lineResult
}

// New returns a Prompter reading from r and writing questions to w.
func New(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), w: w}
}

// Text prints label and reads one line. Surrounding whitespace is trimmed and
// an empty answer yields def. A final line without a newline is accepted.
// Cancelling ctx abandons the prompt with ErrInput.
func (p *Prompter) Text(ctx context.Context, label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.w, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.w, "%s ", label)
	}

	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question. An empty answer yields def.
func (p *Prompter) Confirm(ctx context.Context, label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(p.w, "%s [%s]: ", label, hint)

	line, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid answer %q: expected y or n", line)
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := p.reader.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.w)
		return "", fmt.Errorf("%w: %v", ErrInput, ctx.Err())
	case res := <-p.pending:
		p.pending = nil
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && res.line != "" {
				return strings.TrimSpace(res.line), nil
			}
			return "", fmt.Errorf("%w: %v", ErrInput, res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}
