package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// ErrInterrupted ends a session on Ctrl+C or a cancelled context.
var ErrInterrupted = errors.New("interrupted")

// Option is one menu entry.
type Option struct {
	Key   string
	Label string
}

// Prompter reads answers from the user. Both calls give up with ctx.Err()
// once ctx is done.
type Prompter interface {
	// Ask shows prompt and returns the trimmed answer.
	Ask(ctx context.Context, prompt string) (string, error)
	// Choose shows title and options and returns the chosen key.
	Choose(ctx context.Context, title string, options []Option) (string, error)
}

type answer struct {
	line string
	err  error
}

// liner is the plain line oriented Prompter used for pipes and tests.
// A single goroutine owns the reader so a cancelled Ask loses no input.
type liner struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan answer
}

// NewLinePrompter reads answers line by line from in and writes prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) Prompter {
	return &liner{in: in, out: out, lines: make(chan answer)}
}

func (l *liner) read() {
	defer close(l.lines)
	r := bufio.NewReader(l.in)
	for {
		s, err := r.ReadString('\n')
		if err != nil {
			// a last line without newline still counts
			if err == io.EOF && s != "" {
				l.lines <- answer{line: s}
			}
			l.lines <- answer{err: err}
			return
		}
		l.lines <- answer{line: s}
	}
}

func (l *liner) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.out, prompt)
	l.once.Do(func() { go l.read() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a, ok := <-l.lines:
		if !ok {
			return "", io.EOF
		}
		if a.err != nil {
			return "", a.err
		}
		return strings.TrimSpace(a.line), nil
	}
}

func (l *liner) Choose(ctx context.Context, title string, options []Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(l.out, "\n%s:\n", title)
	for _, o := range options {
		fmt.Fprintf(l.out, "%s. %s\n", o.Key, o.Label)
	}
	return l.Ask(ctx, "Enter your choice: ")
}

// IsTerminal reports whether in is an interactive terminal.
func IsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
