// Package replay prints a log file back to the console with per-task colors.
package replay

import (
	"fmt"
	"io"
	"sort"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"

	"github.com/ivtomov/task-manager/internal/store"
	"github.com/ivtomov/task-manager/internal/ui"
)

// Clean removes escape sequences that older logs embedded in their lines.
func Clean(line string) string {
	return xansi.Strip(line)
}

// Filter keeps the lines fuzzily matching pattern, in file order.
// An empty pattern keeps everything.
func Filter(lines []string, pattern string) []string {
	idx := match(lines, pattern)
	if idx == nil {
		return lines
	}
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, lines[i])
	}
	return out
}

// match returns the sorted indexes of lines matching pattern, or nil when
// pattern is blank.
func match(lines []string, pattern string) []int {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	matches := fuzzy.Find(pattern, lines)
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, m.Index)
	}
	sort.Ints(idx)
	return idx
}

// Render writes lines colored by the task each one mentions. Records echoed
// through p in this session keep the color they were shown in.
func Render(w io.Writer, lines []string, p *ui.Palette, pattern string) error {
	clean := make([]string, len(lines))
	for i, l := range lines {
		clean[i] = Clean(l)
	}
	colored := p.Lines(clean)
	write := func(i int) error {
		_, err := fmt.Fprintln(w, colored[i])
		return err
	}
	if idx := match(clean, pattern); idx != nil {
		for _, i := range idx {
			if err := write(i); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range colored {
		if err := write(i); err != nil {
			return err
		}
	}
	return nil
}

// File reads path and renders it. A missing file renders nothing.
func File(w io.Writer, path string, p *ui.Palette, pattern string) error {
	lines, err := store.ReadLines(path)
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}
	return Render(w, lines, p, pattern)
}
