package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivtomov/task-manager/internal/config"
	"github.com/ivtomov/task-manager/internal/task"
)

// named maps color names accepted in config and prompts to ANSI colors.
var named = map[string]lipgloss.Color{
	"black":   lipgloss.Color("0"),
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ColorByName resolves a color name, an ANSI index (0-255) or a #hex value.
func ColorByName(name string) (lipgloss.Color, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if c, ok := named[n]; ok {
		return c, true
	}
	if hexColor.MatchString(n) {
		return lipgloss.Color(n), true
	}
	if idx, err := strconv.Atoi(n); err == nil && idx >= 0 && idx <= 255 {
		return lipgloss.Color(n), true
	}
	return "", false
}

// Palette holds the per-task colors used for echo and replay, plus the color
// each record of the current session was echoed in.
type Palette struct {
	r      *lipgloss.Renderer
	colors map[task.ID]lipgloss.Color
	stamps []stamp
}

type stamp struct {
	line  string
	color lipgloss.Color
	ok    bool
}

// NewPalette builds a Palette from configured color names. A nil renderer
// selects the default stdout renderer.
func NewPalette(r *lipgloss.Renderer, c config.Colors) (*Palette, error) {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{r: r, colors: map[task.ID]lipgloss.Color{}}
	for id, name := range map[task.ID]string{task.Task1: c.Task1, task.Task2: c.Task2, task.Task3: c.Task3} {
		col, ok := ColorByName(name)
		if !ok {
			return nil, fmt.Errorf("task %d: unknown color %q", id, name)
		}
		p.colors[id] = col
	}
	return p, nil
}

// Set changes the color of task id.
func (p *Palette) Set(id task.ID, c lipgloss.Color) { p.colors[id] = c }

// Color returns the color of task id.
func (p *Palette) Color(id task.ID) (lipgloss.Color, bool) {
	c, ok := p.colors[id]
	return c, ok
}

// Task renders s in the color of task id; unknown ids render plain.
func (p *Palette) Task(id task.ID, s string) string {
	c, ok := p.colors[id]
	if !ok {
		return s
	}
	return p.r.NewStyle().Foreground(c).Render(s)
}

// Error renders a validation message in red.
func (p *Palette) Error(s string) string {
	return p.r.NewStyle().Foreground(named["red"]).Render(s)
}

// Muted renders secondary text.
func (p *Palette) Muted(s string) string {
	return p.r.NewStyle().Faint(true).Render(s)
}

// Bold renders a heading.
func (p *Palette) Bold(s string) string {
	return p.r.NewStyle().Bold(true).Render(s)
}

// LineTask returns the task a log line belongs to, by the first "Task N"
// substring it contains.
func LineTask(line string) (task.ID, bool) {
	best, bestAt := task.ID(0), -1
	for _, id := range task.IDs {
		at := strings.Index(line, fmt.Sprintf("Task %d", id))
		if at >= 0 && (bestAt < 0 || at < bestAt) {
			best, bestAt = id, at
		}
	}
	return best, bestAt >= 0
}

// Line colors a log line by the task it mentions.
func (p *Palette) Line(line string) string {
	if id, ok := LineTask(line); ok {
		return p.Task(id, line)
	}
	return line
}

// Record renders a record written in this session and remembers its color,
// so a later color change for the task leaves this record as it was.
func (p *Palette) Record(line string) string {
	st := stamp{line: line}
	if id, ok := LineTask(line); ok {
		st.color, st.ok = p.colors[id]
	}
	p.stamps = append(p.stamps, st)
	return p.render(st)
}

func (p *Palette) render(st stamp) string {
	if !st.ok {
		return st.line
	}
	return p.r.NewStyle().Foreground(st.color).Render(st.line)
}

// Lines colors a whole log. The session's records are the tail of the file
// and keep the colors they were echoed in; earlier lines use the current
// task colors. When the tail does not match the session, every line falls
// back to Line.
func (p *Palette) Lines(lines []string) []string {
	out := make([]string, len(lines))
	off := len(lines) - len(p.stamps)
	tail := off >= 0
	for i := 0; tail && i < len(p.stamps); i++ {
		tail = lines[off+i] == p.stamps[i].line
	}
	for i, l := range lines {
		if tail && i >= off {
			out[i] = p.render(p.stamps[i-off])
			continue
		}
		out[i] = p.Line(l)
	}
	return out
}
