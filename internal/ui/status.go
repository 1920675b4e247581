package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ivtomov/task-manager/internal/task"
)

const paramWidth = 32

// WriteStatus prints a summary table of task states. Columns are aligned by
// display width so wide runes in string parameters do not skew them.
func WriteStatus(w io.Writer, snaps []task.Snapshot, p *Palette) {
	header := []string{"Task", "State", "Parameter", "Pause"}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		state := "stopped"
		if s.Running {
			state = "running"
		}
		param := "-"
		if s.Param != nil {
			param = fmt.Sprintf("%s %s", s.Param.Kind(), s.Param)
			param = runewidth.Truncate(param, paramWidth, "…")
		}
		pause := "-"
		if s.Param != nil {
			pause = fmt.Sprintf("%d ms", s.PauseMs)
		}
		rows = append(rows, []string{fmt.Sprintf("Task %d", s.ID), state, param, pause})
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if n := runewidth.StringWidth(c); n > widths[i] {
				widths[i] = n
			}
		}
	}

	fmt.Fprintln(w, p.Bold(joinCells(header, widths)))
	for i, r := range rows {
		fmt.Fprintln(w, p.Task(snaps[i].ID, joinCells(r, widths)))
	}
}

func joinCells(cells []string, widths []int) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if i == len(cells)-1 {
			out[i] = c
			continue
		}
		out[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.Join(out, "  ")
}
