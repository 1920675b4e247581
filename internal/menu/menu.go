// Package menu is the console front end of the task controller: it shows
// the numbered menu, prompts for typed parameters and echoes every record.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/ivtomov/task-manager/internal/config"
	"github.com/ivtomov/task-manager/internal/system"
	"github.com/ivtomov/task-manager/internal/task"
	"github.com/ivtomov/task-manager/internal/ui"
)

// Options lists the menu entries in display order.
var Options = []Option{
	{"1", "Start Task 1 (Enter Int Data)"},
	{"2", "Start Task 2 (Enter Float Data)"},
	{"3", "Start Task 3 (Enter String Data)"},
	{"4", "Stop Task 1"},
	{"5", "Stop Task 2"},
	{"6", "Stop Task 3"},
	{"7", "Exit"},
}

// Menu drives the controller from user input.
type Menu struct {
	ctrl    *task.Controller
	prompt  Prompter
	out     io.Writer
	palette *ui.Palette
	scheme  string
	log     *clog.Logger
}

// New returns a Menu. scheme is config.SchemeTask or config.SchemeChoice.
func New(ctrl *task.Controller, prompt Prompter, out io.Writer, palette *ui.Palette, scheme string) *Menu {
	return &Menu{
		ctrl:    ctrl,
		prompt:  prompt,
		out:     out,
		palette: palette,
		scheme:  scheme,
		log:     system.Component("menu"),
	}
}

// Run loops until the user selects Exit or input ends. Invalid input is
// reported and skipped. A cancelled ctx or Ctrl+C in a form ends the loop
// with ErrInterrupted, whether it arrives at a prompt or during a pause.
// Controller errors such as a broken record stream also end the loop.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return m.interrupted(err)
		}
		choice, err := m.prompt.Choose(ctx, "Menu", Options)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			fmt.Fprintln(m.out, "\nExiting...")
			return nil
		case isInterrupt(err):
			return m.interrupted(err)
		default:
			return fmt.Errorf("read choice: %w", err)
		}

		var rec task.Record
		switch strings.TrimSpace(choice) {
		case "1":
			rec, err = m.start(ctx, task.Task1, "Enter an integer value for Task 1: ", "Invalid input. Please enter an integer.")
		case "2":
			rec, err = m.start(ctx, task.Task2, "Enter a float value for Task 2: ", "Invalid input. Please enter a float.")
		case "3":
			rec, err = m.start(ctx, task.Task3, "Enter a string for Task 3: ", "Invalid input. Please enter a string.")
		case "4":
			rec, err = m.ctrl.StopTask(task.Task1)
		case "5":
			rec, err = m.ctrl.StopTask(task.Task2)
		case "6":
			rec, err = m.ctrl.StopTask(task.Task3)
		case "7":
			fmt.Fprintln(m.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please select a valid option from the menu.")
			continue
		}

		switch {
		case errors.Is(err, task.ErrInvalidInput), errors.Is(err, errSkipped):
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(m.out, "\nExiting...")
			return nil
		case isInterrupt(err):
			return m.interrupted(err)
		case err != nil:
			return err
		}
		m.echo(rec)
	}
}

func isInterrupt(err error) bool {
	return errors.Is(err, ErrInterrupted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (m *Menu) interrupted(err error) error {
	fmt.Fprintln(m.out, "\nInterrupted.")
	if errors.Is(err, ErrInterrupted) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInterrupted, err)
}

// errSkipped marks a start aborted after its message was already shown.
var errSkipped = errors.New("skipped")

func (m *Menu) start(ctx context.Context, id task.ID, ask, invalid string) (task.Record, error) {
	raw, err := m.prompt.Ask(ctx, ask)
	if err != nil {
		return "", err
	}
	var p task.Param
	switch id {
	case task.Task1:
		p, err = task.ParseInt(raw)
	case task.Task2:
		p, err = task.ParseFloat(raw)
	default:
		p, err = task.ParseString(raw)
	}
	if err != nil {
		m.log.Debug("rejected parameter", "task", int(id), "err", err)
		m.printError(invalid)
		return "", errSkipped
	}

	if m.scheme == config.SchemeChoice {
		if err := m.chooseColor(ctx, id); err != nil {
			return "", err
		}
	}

	raw, err = m.prompt.Ask(ctx, fmt.Sprintf("Enter pause duration in milliseconds for Task %d: ", id))
	if err != nil {
		return "", err
	}
	pause, err := task.ParsePause(raw)
	if err != nil {
		m.printError("Invalid input. Please enter a non-negative integer.")
		return "", errSkipped
	}
	return m.ctrl.StartTask(ctx, id, p, pause)
}

func (m *Menu) chooseColor(ctx context.Context, id task.ID) error {
	raw, err := m.prompt.Ask(ctx, fmt.Sprintf("Enter a color for Task %d (red/green/blue): ", id))
	if err != nil {
		return err
	}
	name := strings.ToLower(strings.TrimSpace(raw))
	switch name {
	case "red", "green", "blue":
	default:
		m.printError("Invalid color choice. Defaulting to red.")
		name = "red"
	}
	c, _ := ui.ColorByName(name)
	m.palette.Set(id, c)
	return nil
}

func (m *Menu) echo(rec task.Record) {
	fmt.Fprintln(m.out, m.palette.Record(rec.String()))
}

func (m *Menu) printError(msg string) {
	fmt.Fprintln(m.out, m.palette.Error(msg))
}
