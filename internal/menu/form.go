package menu

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// former is the Prompter backed by huh forms, used on terminals.
type former struct {
	in    io.Reader
	out   io.Writer
	theme *huh.Theme
}

// NewFormPrompter renders prompts as huh forms on in/out.
func NewFormPrompter(in io.Reader, out io.Writer) Prompter {
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.Focused.Title = theme.Focused.Title.Foreground(green).Bold(true)
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base = theme.Focused.Base.BorderForeground(green)
	return &former{in: in, out: out, theme: theme}
}

func (f *former) run(ctx context.Context, field huh.Field) error {
	err := huh.NewForm(huh.NewGroup(field)).
		WithTheme(f.theme).
		WithInput(f.in).
		WithOutput(f.out).
		WithShowHelp(false).
		RunWithContext(ctx)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, huh.ErrUserAborted):
		// the form owns the terminal, so ctrl+c arrives as a key press
		return ErrInterrupted
	}
	return err
}

func (f *former) Ask(ctx context.Context, prompt string) (string, error) {
	var s string
	title := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(prompt), ":"))
	if err := f.run(ctx, huh.NewInput().Title(title).Value(&s)); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (f *former) Choose(ctx context.Context, title string, options []Option) (string, error) {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Key+". "+o.Label, o.Key))
	}
	var key string
	if err := f.run(ctx, huh.NewSelect[string]().Title(title).Options(opts...).Value(&key)); err != nil {
		return "", err
	}
	return key, nil
}
