package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ivtomov/task-manager/internal/config"
	"github.com/ivtomov/task-manager/internal/menu"
	"github.com/ivtomov/task-manager/internal/replay"
	"github.com/ivtomov/task-manager/internal/task"
	"github.com/ivtomov/task-manager/internal/tasklog"
	"github.com/ivtomov/task-manager/internal/ui"
)

// Options wires a session to its environment.
type Options struct {
	Config *config.Config
	In     io.Reader
	Out    io.Writer
	// Executable is re-run as the child log writer in process mode.
	// Empty means os.Executable().
	Executable string
	// Fatal overrides the log writer failure handler (tests).
	Fatal func(error)
	// Delay overrides the real-time pause (tests).
	Delay task.Delay
}

// Run executes one interactive session: menu loop, stream shutdown, wait
// for the log writer, then replay of the whole log.
func Run(ctx context.Context, o Options) error {
	cfg := o.Config
	if cfg == nil {
		cfg = config.New()
	}
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}

	palette, err := ui.NewPalette(lipgloss.NewRenderer(o.Out), cfg.Colors)
	if err != nil {
		return err
	}

	sess, err := startLogger(cfg, o)
	if err != nil {
		return err
	}

	ctrl := task.NewController(sess, task.WithDelay(o.Delay))
	m := menu.New(ctrl, choosePrompter(cfg.Prompt, o.In, o.Out), o.Out, palette, cfg.ColorScheme)
	loopErr := m.Run(ctx)

	// the log must be complete before it is read back: close, then wait
	if err := sess.CloseWriter(); err != nil && loopErr == nil {
		loopErr = fmt.Errorf("close record stream: %w", err)
	}
	fmt.Fprintln(o.Out, "\nWaiting for logger to finish...")
	waitErr := sess.Wait()
	if loopErr != nil {
		return loopErr
	}
	if waitErr != nil {
		return fmt.Errorf("logger: %w", waitErr)
	}

	fmt.Fprintln(o.Out, "\nFile processing completed.")
	fmt.Fprintln(o.Out)
	ui.WriteStatus(o.Out, ctrl.States(), palette)
	fmt.Fprintln(o.Out)
	if err := replay.File(o.Out, cfg.LogFile, palette, ""); err != nil {
		return err
	}
	fmt.Fprintln(o.Out, "\nExiting...")
	return nil
}

func startLogger(cfg *config.Config, o Options) (tasklog.Session, error) {
	opts := []tasklog.Option{
		tasklog.WithSync(cfg.SyncWrites),
		tasklog.WithCapacity(cfg.ChannelBuffer),
		tasklog.WithFatal(o.Fatal),
	}
	switch cfg.Logger {
	case config.LoggerProcess:
		exe := o.Executable
		if exe == "" {
			p, err := os.Executable()
			if err != nil {
				return nil, fmt.Errorf("locate executable: %w", err)
			}
			exe = p
		}
		args := []string{"logger", "--file", cfg.LogFile, "--log-level", cfg.LogLevel}
		if cfg.SyncWrites {
			args = append(args, "--sync")
		}
		return tasklog.SpawnProcess(tasklog.ProcessConfig{Path: exe, Args: args}, opts...)
	case config.LoggerGoroutine, "":
		return tasklog.Spawn(cfg.LogFile, opts...), nil
	}
	return nil, fmt.Errorf("unknown logger mode %q", cfg.Logger)
}

func choosePrompter(mode string, in io.Reader, out io.Writer) menu.Prompter {
	switch strings.ToLower(mode) {
	case config.PromptForm:
		return menu.NewFormPrompter(in, out)
	case config.PromptLine:
		return menu.NewLinePrompter(in, out)
	}
	if menu.IsTerminal(in) {
		return menu.NewFormPrompter(in, out)
	}
	return menu.NewLinePrompter(in, out)
}
