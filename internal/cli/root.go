package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivtomov/task-manager/internal/app"
	"github.com/ivtomov/task-manager/internal/config"
	"github.com/ivtomov/task-manager/internal/menu"
	"github.com/ivtomov/task-manager/internal/system"
)

var (
	configPath  string
	logFile     string
	colorScheme string
	loggerMode  string
	promptMode  string
	logLevel    string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default <user config dir>/taskmgr/config.yaml)")
	pf.StringVar(&logFile, "log-file", "", "event log file (default output.txt)")
	pf.StringVar(&logLevel, "log-level", "", "diagnostics level: debug, info, warn, error")

	f := rootCmd.Flags()
	f.StringVar(&colorScheme, "color-scheme", "", "task: fixed per-task colors; choice: ask for a color on every start")
	f.StringVar(&loggerMode, "logger", "", "goroutine: in-process log writer; process: child process fed through a pipe")
	f.StringVar(&promptMode, "prompt", "", "auto, line or form")
}

var rootCmd = &cobra.Command{
	Use:   "taskmgr",
	Short: "taskmgr – start and stop pseudo-tasks with a piped event log",
	Long: "taskmgr shows a menu to start and stop three pseudo-tasks. Every event is\n" +
		"sent through a one-way stream to a dedicated log writer and the whole log is\n" +
		"replayed with per-task colors on exit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return app.Run(ctx, app.Options{Config: cfg, In: cmd.InOrStdin(), Out: cmd.OutOrStdout()})
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// loadConfig reads the config file and applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	set := func(name string, dst *string, val string) {
		if cmd.Flags().Changed(name) {
			*dst = val
		}
	}
	set("log-file", &cfg.LogFile, logFile)
	set("log-level", &cfg.LogLevel, logLevel)
	set("color-scheme", &cfg.ColorScheme, colorScheme)
	set("logger", &cfg.Logger, loggerMode)
	set("prompt", &cfg.Prompt, promptMode)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := system.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an interrupted session to the shell's SIGINT status.
func exitCode(err error) int {
	if errors.Is(err, menu.ErrInterrupted) {
		return 130
	}
	return 1
}
