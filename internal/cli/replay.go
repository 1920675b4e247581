package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ivtomov/task-manager/internal/replay"
	"github.com/ivtomov/task-manager/internal/ui"
)

var (
	replayMatch  string
	replayFollow bool
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVarP(&replayMatch, "match", "m", "", "only show lines fuzzily matching this pattern")
	replayCmd.Flags().BoolVarP(&replayFollow, "follow", "f", false, "keep printing lines as they are appended")
}

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Print an event log with per-task colors",
	Long:  "Print an event log with per-task colors. Escape codes written by older versions are stripped first.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path := cfg.LogFile
		if len(args) == 1 {
			path = args[0]
		}
		out := cmd.OutOrStdout()
		palette, err := ui.NewPalette(lipgloss.NewRenderer(out), cfg.Colors)
		if err != nil {
			return err
		}
		if replayFollow {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return replay.Follow(ctx, out, path, palette, replayMatch)
		}
		return replay.File(out, path, palette, replayMatch)
	},
}
