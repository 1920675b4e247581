package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ivtomov/task-manager/internal/system"
	"github.com/ivtomov/task-manager/internal/tasklog"
)

var (
	loggerFile string
	loggerSync bool
)

func init() {
	rootCmd.AddCommand(loggerCmd)
	loggerCmd.Flags().StringVar(&loggerFile, "file", "", "log file to append records to")
	loggerCmd.Flags().BoolVar(&loggerSync, "sync", false, "fsync after every record")
	_ = loggerCmd.MarkFlagRequired("file")
}

// loggerCmd is the child side of the process logger mode: it reads records
// from stdin until the parent closes the pipe.
var loggerCmd = &cobra.Command{
	Use:    "logger",
	Short:  "Append records read from stdin to a log file",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := system.SetLevel(logLevel); err != nil {
			return err
		}
		log := system.Component("logger").With("pid", os.Getpid())
		if err := tasklog.Serve(cmd.InOrStdin(), loggerFile, tasklog.WithSync(loggerSync), tasklog.WithLogger(log)); err != nil {
			log.Fatal("logger failed", "err", err)
		}
		return nil
	},
}
