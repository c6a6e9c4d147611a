package cmd

import (
	"errors"
	"os"

	"github.com/bnema/claude-remote-collector/internal/logging"
	"github.com/spf13/cobra"
)

func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	reportError(root, err)
	return err
}

// reportedError marks a failure whose message was already printed.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }

func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return reportedError{err: err}
}

func reportError(root *cobra.Command, err error) {
	var done reportedError
	if err == nil || errors.As(err, &done) {
		return
	}
	root.PrintErrln(root.ErrPrefix(), err.Error())
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "claude-remote-collector",
		Short:         "Collect and manage Claude Code remote session links",
		Long:          "claude-remote-collector captures Claude Code remote session links from shell wrappers, keeps a local history of them and can forward new links to Telegram, a webhook or ntfy.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if logLevel == "" {
				logLevel = os.Getenv(logging.LevelEnv)
			}
			return logging.Setup(cmd.ErrOrStderr(), logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to $CRC_LOG_LEVEL or warn")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRecordCmd(app),
		newListCmd(app),
		newLatestCmd(app),
		newTailCmd(app),
		newCleanCmd(app),
		newNotifyCmd(app),
		newConfigCmd(app),
		newSetupCmd(app),
		newInstallCmd(app),
		newUninstallCmd(app),
		newStatusCmd(app),
		newPathCmd(app),
	)

	return rootCmd
}
