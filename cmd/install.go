package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const shellArgHelp = "fish|bash|zsh|all"

func newInstallCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "install " + shellArgHelp,
		Short:     "Install the claude shell wrapper",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"fish", "bash", "zsh", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := app.installer.Install(args[0])
			if printErr := printLines(cmd, lines); printErr != nil {
				return printErr
			}
			return err
		},
	}
}

func newUninstallCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:       "uninstall " + shellArgHelp,
		Short:     "Remove the claude shell wrapper",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"fish", "bash", "zsh", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := app.installer.Uninstall(args[0])
			if printErr := printLines(cmd, lines); printErr != nil {
				return printErr
			}
			return err
		},
	}
}

func printLines(cmd *cobra.Command, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
	return err
}
