package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultKeep = 10

func newCleanCmd(app *app) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove old entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := app.sessions.Clean(cmd.Context(), keep)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if removed > 0 {
				_, err := fmt.Fprintf(out, "Removed %d old entries (kept last %d).\n", removed, keep)
				return err
			}

			count, err := app.sessions.Count(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "Nothing to clean (%d entries, keeping %d).\n", count, keep)
			return err
		},
	}

	cmd.Flags().IntVar(&keep, "keep", defaultKeep, "number of recent entries to keep")

	return cmd
}
