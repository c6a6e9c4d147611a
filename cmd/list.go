package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/claude-remote-collector/internal/adapters/store/jsonl"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/spf13/cobra"
)

const noSessionsMessage = "No sessions collected yet."

func newListCmd(app *app) *cobra.Command {
	var (
		n      int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show collected session links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.sessions.List(cmd.Context(), n)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				_, err := fmt.Fprintln(out, noSessionsMessage)
				return err
			}

			for _, entry := range entries {
				line := jsonl.FormatText(entry)
				if asJSON {
					if line, err = jsonl.FormatRecord(entry); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "number", "n", 0, "show only the last N entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSONL")

	return cmd
}

func newLatestCmd(app *app) *cobra.Command {
	var urlOnly bool

	cmd := &cobra.Command{
		Use:   "latest",
		Short: "Show the most recent session link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry, err := app.sessions.Latest(cmd.Context())
			if errors.Is(err, domain.ErrNoSessions) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), noSessionsMessage)
				return reported(err)
			}
			if err != nil {
				return err
			}

			line := jsonl.FormatText(entry)
			if urlOnly {
				line = entry.URL
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), line)
			return err
		},
	}

	cmd.Flags().BoolVar(&urlOnly, "url-only", false, "print only the URL")

	return cmd
}

func newPathCmd(app *app) *cobra.Command {
	var structured bool

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the storage file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.store.TextPath()
			if structured {
				path = app.store.RecordPath()
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}

	cmd.Flags().BoolVar(&structured, "jsonl", false, "print the JSONL file path")

	return cmd
}
