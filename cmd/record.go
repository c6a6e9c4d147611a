package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bnema/claude-remote-collector/internal/application"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const stdinPath = "-"

func newRecordCmd(app *app) *cobra.Command {
	var (
		url        string
		scanPath   string
		source     string
		notifyFlag bool
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a session URL (used by shell wrappers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (url == "") == (scanPath == "") {
				return errors.New("exactly one of --url or --scan is required")
			}

			cwd, err := os.Getwd()
			if err != nil {
				cwd = ""
			}

			var entries []domain.SessionEntry
			if url != "" {
				entry, err := app.sessions.Record(cmd.Context(), application.RecordCommand{URL: url, Source: source, Cwd: cwd})
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			} else {
				text, err := readScanInput(cmd, scanPath)
				if err != nil {
					return err
				}
				entries, err = app.sessions.RecordScan(cmd.Context(), application.ScanCommand{Text: text, Source: source, Cwd: cwd})
				if err != nil {
					return err
				}
				log.Debug().Int("recorded", len(entries)).Str("transcript", scanPath).Msg("scanned transcript")
			}

			autoNotify(cmd.Context(), cmd.ErrOrStderr(), app, entries, notifyFlag)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "session URL to record")
	cmd.Flags().StringVar(&scanPath, "scan", "", "record every session URL found in a transcript file (- for stdin)")
	cmd.Flags().StringVar(&source, "source", "wrapper", "source label (startup, exit, wrapper)")
	cmd.Flags().BoolVar(&notifyFlag, "notify", false, "send a notification after recording")

	return cmd
}

func readScanInput(cmd *cobra.Command, path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read transcript from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	return string(data), nil
}

// autoNotify never fails the recording; problems go to stderr.
func autoNotify(ctx context.Context, stderr io.Writer, app *app, entries []domain.SessionEntry, force bool) {
	if len(entries) == 0 {
		return
	}

	cfg, err := app.config.Load(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Notify failed: %v\n", err)
		return
	}

	for _, entry := range entries {
		result, attempted, err := app.notifications.AutoNotify(ctx, cfg, entry, force)
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(stderr, "Notify failed: %v\n", err)
		case attempted && !result.Success:
			_, _ = fmt.Fprintf(stderr, "Notify failed: %s\n", result.Message)
		}
	}
}
