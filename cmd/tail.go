package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/claude-remote-collector/internal/adapters/store/jsonl"
	"github.com/bnema/claude-remote-collector/internal/adapters/watch"
	"github.com/bnema/claude-remote-collector/internal/application"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newTailCmd(app *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Watch for new session links in real time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "Watching %s for new sessions... (Ctrl+C to stop)\n", app.store.TextPath()); err != nil {
				return err
			}

			var changes <-chan struct{}
			watcher, err := watch.New(app.store.RecordPath())
			if err == nil {
				err = watcher.Start(ctx)
			}
			if err != nil {
				log.Warn().Err(err).Msg("file watching unavailable, polling only")
			} else {
				defer func() { _ = watcher.Close() }()
				changes = watcher.Changes()
			}

			err = app.sessions.Follow(ctx, application.FollowOptions{
				Changes:      changes,
				PollInterval: interval,
				Replay:       true,
				Emit: func(entry domain.SessionEntry) error {
					_, err := fmt.Fprintln(out, jsonl.FormatText(entry))
					return err
				},
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(out, "\nStopped.")
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", application.DefaultPollInterval, "poll interval used alongside file watching")

	return cmd
}
