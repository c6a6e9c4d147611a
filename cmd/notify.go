package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/spf13/cobra"
)

const enableNotifyHint = "  claude-remote-collector config set notify.enabled true"

func newNotifyCmd(app *app) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send the latest session link via the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := app.config.Load(ctx)
			if err != nil {
				return err
			}
			if !cfg.Notify.Enabled {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Notifications are disabled. Enable with:")
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), enableNotifyHint)
				return reported(domain.ErrNotificationsDisabled)
			}

			entry, err := notifyTarget(ctx, app, url)
			if err != nil {
				return err
			}

			var result domain.NotifyResult
			err = runNotifySpinner(ctx, cmd.ErrOrStderr(), func(ctx context.Context) error {
				var sendErr error
				result, sendErr = app.notifications.Notify(ctx, cfg, entry)
				return sendErr
			})
			if err != nil {
				return err
			}

			if !result.Success {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "[%s] Failed: %s\n", result.Method, result.Message)
				return reported(fmt.Errorf("notification via %s failed", result.Method))
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", result.Method, result.Message)
			return err
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "specific URL to notify (default: latest)")

	return cmd
}

func notifyTarget(ctx context.Context, app *app, url string) (domain.SessionEntry, error) {
	if url == "" {
		entry, err := app.sessions.Latest(ctx)
		if errors.Is(err, domain.ErrNoSessions) {
			return domain.SessionEntry{}, errors.New("no sessions to notify about")
		}
		return entry, err
	}

	valid, err := domain.ValidateSessionURL(url)
	if err != nil {
		return domain.SessionEntry{}, err
	}

	return domain.NewSessionEntry(app.now(), valid, "", ""), nil
}
