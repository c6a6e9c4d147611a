package cmd

import (
	"errors"
	"fmt"

	"github.com/bnema/claude-remote-collector/internal/application"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show wrapper and collection status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overview, err := loadOverview(cmd, app)
			if err != nil {
				return err
			}

			rendered, err := app.statusRenderer(overview)
			if err != nil {
				return fmt.Errorf("render status: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func loadOverview(cmd *cobra.Command, app *app) (application.Overview, error) {
	ctx := cmd.Context()

	shells, err := app.installer.Status()
	if err != nil {
		return application.Overview{}, err
	}
	wrappers := make([]application.WrapperStatus, 0, len(shells))
	for _, s := range shells {
		wrappers = append(wrappers, application.WrapperStatus{Shell: string(s.Shell), Installed: s.Installed, Path: s.Path})
	}

	consistency, err := app.store.Verify(ctx)
	if err != nil {
		return application.Overview{}, err
	}

	overview := application.Overview{
		Wrappers:      wrappers,
		Sessions:      consistency.RecordEntries,
		StorageDir:    app.store.Dir(),
		TextEntries:   consistency.TextEntries,
		RecordEntries: consistency.RecordEntries,
	}

	latest, err := app.sessions.Latest(ctx)
	switch {
	case err == nil:
		overview.Latest = &latest
	case !errors.Is(err, domain.ErrNoSessions):
		return application.Overview{}, err
	}

	cfg, err := app.config.Load(ctx)
	if err != nil {
		return application.Overview{}, err
	}
	overview.Notify = application.NewNotifyStatus(cfg)

	return overview, nil
}
