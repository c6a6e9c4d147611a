package application

import (
	"context"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
	"github.com/rs/zerolog/log"
)

// NotifierFactory builds the notifier selected by cfg.
type NotifierFactory func(cfg domain.Config) (ports.Notifier, error)

type NotifyService struct {
	factory NotifierFactory
}

func NewNotifyService(factory NotifierFactory) *NotifyService {
	return &NotifyService{factory: factory}
}

// Notify sends entry through the configured backend. Backend failures are
// reported in the result, configuration problems as errors.
func (s *NotifyService) Notify(ctx context.Context, cfg domain.Config, entry domain.SessionEntry) (domain.NotifyResult, error) {
	if !cfg.Notify.Enabled {
		return domain.NotifyResult{}, domain.ErrNotificationsDisabled
	}

	notifier, err := s.factory(cfg)
	if err != nil {
		return domain.NotifyResult{}, err
	}

	log.Debug().Str("backend", notifier.Name()).Str("session_id", entry.SessionID).Msg("sending notification")
	result := notifier.Send(ctx, entry)
	log.Debug().Str("backend", result.Method).Bool("success", result.Success).Msg(result.Message)

	return result, nil
}

// AutoNotify sends only when notifications are enabled and either force is
// set or auto_notify is on. The bool reports whether a send was attempted.
func (s *NotifyService) AutoNotify(ctx context.Context, cfg domain.Config, entry domain.SessionEntry, force bool) (domain.NotifyResult, bool, error) {
	if !cfg.Notify.Enabled || !(force || cfg.Notify.AutoNotify) {
		return domain.NotifyResult{}, false, nil
	}

	result, err := s.Notify(ctx, cfg, entry)
	if err != nil {
		return domain.NotifyResult{}, true, err
	}

	return result, true, nil
}
