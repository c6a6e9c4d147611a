// Package notify builds the configured notification backend.
package notify

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bnema/claude-remote-collector/internal/adapters/notify/ntfy"
	"github.com/bnema/claude-remote-collector/internal/adapters/notify/telegram"
	"github.com/bnema/claude-remote-collector/internal/adapters/notify/webhook"
	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
)

// Options carries transport overrides applied to every backend.
type Options struct {
	HTTPClient         *http.Client
	RequestTimeout     time.Duration
	TelegramAPIBaseURL string
}

type factory func(domain.Config, Options) ports.Notifier

var registry = map[domain.Backend]factory{
	domain.BackendTelegram: func(cfg domain.Config, opts Options) ports.Notifier {
		n := telegram.FromConfig(cfg.Telegram)
		n.APIBaseURL = opts.TelegramAPIBaseURL
		n.HTTPClient = opts.HTTPClient
		n.RequestTimeout = opts.RequestTimeout
		return n
	},
	domain.BackendWebhook: func(cfg domain.Config, opts Options) ports.Notifier {
		n := webhook.FromConfig(cfg.Webhook)
		n.HTTPClient = opts.HTTPClient
		n.RequestTimeout = opts.RequestTimeout
		return n
	},
	domain.BackendNtfy: func(cfg domain.Config, opts Options) ports.Notifier {
		n := ntfy.FromConfig(cfg.Ntfy)
		n.HTTPClient = opts.HTTPClient
		n.RequestTimeout = opts.RequestTimeout
		return n
	},
}

// New returns the notifier for cfg.Notify.Backend.
func New(cfg domain.Config, opts Options) (ports.Notifier, error) {
	build, ok := registry[cfg.Notify.Backend]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownBackend, cfg.Notify.Backend)
	}

	return build(cfg, opts), nil
}
