package ports

import (
	"context"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

// Notifier is implemented by every notification backend. Send reports all
// transport and API failures through the returned result.
type Notifier interface {
	Name() string
	Send(ctx context.Context, entry domain.SessionEntry) domain.NotifyResult
}
