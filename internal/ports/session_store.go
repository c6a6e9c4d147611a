package ports

import (
	"context"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

type SessionStore interface {
	Append(ctx context.Context, entry domain.SessionEntry) error
	ReadAll(ctx context.Context) ([]domain.SessionEntry, error)
	ReadLatest(ctx context.Context, n int) ([]domain.SessionEntry, error)
	ReadText(ctx context.Context) (string, error)
	Clean(ctx context.Context, keepLast int) (int, error)
	Count(ctx context.Context) (int, error)
}
