package ports

import (
	"context"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

type ConfigRepository interface {
	Load(ctx context.Context) (domain.Config, error)
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Sections(ctx context.Context) ([]ConfigSection, error)
	Path() string
}

type ConfigSection struct {
	Name   string
	Values []ConfigValue
}

type ConfigValue struct {
	Key   string
	Value string
}
