package domain

import "errors"

var (
	ErrInvalidSessionURL     = errors.New("invalid session URL")
	ErrNoSessions            = errors.New("no sessions collected yet")
	ErrUnknownBackend        = errors.New("unknown notification backend")
	ErrNotificationsDisabled = errors.New("notifications are disabled")
	ErrConfigKeyNotFound     = errors.New("config key not found")
	ErrInvalidConfigKey      = errors.New("invalid config key")
	ErrInvalidConfigValue    = errors.New("invalid config value")
	ErrInvalidRetention      = errors.New("keep count must not be negative")
	ErrUnsupportedShell      = errors.New("unsupported shell")
)
