package domain

type Backend string

const (
	BackendTelegram Backend = "telegram"
	BackendWebhook  Backend = "webhook"
	BackendNtfy     Backend = "ntfy"
)

var Backends = []Backend{BackendTelegram, BackendWebhook, BackendNtfy}

func (b Backend) Valid() bool {
	switch b {
	case BackendTelegram, BackendWebhook, BackendNtfy:
		return true
	default:
		return false
	}
}

// NotifyResult is the outcome of one send attempt. It is never persisted.
type NotifyResult struct {
	Success bool
	Method  string
	Message string
}
