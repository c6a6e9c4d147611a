package application

import "github.com/bnema/claude-remote-collector/internal/domain"

type WrapperStatus struct {
	Shell     string
	Installed bool
	Path      string
}

type NotifyStatus struct {
	Enabled    bool
	Backend    domain.Backend
	AutoNotify bool
	Configured bool
}

// Overview is everything the status command shows.
type Overview struct {
	Wrappers      []WrapperStatus
	Sessions      int
	StorageDir    string
	TextEntries   int
	RecordEntries int
	Latest        *domain.SessionEntry
	Notify        NotifyStatus
}

// InSync reports whether both session logs hold the same number of entries.
func (o Overview) InSync() bool {
	return o.TextEntries == o.RecordEntries
}

func NewNotifyStatus(cfg domain.Config) NotifyStatus {
	return NotifyStatus{
		Enabled:    cfg.Notify.Enabled,
		Backend:    cfg.Notify.Backend,
		AutoNotify: cfg.Notify.AutoNotify,
		Configured: cfg.BackendConfigured(),
	}
}
