package domain

import "time"

// TimestampLayout is the capture timestamp format: UTC, second precision.
const TimestampLayout = "2006-01-02T15:04:05Z"

type SessionEntry struct {
	Timestamp string
	SessionID string
	URL       string
	Cwd       string
	// Source labels where the capture came from (startup, exit, wrapper, manual).
	Source string
}

func NewSessionEntry(capturedAt time.Time, url, cwd, source string) SessionEntry {
	return SessionEntry{
		Timestamp: FormatTimestamp(capturedAt),
		SessionID: ExtractSessionID(url),
		URL:       url,
		Cwd:       cwd,
		Source:    source,
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
