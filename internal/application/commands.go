package application

import (
	"time"

	"github.com/bnema/claude-remote-collector/internal/domain"
)

const DefaultPollInterval = time.Second

type RecordCommand struct {
	URL    string
	Source string
	Cwd    string
}

// ScanCommand records every session link found in a terminal transcript.
type ScanCommand struct {
	Text   string
	Source string
	Cwd    string
}

type FollowOptions struct {
	// Changes wakes the follower early. A nil channel leaves polling only.
	Changes      <-chan struct{}
	PollInterval time.Duration
	Emit         func(domain.SessionEntry) error
	// Replay emits the entries already stored, from the same read that
	// positions the cursor.
	Replay bool
}
