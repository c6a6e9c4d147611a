package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
)

type SessionService struct {
	store ports.SessionStore
	clock ports.Clock
}

func NewSessionService(store ports.SessionStore, clock ports.Clock) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{store: store, clock: clock}
}

func (s *SessionService) Record(ctx context.Context, cmd RecordCommand) (domain.SessionEntry, error) {
	url, err := domain.ValidateSessionURL(cmd.URL)
	if err != nil {
		return domain.SessionEntry{}, err
	}

	entry := domain.NewSessionEntry(s.clock.Now(), url, cmd.Cwd, cmd.Source)
	if err := s.store.Append(ctx, entry); err != nil {
		return domain.SessionEntry{}, fmt.Errorf("record session: %w", err)
	}

	return entry, nil
}

// RecordScan records each distinct link in cmd.Text in order of first
// appearance. Text without links records nothing.
func (s *SessionService) RecordScan(ctx context.Context, cmd ScanCommand) ([]domain.SessionEntry, error) {
	urls := domain.ExtractURLs(cmd.Text)
	recorded := make([]domain.SessionEntry, 0, len(urls))
	for _, url := range urls {
		entry, err := s.Record(ctx, RecordCommand{URL: url, Source: cmd.Source, Cwd: cmd.Cwd})
		if err != nil {
			return recorded, err
		}
		recorded = append(recorded, entry)
	}

	return recorded, nil
}

// List returns the last n entries, or all of them when n is not positive.
func (s *SessionService) List(ctx context.Context, n int) ([]domain.SessionEntry, error) {
	if n > 0 {
		return s.store.ReadLatest(ctx, n)
	}

	return s.store.ReadAll(ctx)
}

func (s *SessionService) Latest(ctx context.Context) (domain.SessionEntry, error) {
	entries, err := s.store.ReadLatest(ctx, 1)
	if err != nil {
		return domain.SessionEntry{}, err
	}
	if len(entries) == 0 {
		return domain.SessionEntry{}, domain.ErrNoSessions
	}

	return entries[0], nil
}

func (s *SessionService) Clean(ctx context.Context, keepLast int) (int, error) {
	return s.store.Clean(ctx, keepLast)
}

func (s *SessionService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *SessionService) Text(ctx context.Context) (string, error) {
	return s.store.ReadText(ctx)
}

// Follow emits entries appended after it started until ctx is done.
// With Replay set the stored entries are emitted first. Each
// wake-up re-reads the structured log, so a trim resynchronises on the last
// entry seen instead of on byte offsets.
func (s *SessionService) Follow(ctx context.Context, opts FollowOptions) error {
	if opts.Emit == nil {
		return errors.New("follow requires an emit function")
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	entries, err := s.store.ReadAll(ctx)
	if err != nil {
		return ignoreCancel(ctx, err)
	}
	cursor := newFollowCursor(entries)
	if opts.Replay {
		for _, entry := range entries {
			if err := opts.Emit(entry); err != nil {
				return err
			}
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-opts.Changes:
		case <-ticker.C:
		}

		entries, err := s.store.ReadAll(ctx)
		if err != nil {
			return ignoreCancel(ctx, err)
		}
		for _, entry := range cursor.advance(entries) {
			if err := opts.Emit(entry); err != nil {
				return err
			}
		}
	}
}

type followCursor struct {
	seen int
	last domain.SessionEntry
}

func newFollowCursor(entries []domain.SessionEntry) *followCursor {
	c := &followCursor{}
	c.moveTo(entries)
	return c
}

// advance returns the entries after the last one already delivered.
func (c *followCursor) advance(entries []domain.SessionEntry) []domain.SessionEntry {
	var fresh []domain.SessionEntry
	switch {
	case c.seen == 0:
		fresh = entries
	case len(entries) >= c.seen && entries[c.seen-1] == c.last:
		fresh = entries[c.seen:]
	default:
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i] == c.last {
				fresh = entries[i+1:]
				break
			}
		}
	}

	c.moveTo(entries)
	return fresh
}

func (c *followCursor) moveTo(entries []domain.SessionEntry) {
	c.seen = len(entries)
	if c.seen > 0 {
		c.last = entries[c.seen-1]
	} else {
		c.last = domain.SessionEntry{}
	}
}

func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}
