package jsonl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/bnema/claude-remote-collector/internal/ports"
	"github.com/rs/zerolog/log"
)

const (
	textFileName    = "sessions.txt"
	recordFileName  = "sessions.jsonl"
	lockFileName    = ".lock"
	storeDirMode    = 0o700
	storeFileMode   = 0o600
	tempFilePattern = ".sessions-*.tmp"
)

// Store keeps the human-readable and the structured session logs of one
// directory in lockstep. Writers hold the directory's lock file exclusively,
// multi-record readers hold it shared.
type Store struct {
	dir        string
	textPath   string
	recordPath string
	lockPath   string
	mu         *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	dirLockMap     = map[string]*sync.RWMutex{}
)

var _ ports.SessionStore = (*Store)(nil)

// Consistency compares the entry counts of both representations.
type Consistency struct {
	TextEntries   int
	RecordEntries int
}

func (c Consistency) InSync() bool {
	return c.TextEntries == c.RecordEntries
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("session store directory is empty")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve session store directory: %w", err)
	}
	absDir = filepath.Clean(absDir)

	if err := os.MkdirAll(absDir, storeDirMode); err != nil {
		return nil, fmt.Errorf("create session store directory: %w", err)
	}

	return &Store{
		dir:        absDir,
		textPath:   filepath.Join(absDir, textFileName),
		recordPath: filepath.Join(absDir, recordFileName),
		lockPath:   filepath.Join(absDir, lockFileName),
		mu:         lockForDir(absDir),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) TextPath() string {
	return s.textPath
}

func (s *Store) RecordPath() string {
	return s.recordPath
}

func (s *Store) Append(ctx context.Context, entry domain.SessionEntry) error {
	encoded, err := encodeRecord(entry)
	if err != nil {
		return err
	}
	line := encodeText(entry) + "\n"

	return s.withLock(ctx, true, func() error {
		if err := appendFile(s.textPath, []byte(line)); err != nil {
			return fmt.Errorf("append session text log: %w", err)
		}
		if err := appendFile(s.recordPath, encoded); err != nil {
			return fmt.Errorf("append session record log: %w", err)
		}

		return nil
	})
}

func (s *Store) ReadAll(ctx context.Context) ([]domain.SessionEntry, error) {
	var data []byte
	err := s.withLock(ctx, false, func() error {
		var err error
		data, err = readFileIfExists(s.recordPath)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("read session record log: %w", err)
	}

	return decodeRecords(data), nil
}

func (s *Store) ReadLatest(ctx context.Context, n int) ([]domain.SessionEntry, error) {
	entries, err := s.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	return lastN(entries, n), nil
}

func (s *Store) ReadText(ctx context.Context) (string, error) {
	var data []byte
	err := s.withLock(ctx, false, func() error {
		var err error
		data, err = readFileIfExists(s.textPath)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("read session text log: %w", err)
	}

	return string(data), nil
}

// Clean keeps the most recent keepLast entries and reports how many were
// removed. Nothing is written when there is nothing to remove.
func (s *Store) Clean(ctx context.Context, keepLast int) (int, error) {
	if keepLast < 0 {
		return 0, fmt.Errorf("%w: %d", domain.ErrInvalidRetention, keepLast)
	}

	removed := 0
	err := s.withLock(ctx, true, func() error {
		data, err := readFileIfExists(s.recordPath)
		if err != nil {
			return fmt.Errorf("read session record log: %w", err)
		}

		entries := decodeRecords(data)
		if len(entries) <= keepLast {
			return nil
		}

		kept := lastN(entries, keepLast)
		records, text, err := encodeAll(kept)
		if err != nil {
			return err
		}
		if err := s.replaceBoth(records, text); err != nil {
			return err
		}

		removed = len(entries) - len(kept)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		log.Debug().Str("dir", s.dir).Int("removed", removed).Int("kept", keepLast).Msg("trimmed session log")
	}

	return removed, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	entries, err := s.ReadAll(ctx)
	if err != nil {
		return 0, err
	}

	return len(entries), nil
}

// Verify counts the entries of both representations under one shared lock.
func (s *Store) Verify(ctx context.Context) (Consistency, error) {
	var text, records []byte
	err := s.withLock(ctx, false, func() error {
		var err error
		if text, err = readFileIfExists(s.textPath); err != nil {
			return err
		}
		records, err = readFileIfExists(s.recordPath)
		return err
	})
	if err != nil {
		return Consistency{}, fmt.Errorf("verify session logs: %w", err)
	}

	textEntries := 0
	for _, line := range strings.Split(string(text), "\n") {
		if _, ok := decodeText(line); ok {
			textEntries++
		}
	}

	return Consistency{
		TextEntries:   textEntries,
		RecordEntries: len(decodeRecords(records)),
	}, nil
}

func (s *Store) withLock(ctx context.Context, exclusive bool, fn func() error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	if exclusive {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}

	// Writers recreate a directory removed after construction.
	if exclusive {
		if err := os.MkdirAll(s.dir, storeDirMode); err != nil {
			return fmt.Errorf("create session store directory: %w", err)
		}
	}

	lockFile, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, storeFileMode)
	if err != nil {
		return fmt.Errorf("open session store lock: %w", err)
	}
	defer func() {
		_ = lockFile.Close()
	}()

	if err := flock(lockFile, exclusive); err != nil {
		return fmt.Errorf("acquire session store lock: %w", err)
	}
	defer func() {
		if unlockErr := funlock(lockFile); unlockErr != nil && err == nil {
			err = fmt.Errorf("release session store lock: %w", unlockErr)
		}
	}()

	return fn()
}

// replaceBoth stages both files before renaming either, so a failed write
// leaves the previous pair untouched.
func (s *Store) replaceBoth(records, text []byte) error {
	recordTemp, err := writeTemp(s.dir, records)
	if err != nil {
		return fmt.Errorf("stage session record log: %w", err)
	}
	defer func() {
		_ = os.Remove(recordTemp)
	}()

	textTemp, err := writeTemp(s.dir, text)
	if err != nil {
		return fmt.Errorf("stage session text log: %w", err)
	}
	defer func() {
		_ = os.Remove(textTemp)
	}()

	if err := os.Rename(recordTemp, s.recordPath); err != nil {
		return fmt.Errorf("replace session record log: %w", err)
	}
	if err := os.Rename(textTemp, s.textPath); err != nil {
		return fmt.Errorf("replace session text log: %w", err)
	}

	return nil
}

func lockForDir(dir string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := dirLockMap[dir]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	dirLockMap[dir] = mu
	return mu
}

func lastN(entries []domain.SessionEntry, n int) []domain.SessionEntry {
	if n <= 0 {
		return []domain.SessionEntry{}
	}
	if n >= len(entries) {
		return entries
	}

	return entries[len(entries)-n:]
}

func appendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, storeFileMode)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func readFileIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	return data, nil
}

func writeTemp(dir string, data []byte) (string, error) {
	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return "", err
	}
	tempName := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return "", err
	}

	if err := tempFile.Chmod(storeFileMode); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return "", err
	}

	if err := tempFile.Sync(); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempName)
		return "", err
	}

	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempName)
		return "", err
	}

	return tempName, nil
}
