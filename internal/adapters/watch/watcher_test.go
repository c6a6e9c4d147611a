package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second

func startWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()

	dir := t.TempDir()
	target := filepath.Join(dir, "sessions.jsonl")
	w, err := New(target)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.Start(context.Background()))
	return w, target
}

func expectChange(t *testing.T, w *Watcher) {
	t.Helper()

	select {
	case <-w.Changes():
	case <-time.After(waitFor):
		t.Fatal("expected a change signal")
	}
}

func TestWatcherSignalsAppends(t *testing.T) {
	t.Parallel()

	w, target := startWatcher(t)

	require.NoError(t, os.WriteFile(target, []byte("{}\n"), 0o600))
	expectChange(t, w)
}

func TestWatcherSignalsRenameReplacement(t *testing.T) {
	t.Parallel()

	w, target := startWatcher(t)
	temp := filepath.Join(filepath.Dir(target), ".sessions-1.tmp")
	require.NoError(t, os.WriteFile(temp, []byte("{}\n"), 0o600))

	// Drain anything produced by the temp file before the rename.
	time.Sleep(50 * time.Millisecond)
	select {
	case <-w.Changes():
		t.Fatal("temp file must not signal")
	default:
	}

	require.NoError(t, os.Rename(temp, target))
	expectChange(t, w)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	w, target := startWatcher(t)
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(target), "sessions.txt"), []byte("x\n"), 0o600))

	select {
	case <-w.Changes():
		t.Fatal("unexpected change signal")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	t.Parallel()

	w, target := startWatcher(t)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	for range 20 {
		_, err := f.WriteString("{}\n")
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	expectChange(t, w)
}

func TestWatcherStopsWithContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := New(filepath.Join(dir, "sessions.jsonl"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	require.Eventually(t, func() bool {
		w.mu.Lock()
		defer w.mu.Unlock()
		return w.closed
	}, waitFor, 10*time.Millisecond)
	assert.Error(t, w.Start(context.Background()))
}

func TestStartFailsForMissingDirectory(t *testing.T) {
	t.Parallel()

	w, err := New(filepath.Join(t.TempDir(), "missing", "sessions.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	assert.Error(t, w.Start(context.Background()))
}
