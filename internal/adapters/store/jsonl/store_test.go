package jsonl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bnema/claude-remote-collector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "sessions"))
	require.NoError(t, err)
	return store
}

func makeEntry(i int) domain.SessionEntry {
	id := fmt.Sprintf("id_%d", i)
	return domain.SessionEntry{
		Timestamp: fmt.Sprintf("2026-02-25T12:00:%02dZ", i%60),
		SessionID: id,
		URL:       domain.BuildURL(id),
		Cwd:       "/tmp",
		Source:    "test",
	}
}

func appendEntries(t *testing.T, store *Store, n int) []domain.SessionEntry {
	t.Helper()

	entries := make([]domain.SessionEntry, 0, n)
	for i := 0; i < n; i++ {
		entry := makeEntry(i)
		require.NoError(t, store.Append(context.Background(), entry))
		entries = append(entries, entry)
	}
	return entries
}

func sessionIDs(entries []domain.SessionEntry) []string {
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.SessionID)
	}
	return ids
}

func TestNewStoreCreatesDirectoryEagerly(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "sessions")
	store, err := NewStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "sessions.txt"), store.TextPath())
	assert.Equal(t, filepath.Join(dir, "sessions.jsonl"), store.RecordPath())
}

func TestNewStoreRejectsEmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewStore("  ")
	require.Error(t, err)
}

func TestEmptyStoreReads(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	entries, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	latest, err := store.ReadLatest(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, latest)

	text, err := store.ReadText(ctx)
	require.NoError(t, err)
	assert.Empty(t, text)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAppendPreservesOrderInBothRepresentations(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	want := appendEntries(t, store, 5)

	got, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	text, err := store.ReadText(context.Background())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	require.Len(t, lines, 5)
	for i, line := range lines {
		assert.Equal(t, want[i].Timestamp+" "+want[i].URL, line)
	}
}

func TestAppendAllowsDuplicates(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	entry := makeEntry(1)
	require.NoError(t, store.Append(context.Background(), entry))
	require.NoError(t, store.Append(context.Background(), entry))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAppendRecreatesRemovedDirectory(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, os.RemoveAll(store.Dir()))

	require.NoError(t, store.Append(context.Background(), makeEntry(0)))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReadLatest(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	appendEntries(t, store, 5)
	ctx := context.Background()

	latest, err := store.ReadLatest(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"id_4"}, sessionIDs(latest))

	latest, err = store.ReadLatest(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"id_2", "id_3", "id_4"}, sessionIDs(latest))

	latest, err = store.ReadLatest(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, latest, 5)

	latest, err = store.ReadLatest(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestCleanKeepsMostRecentEntries(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	appendEntries(t, store, 10)
	ctx := context.Background()

	removed, err := store.Clean(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, removed)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	entries, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"id_7", "id_8", "id_9"}, sessionIDs(entries))

	text, err := store.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t,
		entries[0].Timestamp+" "+entries[0].URL+"\n"+
			entries[1].Timestamp+" "+entries[1].URL+"\n"+
			entries[2].Timestamp+" "+entries[2].URL+"\n",
		text,
	)

	consistency, err := store.Verify(ctx)
	require.NoError(t, err)
	assert.True(t, consistency.InSync())
	assert.Equal(t, 3, consistency.RecordEntries)
}

func TestCleanBelowThresholdDoesNotWrite(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	appendEntries(t, store, 3)
	ctx := context.Background()

	before, err := os.Stat(store.RecordPath())
	require.NoError(t, err)

	for _, keep := range []int{3, 10} {
		removed, err := store.Clean(ctx, keep)
		require.NoError(t, err)
		assert.Zero(t, removed)
	}

	after, err := os.Stat(store.RecordPath())
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after))
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestCleanToZeroEmptiesBothFiles(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	appendEntries(t, store, 4)
	ctx := context.Background()

	removed, err := store.Clean(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	text, err := store.ReadText(ctx)
	require.NoError(t, err)
	assert.Empty(t, text)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCleanRejectsNegativeKeep(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	_, err := store.Clean(context.Background(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidRetention)
}

func TestCleanLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	appendEntries(t, store, 6)

	_, err := store.Clean(context.Background(), 2)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(store.Dir(), ".sessions-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCleanSetsPrivatePermissions(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	appendEntries(t, store, 3)

	_, err := store.Clean(context.Background(), 1)
	require.NoError(t, err)

	for _, path := range []string{store.TextPath(), store.RecordPath()} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(storeFileMode), info.Mode().Perm())
	}
}

func TestReadAllSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	first, err := encodeRecord(makeEntry(0))
	require.NoError(t, err)
	second, err := encodeRecord(makeEntry(1))
	require.NoError(t, err)

	content := string(first) + "{broken\n" + "\n" + string(second) + "\n\n\n"
	require.NoError(t, os.WriteFile(store.RecordPath(), []byte(content), 0o600))

	entries, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"id_0", "id_1"}, sessionIDs(entries))
}

func TestReadAllHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ReadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConcurrentAppendsAcrossStoreInstances(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "sessions")
	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()

			store, err := NewStore(dir)
			if err != nil {
				errs <- err
				return
			}
			for i := 0; i < perWriter; i++ {
				if err := store.Append(context.Background(), makeEntry(w*perWriter+i)); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}

	reader, err := NewStore(dir)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		_, err := reader.ReadAll(context.Background())
		require.NoError(t, err)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	consistency, err := reader.Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, writers*perWriter, consistency.RecordEntries)
	assert.Equal(t, writers*perWriter, consistency.TextEntries)
}
