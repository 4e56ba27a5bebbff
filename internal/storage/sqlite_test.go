package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
	assert.NoError(t, store.Close())
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	r, err := store.CreateReplay("tetris", 7, 60)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.FindReplay(r.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Seed)
}

func TestCreateAndAppendFrames(t *testing.T) {
	store := openTestStore(t)

	r, err := store.CreateReplay("tetris", -42, 60)
	require.NoError(t, err)
	assert.Len(t, r.ID, 36)
	assert.Equal(t, r.ID[:8], r.ShortID())

	batch1 := []Frame{
		{Tick: 1, DT: 16 * time.Millisecond, Mask: 0},
		{Tick: 2, DT: 17 * time.Millisecond, Mask: 1 << 6},
	}
	batch2 := []Frame{
		{Tick: 3, DT: 16*time.Millisecond + 500*time.Microsecond, Mask: 1<<1 | 1<<3},
	}
	require.NoError(t, store.AppendFrames(r.ID, batch1))
	require.NoError(t, store.AppendFrames(r.ID, batch2))
	require.NoError(t, store.AppendFrames(r.ID, nil))

	got, err := store.FindReplay(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "tetris", got.GameID)
	assert.Equal(t, int64(-42), got.Seed)
	assert.Equal(t, 60, got.TickRate)
	assert.Equal(t, 3, got.Frames)
	assert.False(t, got.CreatedAt.IsZero())

	frames, err := store.Frames(r.ID)
	require.NoError(t, err)
	assert.Equal(t, append(batch1, batch2...), frames)
}

func TestAppendFramesUnknownReplay(t *testing.T) {
	store := openTestStore(t)

	err := store.AppendFrames("nope", []Frame{{Tick: 1}})
	assert.ErrorIs(t, err, ErrNotFound)

	frames, err := store.Frames("nope")
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestAppendFramesDuplicateTickRollsBack(t *testing.T) {
	store := openTestStore(t)
	r, err := store.CreateReplay("tetris", 1, 60)
	require.NoError(t, err)

	require.NoError(t, store.AppendFrames(r.ID, []Frame{{Tick: 1}}))
	err = store.AppendFrames(r.ID, []Frame{{Tick: 2}, {Tick: 1}})
	require.Error(t, err)

	got, err := store.FindReplay(r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Frames)

	frames, err := store.Frames(r.ID)
	require.NoError(t, err)
	assert.Len(t, frames, 1)
}

func TestListReplaysNewestFirst(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for seed := range int64(5) {
		r, err := store.CreateReplay("tetris", seed, 60)
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	list, err := store.ListReplays(3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[4], list[0].ID)
	assert.Equal(t, ids[3], list[1].ID)
	assert.Equal(t, ids[2], list[2].ID)

	all, err := store.ListReplays(0)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestFindReplayByPrefix(t *testing.T) {
	store := openTestStore(t)
	r, err := store.CreateReplay("tetris", 1, 60)
	require.NoError(t, err)

	got, err := store.FindReplay(r.ShortID())
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	_, err = store.FindReplay("zzzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindReplay("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindReplayAmbiguousPrefix(t *testing.T) {
	store := openTestStore(t)
	for range 20 {
		_, err := store.CreateReplay("tetris", 1, 60)
		require.NoError(t, err)
	}

	// Every UUID is lowercase hex; among 20 at least two share a first digit.
	var ambiguous bool
	for _, prefix := range "0123456789abcdef" {
		_, err := store.FindReplay(string(prefix))
		if err == ErrAmbiguous {
			ambiguous = true
		}
	}
	assert.True(t, ambiguous)
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	r, err := store.CreateReplay("tetris", 1, 60)
	require.NoError(t, err)
	require.NoError(t, store.AppendFrames(r.ID, []Frame{{Tick: 1}, {Tick: 2}}))

	require.NoError(t, store.DeleteReplay(r.ID))

	_, err = store.FindReplay(r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	frames, err := store.Frames(r.ID)
	require.NoError(t, err)
	assert.Empty(t, frames)

	assert.ErrorIs(t, store.DeleteReplay(r.ID), ErrNotFound)
}

func TestPruneReplays(t *testing.T) {
	store := openTestStore(t)

	var ids []string
	for seed := range int64(4) {
		r, err := store.CreateReplay("tetris", seed, 60)
		require.NoError(t, err)
		require.NoError(t, store.AppendFrames(r.ID, []Frame{{Tick: 1}}))
		ids = append(ids, r.ID)
	}

	n, err := store.PruneReplays(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := store.ListReplays(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[3], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)

	frames, err := store.Frames(ids[0])
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestParseTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, now, parseTime(now))
	assert.Equal(t, now, parseTime("2024-05-01 12:30:00"))
	assert.True(t, parseTime("garbage").IsZero())
	assert.True(t, parseTime(nil).IsZero())
}
