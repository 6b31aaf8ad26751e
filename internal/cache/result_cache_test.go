package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGetRoundtrip(t *testing.T) {
	dir := t.TempDir()
	c := NewResultCache(dir, time.Minute, true)

	c.Set(Key("scan", "crypto"), payload{Name: "btc", Count: 3})

	var got payload
	require.True(t, c.Get(Key("scan", "crypto"), &got))
	require.Equal(t, payload{Name: "btc", Count: 3}, got)

	// Wait for the async snapshot so TempDir cleanup races nothing.
	require.Eventually(t, func() bool {
		files, err := filepath.Glob(filepath.Join(dir, "*.json"))
		return err == nil && len(files) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestKeyIsDeterministicPerParams(t *testing.T) {
	require.Equal(t, Key("scan", "a", "b"), Key("scan", "a", "b"))
	require.NotEqual(t, Key("scan", "a"), Key("scan", "b"))
	require.NotEqual(t, Key("scan", "a"), Key("verify", "a"))
}

func TestExpiredEntryMisses(t *testing.T) {
	c := NewResultCache(t.TempDir(), time.Millisecond, true)

	c.Set("k", payload{Name: "x"})
	time.Sleep(10 * time.Millisecond)

	var got payload
	require.False(t, c.Get("k", &got))
}

func TestDisabledCacheIsInert(t *testing.T) {
	c := NewResultCache(t.TempDir(), time.Minute, false)

	c.Set("k", payload{Name: "x"})

	var got payload
	require.False(t, c.Get("k", &got))
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	first := NewResultCache(dir, time.Minute, true)
	first.Set("k", payload{Name: "persisted", Count: 7})

	// The snapshot write is asynchronous; a fresh cache instance sees it
	// once the file lands.
	second := NewResultCache(dir, time.Minute, true)
	var got payload
	require.Eventually(t, func() bool {
		return second.Get("k", &got)
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, payload{Name: "persisted", Count: 7}, got)
}

func TestClearDropsEntriesAndSnapshots(t *testing.T) {
	dir := t.TempDir()
	c := NewResultCache(dir, time.Minute, true)

	c.Set("k", payload{Name: "x"})
	var got payload
	require.True(t, c.Get("k", &got))

	// Wait for the async snapshot so Clear races nothing.
	require.Eventually(t, func() bool {
		files, err := filepath.Glob(filepath.Join(dir, "*.json"))
		return err == nil && len(files) == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, c.Clear())
	require.False(t, c.Get("k", &got))

	entries, basePath := c.Stats()
	require.Zero(t, entries)
	require.Equal(t, dir, basePath)
}
