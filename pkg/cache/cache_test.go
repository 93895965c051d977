package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundtrip(t *testing.T) {
	store := openTestStore(t)

	_, ok := store.Get("missing", time.Hour)
	assert.False(t, ok)

	require.NoError(t, store.Put("k", []byte(`{"a":1}`)))
	body, ok := store.Get("k", time.Hour)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(body))
}

func TestPutReplaces(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Put("k", []byte("old")))
	require.NoError(t, store.Put("k", []byte("new")))

	body, ok := store.Get("k", time.Hour)
	require.True(t, ok)
	assert.Equal(t, "new", string(body))
}

func TestGetExpired(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put("k", []byte("stale")))

	// backdate the entry past any reasonable TTL
	_, err := store.db.Exec("UPDATE responses SET fetched_at = ?", time.Now().Add(-2*time.Hour).Unix())
	require.NoError(t, err)

	_, ok := store.Get("k", time.Hour)
	assert.False(t, ok)

	// a generous TTL still serves it
	body, ok := store.Get("k", 3*time.Hour)
	require.True(t, ok)
	assert.Equal(t, "stale", string(body))
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put("old", []byte("a")))
	require.NoError(t, store.Put("fresh", []byte("b")))

	_, err := store.db.Exec("UPDATE responses SET fetched_at = ? WHERE key = 'old'",
		time.Now().Add(-2*time.Hour).Unix())
	require.NoError(t, err)

	require.NoError(t, store.Prune(time.Hour))

	_, ok := store.Get("old", 24*time.Hour)
	assert.False(t, ok)
	_, ok = store.Get("fresh", 24*time.Hour)
	assert.True(t, ok)
}

func TestOpenCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("k", []byte("v")))
}
