package prefs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.SaveSession(Session{
		Token: "tok-123",
		Role:  "USER",
		Email: "jane@gmail.com",
	}))

	// A fresh store reading the same file sees the persisted session
	reopened, err := Open(path)
	require.NoError(t, err)
	sess := reopened.Session()
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, "USER", sess.Role)
	assert.Equal(t, "jane@gmail.com", sess.Email)
	assert.True(t, sess.IsSignedIn())
}

func TestStoreOpenMissingFile(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.False(t, store.Session().IsSignedIn())
	assert.Empty(t, store.Get(KeySessionToken))
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.SaveSession(Session{Token: "tok", Role: "ADMIN", Email: "a@gmail.com"}))
	require.NoError(t, store.Clear())

	assert.False(t, store.Session().IsSignedIn())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.False(t, reopened.Session().IsSignedIn())
}

func TestStoreWatch(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "prefs.json"))
	require.NoError(t, err)

	ch, cancel := store.Watch()
	defer cancel()

	require.NoError(t, store.SaveSession(Session{Token: "tok", Role: "USER", Email: "jane@gmail.com"}))

	select {
	case sess := <-ch:
		assert.Equal(t, "tok", sess.Token)
	case <-time.After(time.Second):
		t.Fatal("watcher never notified")
	}

	// After cancel the channel is closed and no longer notified
	cancel()
	_, open := <-ch
	assert.False(t, open)
}
