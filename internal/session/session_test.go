package session_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestSessionLifecycleMemory(t *testing.T) {
	sess := session.New(session.NewMemoryStore())

	// A fresh store loads into a signed-out session
	assert.NoError(t, sess.Load())
	_, err := sess.Current()
	assert.ErrorIs(t, err, session.ErrNotSignedIn)

	user := &models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	assert.NoError(t, sess.SignIn(user))

	current, err := sess.Current()
	assert.NoError(t, err)
	assert.Equal(t, "u1", current.ID)

	assert.NoError(t, sess.SignOut())
	_, err = sess.Current()
	assert.ErrorIs(t, err, session.ErrNotSignedIn)
}

func TestSessionPersistsAcrossLoads(t *testing.T) {
	store := session.NewFileStore(t.TempDir())

	first := session.New(store)
	assert.NoError(t, first.SignIn(&models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}))

	// A new session over the same store restores the user
	second := session.New(store)
	assert.NoError(t, second.Load())
	current, err := second.Current()
	assert.NoError(t, err)
	assert.Equal(t, "u1", current.ID)
	assert.Equal(t, "alice", current.Username)

	// Signing out clears the persisted state for later loads too
	assert.NoError(t, second.SignOut())
	third := session.New(store)
	assert.NoError(t, third.Load())
	_, err = third.Current()
	assert.ErrorIs(t, err, session.ErrNotSignedIn)
}

func TestFileStoreClearWhenEmpty(t *testing.T) {
	store := session.NewFileStore(t.TempDir())
	assert.NoError(t, store.Clear())

	data, err := store.Read()
	assert.NoError(t, err)
	assert.Nil(t, data)
}
