package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deliverylivre/storefront/models"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	user := models.User{
		ID:    7,
		Name:  "Maria Souza",
		Email: "maria@example.com",
		Role:  models.RoleClient,
	}
	require.NoError(t, store.Save(user, "tok-123"))

	sess, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, user, sess.User)
	assert.Equal(t, "tok-123", sess.Token)
}

func TestLoadMissingSessionIsLoggedOut(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLoadCorruptUserClearsSession(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(models.User{ID: 1}, "tok"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)

	_, statErr := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(statErr), "corrupt session should be removed")
}

func TestLoadBlankTokenIsLoggedOut(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(models.User{ID: 1}, "  \n"))

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestClearIsIdempotent(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save(models.User{ID: 1}, "tok"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	sess, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, sess)
}
