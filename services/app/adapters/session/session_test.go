package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))

	in := Session{Token: "tok", UserID: "user-1", Email: "a@b.c", DisplayName: "Ada"}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Save(Session{Token: "tok", UserID: "user-1"}))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSession_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()

	fresh := Session{Token: signedToken(t, now.Add(time.Hour))}
	assert.False(t, fresh.Expired(now))

	stale := Session{Token: signedToken(t, now.Add(-time.Hour))}
	assert.True(t, stale.Expired(now))

	garbage := Session{Token: "not-a-jwt"}
	assert.True(t, garbage.Expired(now))
}
