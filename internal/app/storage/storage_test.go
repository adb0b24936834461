package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wgdash/internal/pkg/auth/jwt"
	"wgdash/internal/pkg/errs"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	bolt, err := NewStore(filepath.Join(t.TempDir(), "nested", "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]Store{
		"bolt":   bolt,
		"memory": NewMemoryStore(),
	}
}

func TestStoreGetSetRemove(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("k", "v1"))
			require.NoError(t, s.Set("k", "v2"))

			v, ok, err := s.Get("k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v2", v)

			require.NoError(t, s.Remove("k", "never-set"))
			_, ok, err = s.Get("k")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBoltStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.db")

	first, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(KeyAccessToken, "abc"))
	require.NoError(t, first.Close())

	second, err := NewStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestTokenHelpers(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := LoadToken(s)
			assert.True(t, errs.HasCode(err, errs.ErrSessionMissing))

			want := jwt.Token{TokenType: "Bearer", AccessToken: "abc.def.ghi"}
			require.NoError(t, SaveToken(s, want))

			got, err := LoadToken(s)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			require.NoError(t, ClearToken(s))
			_, err = LoadToken(s)
			assert.True(t, errs.HasCode(err, errs.ErrSessionMissing))
		})
	}
}

func TestLoadTokenNeedsBothKeys(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set(KeyAccessToken, "abc"))

	_, err := LoadToken(s)
	assert.True(t, errs.HasCode(err, errs.ErrSessionMissing))
}

func TestBoltSetManyIsAllOrNothing(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetMany(map[string]string{"a": "1", "b": "2"}))

	// bbolt rejects the empty key, which rolls back the whole write
	err = s.SetMany(map[string]string{"a": "changed", "": "x"})
	require.Error(t, err)

	v, ok, err := s.Get("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

// countingStore records how many write calls reach the underlying store.
type countingStore struct {
	*MemoryStore
	writes int
}

func (c *countingStore) Set(key, value string) error {
	c.writes++
	return c.MemoryStore.Set(key, value)
}

func (c *countingStore) SetMany(values map[string]string) error {
	c.writes++
	return c.MemoryStore.SetMany(values)
}

func TestSaveTokenWritesPairOnce(t *testing.T) {
	s := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, SaveToken(s, jwt.Token{TokenType: "Bearer", AccessToken: "old"}))
	require.NoError(t, SaveToken(s, jwt.Token{TokenType: "bearer", AccessToken: "new"}))

	assert.Equal(t, 2, s.writes)

	got, err := LoadToken(s)
	require.NoError(t, err)
	assert.Equal(t, jwt.Token{TokenType: "bearer", AccessToken: "new"}, got)
}
