package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func openTestMedium(t *testing.T) *Medium {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "chat.db"))
	require.NoError(t, err)

	m := NewMedium(db)
	require.NoError(t, m.Init())
	t.Cleanup(func() {
		require.NoError(t, m.Close())
	})
	return m
}

func TestMediumSetGet(t *testing.T) {
	m := openTestMedium(t)

	_, found, err := m.Get("chatMessages")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, m.Set("chatMessages", "[]"))
	require.NoError(t, m.Set("chatMessages", `[{"id":1}]`))

	val, found, err := m.Get("chatMessages")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `[{"id":1}]`, val)
}

func TestMediumKeysAndRemoveAll(t *testing.T) {
	m := openTestMedium(t)

	require.NoError(t, m.Set("b", "2"))
	require.NoError(t, m.Set("a", "1"))

	keys, err := m.Keys()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, m.RemoveAll())
	keys, err = m.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)
}
