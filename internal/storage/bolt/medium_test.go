package bolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestMedium(t *testing.T) *Medium {
	t.Helper()
	m, err := Open(filepath.Join(t.TempDir(), "chat.bolt"))
	require.NoError(t, err)
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

	require.NoError(t, m.Set("apiKey_openai", "sk-x"))
	require.NoError(t, m.Set("chatMessages", "[]"))

	keys, err := m.Keys()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"apiKey_openai", "chatMessages"}, keys)

	require.NoError(t, m.RemoveAll())
	keys, err = m.Keys()
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, m.Set("a", "1"))
	val, found, err := m.Get("a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "1", val)
}
