package storage

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"simplechat/internal/message"
)

func testConversation() []message.Message {
	ts := time.Date(2025, 11, 3, 14, 12, 5, 0, time.UTC)
	return []message.Message{
		{ID: 1, Sender: message.SenderUser, Text: "hi", Timestamp: ts},
		{ID: 2, Sender: message.SenderBot, Text: "hello", Timestamp: ts.Add(time.Second)},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := NewAdapter(NewMemory())
	want := testConversation()

	require.NoError(t, a.Save(want))

	got, err := a.Load()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.Equal(t, want[i].Sender, got[i].Sender)
		require.Equal(t, want[i].Text, got[i].Text)
		require.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
	}
}

func TestLoadAbsentKeyReturnsEmpty(t *testing.T) {
	a := NewAdapter(NewMemory())

	got, err := a.Load()
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLoadCorruptDataLeavesBytesInPlace(t *testing.T) {
	medium := NewMemory()
	require.NoError(t, medium.Set(ConversationKey, "{definitely not json"))

	a := NewAdapter(medium)
	got, err := a.Load()
	require.True(t, errors.Is(err, ErrCorruptData))
	require.Empty(t, got)

	raw, found, err := medium.Get(ConversationKey)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "{definitely not json", raw)
}

func TestExportImportReproducesMedium(t *testing.T) {
	src := NewMemory()
	a := NewAdapter(src)
	require.NoError(t, a.Save(testConversation()))
	require.NoError(t, src.Set("apiKey_openai", "sk-x"))

	snap, err := a.ExportAll()
	require.NoError(t, err)

	// Round-trip through the actual file representation.
	fileBytes, err := json.MarshalIndent(snap, "", "  ")
	require.NoError(t, err)
	parsed, err := ParseSnapshot(fileBytes)
	require.NoError(t, err)

	dst := NewMemory()
	_, err = NewAdapter(dst).ImportAll(parsed)
	require.NoError(t, err)

	srcKeys, err := src.Keys()
	require.NoError(t, err)
	require.Len(t, srcKeys, 2)
	for _, k := range srcKeys {
		wantVal, _, err := src.Get(k)
		require.NoError(t, err)
		gotVal, found, err := dst.Get(k)
		require.NoError(t, err)
		require.True(t, found, "key %q missing after import", k)
		require.Equal(t, wantVal, gotVal, "key %q changed across export/import", k)
	}
}

func TestImportMissingConversationKeyLeavesMediumUnchanged(t *testing.T) {
	medium := NewMemory()
	require.NoError(t, medium.Set("apiKey_openai", "sk-old"))
	require.NoError(t, medium.Set(ConversationKey, "[]"))
	a := NewAdapter(medium)

	snap := Snapshot{"apiKey_openai": json.RawMessage(`"sk-new"`)}
	_, err := a.ImportAll(snap)
	require.True(t, errors.Is(err, ErrInvalidImport))

	val, found, err := medium.Get("apiKey_openai")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "sk-old", val)
	keys, err := medium.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 2)
}

func TestImportMalformedConversationRejected(t *testing.T) {
	a := NewAdapter(NewMemory())

	snap := Snapshot{ConversationKey: json.RawMessage(`{"not":"a list"}`)}
	_, err := a.ImportAll(snap)
	require.True(t, errors.Is(err, ErrInvalidImport))
}

func TestParseSnapshotRejectsGarbage(t *testing.T) {
	_, err := ParseSnapshot([]byte("not json at all"))
	require.True(t, errors.Is(err, ErrInvalidImport))

	_, err = ParseSnapshot([]byte(`["a","list"]`))
	require.True(t, errors.Is(err, ErrInvalidImport))
}

func TestImportReturnsDecodedConversation(t *testing.T) {
	a := NewAdapter(NewMemory())
	conv := testConversation()
	raw, err := json.Marshal(conv)
	require.NoError(t, err)

	msgs, err := a.ImportAll(Snapshot{ConversationKey: raw})
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, conv[0].Text, msgs[0].Text)
	require.Equal(t, conv[1].Sender, msgs[1].Sender)
}
