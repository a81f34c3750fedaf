package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddKeepsCreationOrder(t *testing.T) {
	s := NewStore()
	first := s.Add(SenderUser, "hi")
	second := s.Add(SenderBot, "hello")

	require.Equal(t, 2, s.Len())
	msgs := s.Messages()
	require.Equal(t, first.ID, msgs[0].ID)
	require.Equal(t, second.ID, msgs[1].ID)
	require.Greater(t, second.ID, first.ID)
}

func TestIdentityStableAcrossMutations(t *testing.T) {
	s := NewStore()
	a := s.Add(SenderUser, "one")
	b := s.Add(SenderUser, "two")
	c := s.Add(SenderBot, "three")

	s.Delete(b.ID)
	s.Edit(c.ID, "changed")

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	require.Equal(t, a.ID, got.ID)
	require.True(t, a.Timestamp.Equal(got.Timestamp))

	got, ok = s.Get(c.ID)
	require.True(t, ok)
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, c.Sender, got.Sender)
	require.True(t, c.Timestamp.Equal(got.Timestamp))
}

func TestEditReplacesTextOnly(t *testing.T) {
	s := NewStore()
	m := s.Add(SenderUser, "foo")

	s.Edit(m.ID, "bar")

	got, ok := s.Get(m.ID)
	require.True(t, ok)
	require.Equal(t, "bar", got.Text)
	require.Equal(t, m.ID, got.ID)
	require.Equal(t, SenderUser, got.Sender)
	require.True(t, m.Timestamp.Equal(got.Timestamp))
}

func TestDeleteKeepsRelativeOrder(t *testing.T) {
	s := NewStore()
	first := s.Add(SenderUser, "one")
	second := s.Add(SenderUser, "two")
	third := s.Add(SenderUser, "three")

	s.Delete(second.ID)

	msgs := s.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, first.ID, msgs[0].ID)
	require.Equal(t, third.ID, msgs[1].ID)
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.Add(SenderUser, "one")
	s.Add(SenderBot, "two")

	before := s.Messages()
	s.Delete(9999)

	require.Equal(t, before, s.Messages())
}

func TestEditUnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	m := s.Add(SenderUser, "one")

	s.Edit(m.ID+100, "other")

	got, _ := s.Get(m.ID)
	require.Equal(t, "one", got.Text)
}

func TestReplaceAllReseedsCounter(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]Message{
		{ID: 3, Sender: SenderUser, Text: "a"},
		{ID: 7, Sender: SenderBot, Text: "b"},
	})

	added := s.Add(SenderUser, "c")
	require.Equal(t, int64(8), added.ID)
	require.Equal(t, 3, s.Len())
}

func TestClearDoesNotRecycleIDs(t *testing.T) {
	s := NewStore()
	before := s.Add(SenderUser, "one")

	s.Clear()
	require.Equal(t, 0, s.Len())

	after := s.Add(SenderUser, "two")
	require.Greater(t, after.ID, before.ID)
}
