package tg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"simplechat/internal/message"
)

func TestFormatMessage(t *testing.T) {
	ts := time.Date(2025, 11, 3, 14, 12, 5, 0, time.UTC)

	require.Equal(t, "User: hi\n14:12:05", formatMessage(message.SenderUser, "hi", ts))
	require.Equal(t, "Bot: hello\n14:12:05", formatMessage(message.SenderBot, "hello", ts))
}

func TestParseCallback(t *testing.T) {
	kind, arg := parseCallback("del:42")
	require.Equal(t, "del", kind)
	require.Equal(t, "42", arg)

	kind, arg = parseCallback("clear:yes")
	require.Equal(t, "clear", kind)
	require.Equal(t, "yes", arg)

	kind, arg = parseCallback("noarg")
	require.Equal(t, "noarg", kind)
	require.Equal(t, "", arg)
}

func TestMessageControlsCallbackData(t *testing.T) {
	kb := messageControls(7)
	require.Len(t, kb.InlineKeyboard, 1)
	require.Len(t, kb.InlineKeyboard[0], 2)
	require.Equal(t, "edit:7", kb.InlineKeyboard[0][0].CallbackData)
	require.Equal(t, "del:7", kb.InlineKeyboard[0][1].CallbackData)
}
