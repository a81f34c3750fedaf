package chat

import "simplechat/internal/message"

// Surface is the rendered view of the conversation. Implementations never
// mutate the store; they raise events by calling back into the Controller.
type Surface interface {
	// RenderMessage appends the message to the view. withControls asks
	// for per-message edit/delete affordances (user messages only).
	RenderMessage(m message.Message, withControls bool)
	// RemoveMessage drops the rendered element for the id if present.
	RemoveMessage(id int64)
	// UpdateMessageText swaps the rendered text in place.
	UpdateMessageText(id int64, newText string)
	// ClearAll removes every rendered message.
	ClearAll()
	// SetInputValue replaces the content of the input field. Surfaces
	// without an owned input field treat this as a no-op.
	SetInputValue(text string)
}
