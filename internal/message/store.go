package message

import "time"

// Store owns the ordered conversation. Operations are pure in-memory data
// manipulation; persistence and rendering are the caller's concern. The
// Store is not safe for concurrent use, callers serialize access.
type Store struct {
	messages []Message
	nextID   int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add appends a freshly numbered message and returns it. IDs come from a
// monotonic counter, the timestamp is display/audit data only.
func (s *Store) Add(sender Sender, text string) Message {
	m := Message{
		ID:        s.nextID,
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.nextID++
	s.messages = append(s.messages, m)
	return m
}

// Delete removes the message with the given id. Unknown ids are a no-op.
func (s *Store) Delete(id int64) {
	for i, m := range s.messages {
		if m.ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return
		}
	}
}

// Edit replaces the text of the message with the given id. Unknown ids are
// a no-op. The text is not validated, empty strings are allowed.
func (s *Store) Edit(id int64, newText string) {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages[i].Text = newText
			return
		}
	}
}

func (s *Store) Clear() {
	s.messages = nil
}

// ReplaceAll swaps in a hydrated conversation verbatim and re-seeds the id
// counter past the highest id so later Adds stay unique.
func (s *Store) ReplaceAll(msgs []Message) {
	s.messages = append([]Message(nil), msgs...)
	for _, m := range msgs {
		if m.ID >= s.nextID {
			s.nextID = m.ID + 1
		}
	}
}

// Get returns the message with the given id if present.
func (s *Store) Get(id int64) (Message, bool) {
	for _, m := range s.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Messages returns a copy of the conversation in creation order.
func (s *Store) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

func (s *Store) Len() int {
	return len(s.messages)
}
