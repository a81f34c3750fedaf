package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"simplechat/internal/message"
	"simplechat/internal/responder"
	"simplechat/internal/storage"
)

// Greeting is appended on every startup and after every clear, so the
// conversation is never left truly empty.
const Greeting = "Hello! How can I help you today?"

// Controller wires surface events to store mutations, invokes the
// responder and persists after every mutating operation (write-through).
// Store, adapter, responder and surface are injected; the controller is
// safe for the concurrent responder completions it spawns itself.
type Controller struct {
	store     *message.Store
	adapter   *storage.Adapter
	surface   Surface
	sessionID string

	mu        sync.Mutex
	responder responder.Responder
	pending   sync.WaitGroup
}

// NewController hydrates the store from the adapter, renders the stored
// conversation in order and appends the greeting.
func NewController(store *message.Store, adapter *storage.Adapter, r responder.Responder, surface Surface) *Controller {
	c := &Controller{
		store:     store,
		adapter:   adapter,
		surface:   surface,
		responder: r,
		sessionID: uuid.NewString(),
	}
	c.hydrate()
	c.mu.Lock()
	c.appendBotLocked(Greeting)
	c.mu.Unlock()
	return c
}

func (c *Controller) hydrate() {
	msgs, err := c.adapter.Load()
	if err != nil {
		if errors.Is(err, storage.ErrCorruptData) {
			log.Warn().Str("session", c.sessionID).Err(err).
				Msg("[Controller.hydrate] stored conversation unreadable, starting empty")
		} else {
			log.Warn().Str("session", c.sessionID).Err(err).
				Msg("[Controller.hydrate] load failed, starting empty")
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.ReplaceAll(msgs)
	for _, m := range msgs {
		c.surface.RenderMessage(m, m.Sender == message.SenderUser)
	}
}

// SetResponder switches the responder used for subsequent submissions.
func (c *Controller) SetResponder(r responder.Responder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responder = r
}

// Submit records a user message and asks the responder for a reply. It
// returns the created message, or ok=false for empty or whitespace-only
// input, which is rejected silently. The responder runs on its own
// goroutine; submissions are not serialized against each other, so rapid
// sequential submissions may see replies land out of order.
func (c *Controller) Submit(ctx context.Context, text string) (message.Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return message.Message{}, false
	}

	c.mu.Lock()
	m := c.store.Add(message.SenderUser, text)
	c.surface.RenderMessage(m, true)
	c.surface.SetInputValue("")
	c.persistLocked()
	r := c.responder
	c.mu.Unlock()

	requestID := uuid.NewString()
	log.Debug().Str("session", c.sessionID).Str("request", requestID).
		Int64("message_id", m.ID).Msg("[Controller.Submit] awaiting reply")

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		reply, err := r.Respond(ctx, text)
		if err != nil {
			log.Warn().Str("session", c.sessionID).Str("request", requestID).Err(err).
				Msg("[Controller.Submit] responder failed")
			reply = fmt.Sprintf("[Error] Failed to get response: %v", err)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.appendBotLocked(reply)
	}()
	return m, true
}

// Delete removes the message with the given id. Unknown ids are ignored.
func (c *Controller) Delete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.store.Get(id); !ok {
		return
	}
	c.store.Delete(id)
	c.surface.RemoveMessage(id)
	c.persistLocked()
}

// Edit applies a candidate text obtained out-of-band by the surface. A
// candidate that trims to the current text is a no-op; an unknown id is
// ignored.
func (c *Controller) Edit(id int64, candidate string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	current, ok := c.store.Get(id)
	if !ok {
		return
	}
	trimmed := strings.TrimSpace(candidate)
	if trimmed == strings.TrimSpace(current.Text) {
		return
	}
	c.store.Edit(id, trimmed)
	c.surface.UpdateMessageText(id, trimmed)
	c.persistLocked()
}

// Clear empties the conversation and re-seeds the greeting. Confirmation
// happens before the call, on the surface.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Clear()
	c.surface.ClearAll()
	c.persistLocked()
	c.appendBotLocked(Greeting)
}

// Export returns a full snapshot of the durable medium for file delivery.
func (c *Controller) Export() (storage.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, err := c.adapter.ExportAll()
	if err != nil {
		log.Error().Str("session", c.sessionID).Err(err).Msg("[Controller.Export] export failed")
		return nil, err
	}
	return snap, nil
}

// Import replaces the durable medium and the in-memory conversation with
// the snapshot parsed from raw file content. Payloads without a valid
// conversation entry are rejected with storage.ErrInvalidImport and
// nothing is mutated.
func (c *Controller) Import(raw []byte) error {
	snap, err := storage.ParseSnapshot(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	msgs, err := c.adapter.ImportAll(snap)
	if err != nil {
		return err
	}
	c.store.ReplaceAll(msgs)
	c.surface.ClearAll()
	for _, m := range c.store.Messages() {
		c.surface.RenderMessage(m, m.Sender == message.SenderUser)
	}
	// Persist once more so the stored form is normalized serialization.
	c.persistLocked()
	return nil
}

// Messages returns the current conversation in order.
func (c *Controller) Messages() []message.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Messages()
}

// Wait blocks until every in-flight responder call has completed. Used on
// shutdown; a reply landing after a Clear is appended as a new message.
func (c *Controller) Wait() {
	c.pending.Wait()
}

func (c *Controller) appendBotLocked(text string) {
	m := c.store.Add(message.SenderBot, text)
	c.surface.RenderMessage(m, false)
	c.persistLocked()
}

func (c *Controller) persistLocked() {
	if err := c.adapter.Save(c.store.Messages()); err != nil {
		log.Warn().Str("session", c.sessionID).Err(err).
			Msg("[Controller.persist] save failed, in-memory state stays authoritative")
	}
}
