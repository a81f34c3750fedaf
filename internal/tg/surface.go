package tg

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"simplechat/internal/message"
)

// surface projects the conversation into a Telegram chat: every message in
// the store is mirrored as a bot message, user messages carry Edit/Delete
// inline buttons. The ctx is the bot's run context, renders may outlive
// the update that triggered them.
type surface struct {
	ctx    context.Context
	b      *bot.Bot
	chatID int64

	mu       sync.Mutex
	rendered map[int64]renderedMessage
}

type renderedMessage struct {
	telegramID int
	sender     message.Sender
	timestamp  time.Time
	controls   bool
}

func newSurface(ctx context.Context, b *bot.Bot, chatID int64) *surface {
	return &surface{
		ctx:      ctx,
		b:        b,
		chatID:   chatID,
		rendered: map[int64]renderedMessage{},
	}
}

func (s *surface) RenderMessage(m message.Message, withControls bool) {
	params := &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   formatMessage(m.Sender, m.Text, m.Timestamp),
	}
	if withControls {
		params.ReplyMarkup = messageControls(m.ID)
	}

	sent, err := s.b.SendMessage(s.ctx, params)
	if err != nil {
		log.Warn().Int64("chat_id", s.chatID).Int64("message_id", m.ID).Err(err).
			Msg("[surface.RenderMessage] send failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rendered[m.ID] = renderedMessage{
		telegramID: sent.ID,
		sender:     m.Sender,
		timestamp:  m.Timestamp,
		controls:   withControls,
	}
}

func (s *surface) RemoveMessage(id int64) {
	s.mu.Lock()
	r, ok := s.rendered[id]
	delete(s.rendered, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	if _, err := s.b.DeleteMessage(s.ctx, &bot.DeleteMessageParams{
		ChatID:    s.chatID,
		MessageID: r.telegramID,
	}); err != nil {
		log.Warn().Int64("chat_id", s.chatID).Int64("message_id", id).Err(err).
			Msg("[surface.RemoveMessage] delete failed")
	}
}

func (s *surface) UpdateMessageText(id int64, newText string) {
	s.mu.Lock()
	r, ok := s.rendered[id]
	s.mu.Unlock()
	if !ok {
		return
	}

	params := &bot.EditMessageTextParams{
		ChatID:    s.chatID,
		MessageID: r.telegramID,
		Text:      formatMessage(r.sender, newText, r.timestamp),
	}
	if r.controls {
		params.ReplyMarkup = messageControls(id)
	}
	if _, err := s.b.EditMessageText(s.ctx, params); err != nil {
		log.Warn().Int64("chat_id", s.chatID).Int64("message_id", id).Err(err).
			Msg("[surface.UpdateMessageText] edit failed")
	}
}

func (s *surface) ClearAll() {
	s.mu.Lock()
	rendered := s.rendered
	s.rendered = map[int64]renderedMessage{}
	s.mu.Unlock()

	for id, r := range rendered {
		if _, err := s.b.DeleteMessage(s.ctx, &bot.DeleteMessageParams{
			ChatID:    s.chatID,
			MessageID: r.telegramID,
		}); err != nil {
			log.Warn().Int64("chat_id", s.chatID).Int64("message_id", id).Err(err).
				Msg("[surface.ClearAll] delete failed")
		}
	}
}

// SetInputValue is a no-op: the input box belongs to the Telegram client.
func (s *surface) SetInputValue(string) {}

func formatMessage(sender message.Sender, text string, ts time.Time) string {
	label := "Bot"
	if sender == message.SenderUser {
		label = "User"
	}
	return fmt.Sprintf("%s: %s\n%s", label, text, ts.Format("15:04:05"))
}

func messageControls(id int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "Edit", CallbackData: fmt.Sprintf("edit:%d", id)},
			{Text: "Delete", CallbackData: fmt.Sprintf("del:%d", id)},
		}},
	}
}
