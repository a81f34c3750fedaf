package tg

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// handleCallback serves the inline buttons: per-message Edit/Delete and
// the clear confirmation.
func (s *Service) handleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	cb := update.CallbackQuery
	if cb == nil || cb.Message.Message == nil {
		return
	}
	defer func() {
		if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: cb.ID,
		}); err != nil {
			log.Debug().Err(err).Msg("[Service.handleCallback] answer failed")
		}
	}()

	chatID := cb.Message.Message.Chat.ID
	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleCallback] session unavailable")
		return
	}

	kind, arg := parseCallback(cb.Data)
	switch kind {
	case "del":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return
		}
		sess.controller.Delete(id)

	case "edit":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return
		}
		s.promptForEdit(ctx, b, sess, id)

	case "clear":
		// Drop the confirmation prompt either way.
		if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    chatID,
			MessageID: cb.Message.Message.ID,
		}); err != nil {
			log.Debug().Int64("chat_id", chatID).Err(err).Msg("[Service.handleCallback] could not delete prompt")
		}
		if arg == "yes" {
			sess.controller.Clear()
		}
	}
}

// promptForEdit asks for a candidate text with a force-reply prompt; the
// reply is routed back through handleText as the edit candidate.
func (s *Service) promptForEdit(ctx context.Context, b *bot.Bot, sess *session, id int64) {
	current, ok := messageText(sess, id)
	if !ok {
		return
	}

	sent, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: sess.chatID,
		Text:   "Edit your message, reply to this with the new text.\nCurrent: " + current,
		ReplyMarkup: &models.ForceReply{
			ForceReply:            true,
			InputFieldPlaceholder: current,
		},
	})
	if err != nil {
		log.Warn().Int64("chat_id", sess.chatID).Err(err).Msg("[Service.promptForEdit] send failed")
		return
	}
	sess.rememberEditPrompt(sent.ID, id)
}

func messageText(sess *session, id int64) (string, bool) {
	for _, m := range sess.controller.Messages() {
		if m.ID == id {
			return m.Text, true
		}
	}
	return "", false
}

func parseCallback(data string) (kind, arg string) {
	if i := strings.IndexByte(data, ':'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}
