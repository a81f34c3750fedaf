package tg

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const helpText = "Send me a message and I'll reply.\n" +
	"/clear - clear the chat history\n" +
	"/export - export the chat history as a JSON file\n" +
	"/model eliza|openai - pick the responder\n" +
	"/apikey <key> - save your OpenAI API key\n" +
	"Send a .json export file to import chat history."

// handleUpdate routes everything the command handlers did not claim.
func (s *Service) handleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.Message != nil && update.Message.Document != nil:
		s.handleDocument(ctx, b, update)
	case update.Message != nil && update.Message.Text != "":
		s.handleText(ctx, b, update)
	case update.EditedMessage != nil && update.EditedMessage.Text != "":
		s.handleEdited(ctx, b, update)
	}
}

func (s *Service) handleText(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleText] session unavailable")
		sendText(ctx, b, chatID, "Storage is unavailable right now. Please try again later.")
		return
	}

	// A reply to an edit prompt carries the candidate text.
	if replyTo := update.Message.ReplyToMessage; replyTo != nil {
		if msgID, ok := sess.takeEditPrompt(replyTo.ID); ok {
			sess.controller.Edit(msgID, update.Message.Text)
			return
		}
	}

	text := update.Message.Text
	if strings.HasPrefix(text, "/") {
		sendText(ctx, b, chatID, helpText)
		return
	}

	if m, ok := sess.controller.Submit(ctx, text); ok {
		sess.rememberSubmission(update.Message.ID, m.ID)
	}
}

// handleEdited picks up edits the user made to their own Telegram message
// and applies them to the conversation.
func (s *Service) handleEdited(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.EditedMessage.Chat.ID
	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleEdited] session unavailable")
		return
	}

	if msgID, ok := sess.lookupSubmission(update.EditedMessage.ID); ok {
		sess.controller.Edit(msgID, update.EditedMessage.Text)
	}
}
