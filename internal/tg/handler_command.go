package tg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"

	"simplechat/internal/config"
)

func (s *Service) handleClear(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Are you sure you want to clear the chat history?",
		ReplyMarkup: &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{{
				{Text: "Yes", CallbackData: "clear:yes"},
				{Text: "No", CallbackData: "clear:no"},
			}},
		},
	})
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("[Service.handleClear] send failed")
	}
}

func (s *Service) handleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleExport] session unavailable")
		sendText(ctx, b, chatID, "Storage is unavailable right now. Please try again later.")
		return
	}

	snap, err := sess.controller.Export()
	if err != nil {
		sendText(ctx, b, chatID, "Failed to export chat history.")
		return
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleExport] encode failed")
		sendText(ctx, b, chatID, "Failed to export chat history.")
		return
	}

	name := fmt.Sprintf("simplechat-export-%s.json", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: name, Data: bytes.NewReader(data)},
	})
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("[Service.handleExport] send document failed")
		sendText(ctx, b, chatID, "Failed to export chat history.")
	}
}

func (s *Service) handleModel(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleModel] session unavailable")
		return
	}

	arg := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/model"))
	if arg == "" {
		sendText(ctx, b, chatID, fmt.Sprintf(
			"Current model: %s. Use /model %s or /model %s.",
			sess.currentProvider(), config.ProviderEliza, config.ProviderOpenAI,
		))
		return
	}

	if !sess.setProvider(arg) {
		sendText(ctx, b, chatID, fmt.Sprintf("Unknown model %q. Use /model %s or /model %s.",
			arg, config.ProviderEliza, config.ProviderOpenAI))
		return
	}
	sendText(ctx, b, chatID, fmt.Sprintf("Switched to %s.", arg))
}

func (s *Service) handleAPIKey(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleAPIKey] session unavailable")
		return
	}

	key := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/apikey"))
	if key == "" {
		sendText(ctx, b, chatID, "Usage: /apikey <key>")
		return
	}

	if err := sess.medium.Set(apiKeyKey, key); err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleAPIKey] save failed")
		sendText(ctx, b, chatID, "Failed to save the API key.")
		return
	}

	// Drop the message containing the key from the chat.
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: update.Message.ID,
	}); err != nil {
		log.Debug().Int64("chat_id", chatID).Err(err).Msg("[Service.handleAPIKey] could not delete key message")
	}
	sendText(ctx, b, chatID, "API key saved for openai.")
}
