package tg

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"simplechat/internal/storage"
)

const downloadTimeout = 60 * time.Second

// handleDocument treats an uploaded .json file as an import request.
func (s *Service) handleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	doc := update.Message.Document

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".json") {
		sendText(ctx, b, chatID, "Send a .json export file to import chat history.")
		return
	}

	sess, err := s.session(ctx, chatID)
	if err != nil {
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleDocument] session unavailable")
		sendText(ctx, b, chatID, "Storage is unavailable right now. Please try again later.")
		return
	}

	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: doc.FileID})
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("[Service.handleDocument] get file failed")
		sendText(ctx, b, chatID, "Failed to import chat history.")
		return
	}

	raw, err := download(ctx, b.FileDownloadLink(file))
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("[Service.handleDocument] download failed")
		sendText(ctx, b, chatID, "Failed to import chat history.")
		return
	}

	if err := sess.controller.Import(raw); err != nil {
		if errors.Is(err, storage.ErrInvalidImport) {
			sendText(ctx, b, chatID, "Invalid file format. No chatMessages found.")
			return
		}
		log.Error().Int64("chat_id", chatID).Err(err).Msg("[Service.handleDocument] import failed")
		sendText(ctx, b, chatID, "Failed to import chat history.")
		return
	}

	sendText(ctx, b, chatID, "Chat history successfully imported!")
}

func download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create download request")
	}

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download file")
	}
	defer func(body io.ReadCloser) {
		if cerr := body.Close(); cerr != nil {
			log.Debug().Err(cerr).Msg("[download] body close failed")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("unexpected download status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
