package tg

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"simplechat/internal/config"
)

// Service runs the chat widget over Telegram. Each Telegram chat gets its
// own lazily created session: a controller, a per-chat durable medium and
// a surface that projects the conversation as bot messages.
type Service struct {
	cfg config.Config
	b   *bot.Bot

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(cfg config.Config) (*Service, error) {
	s := &Service{cfg: cfg, sessions: map[int64]*session{}}

	b, err := bot.New(cfg.BotToken, bot.WithDefaultHandler(s.handleUpdate))
	if err != nil {
		return nil, errors.Wrap(err, "create bot")
	}
	s.b = b

	b.RegisterHandler(bot.HandlerTypeMessageText, "/clear", bot.MatchTypeExact, s.handleClear)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, s.handleExport)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/model", bot.MatchTypePrefix, s.handleModel)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/apikey", bot.MatchTypePrefix, s.handleAPIKey)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "del:", bot.MatchTypePrefix, s.handleCallback)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "edit:", bot.MatchTypePrefix, s.handleCallback)
	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "clear:", bot.MatchTypePrefix, s.handleCallback)

	return s, nil
}

// Run blocks until ctx is cancelled, then drains in-flight replies and
// closes every session's medium.
func (s *Service) Run(ctx context.Context) {
	s.b.Start(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	for chatID, sess := range s.sessions {
		if err := sess.close(); err != nil {
			log.Warn().Int64("chat_id", chatID).Err(err).Msg("[Service.Run] failed to close session")
		}
	}
}

// session returns the session for chatID, creating it on first contact.
func (s *Service) session(ctx context.Context, chatID int64) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[chatID]; ok {
		return sess, nil
	}

	sess, err := newSession(ctx, s.b, s.cfg, chatID)
	if err != nil {
		return nil, err
	}
	log.Info().Int64("chat_id", chatID).Msg("[Service.session] session created")
	s.sessions[chatID] = sess
	return sess, nil
}

func sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		log.Warn().Int64("chat_id", chatID).Err(err).Msg("[Service.sendText] send failed")
	}
}
