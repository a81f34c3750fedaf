package tg

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-telegram/bot"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"simplechat/internal/chat"
	"simplechat/internal/config"
	"simplechat/internal/message"
	"simplechat/internal/responder"
	"simplechat/internal/storage"
	"simplechat/internal/storage/bolt"
	"simplechat/internal/storage/sqlite"
)

// apiKeyKey is the auxiliary medium key holding the saved OpenAI
// credential. It rides along in exports like any other auxiliary entry.
const apiKeyKey = "apiKey_openai"

// session ties one Telegram chat to its own controller, durable medium and
// responder selection.
type session struct {
	chatID     int64
	surface    *surface
	controller *chat.Controller
	medium     storage.Medium
	closeFn    func() error

	mu           sync.Mutex
	provider     string
	responders   map[string]responder.Responder
	submitted    map[int]int64 // telegram message id -> chat message id
	pendingEdits map[int]int64 // edit prompt message id -> chat message id
}

func newSession(ctx context.Context, b *bot.Bot, cfg config.Config, chatID int64) (*session, error) {
	medium, closeFn, err := openMedium(cfg, chatID)
	if err != nil {
		return nil, err
	}

	sess := &session{
		chatID:       chatID,
		medium:       medium,
		closeFn:      closeFn,
		provider:     cfg.Provider,
		submitted:    map[int]int64{},
		pendingEdits: map[int]int64{},
	}

	credentials := responder.CredentialFunc(func() string {
		v, found, err := medium.Get(apiKeyKey)
		if err == nil && found && v != "" {
			return v
		}
		return cfg.OpenAIKey
	})
	sess.responders = map[string]responder.Responder{
		config.ProviderEliza:  responder.NewEliza(),
		config.ProviderOpenAI: responder.NewOpenAI(credentials),
	}

	sess.surface = newSurface(ctx, b, chatID)
	sess.controller = chat.NewController(
		message.NewStore(),
		storage.NewAdapter(medium),
		sess.responders[sess.provider],
		sess.surface,
	)
	return sess, nil
}

func openMedium(cfg config.Config, chatID int64) (storage.Medium, func() error, error) {
	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create storage directory")
	}

	switch cfg.Backend {
	case config.BackendBolt:
		m, err := bolt.Open(filepath.Join(cfg.StorageDir, fmt.Sprintf("chat-%d.bolt", chatID)))
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	default:
		db, err := sql.Open("sqlite3", filepath.Join(cfg.StorageDir, fmt.Sprintf("chat-%d.db", chatID)))
		if err != nil {
			return nil, nil, errors.Wrap(err, "open sqlite file")
		}
		m := sqlite.NewMedium(db)
		if err := m.Init(); err != nil {
			_ = m.Close()
			return nil, nil, err
		}
		return m, m.Close, nil
	}
}

// setProvider switches the active responder. Unknown names are rejected.
func (s *session) setProvider(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.responders[name]
	if !ok {
		return false
	}
	s.provider = name
	s.controller.SetResponder(r)
	return true
}

func (s *session) currentProvider() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider
}

// rememberSubmission maps the user's own Telegram message to the chat
// message it produced, so editing it in Telegram edits the conversation.
func (s *session) rememberSubmission(telegramID int, msgID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted[telegramID] = msgID
}

func (s *session) lookupSubmission(telegramID int) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.submitted[telegramID]
	return id, ok
}

func (s *session) rememberEditPrompt(promptID int, msgID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingEdits[promptID] = msgID
}

// takeEditPrompt consumes a pending edit prompt, returning the chat
// message the reply is a candidate text for.
func (s *session) takeEditPrompt(promptID int) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.pendingEdits[promptID]
	if ok {
		delete(s.pendingEdits, promptID)
	}
	return id, ok
}

func (s *session) close() error {
	s.controller.Wait()
	return s.closeFn()
}
