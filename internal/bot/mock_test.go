package bot

import (
	"context"
	"sync"

	"github.com/maine/telebot/internal/state"
	"github.com/maine/telebot/internal/telegram"
)

// mockClient мок TelegramClient: нереализованные методы паникуют через встроенный nil-интерфейс.
type mockClient struct {
	telegram.TelegramClient

	getUpdatesFunc  func(ctx context.Context, opts telegram.GetUpdatesOptions) ([]telegram.Update, error)
	sendMessageFunc func(ctx context.Context, chatID int64, text string, opts telegram.SendMessageOptions) (telegram.Message, error)
}

func (m *mockClient) GetUpdates(ctx context.Context, opts telegram.GetUpdatesOptions) ([]telegram.Update, error) {
	if m.getUpdatesFunc != nil {
		return m.getUpdatesFunc(ctx, opts)
	}
	return nil, nil
}

func (m *mockClient) SendMessage(ctx context.Context, chatID int64, text string, opts telegram.SendMessageOptions) (telegram.Message, error) {
	if m.sendMessageFunc != nil {
		return m.sendMessageFunc(ctx, chatID, text, opts)
	}
	return telegram.Message{MessageID: 1, Chat: telegram.Chat{ID: chatID}, Text: &text}, nil
}

type memoryStore struct {
	mu      sync.Mutex
	initial state.State
	loadErr error
	saved   []state.State
}

func (s *memoryStore) Load(ctx context.Context) (state.State, error) {
	return s.initial, s.loadErr
}

func (s *memoryStore) Save(ctx context.Context, st state.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = append(s.saved, st)
	return nil
}

func textUpdate(id int64, chatID int64, text string) telegram.Update {
	return telegram.Update{
		UpdateID: id,
		Message: &telegram.Message{
			MessageID: id,
			Chat:      telegram.Chat{ID: chatID},
			Date:      1000 + id,
			Text:      &text,
		},
	}
}
