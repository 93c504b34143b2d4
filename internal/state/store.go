package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

// State хранит позицию бота в потоке обновлений между перезапусками.
type State struct {
	// LastUpdateID максимальный обработанный update_id; следующий getUpdates начинается с LastUpdateID+1.
	LastUpdateID int64       `json:"last_update_id"`
	Recipients   []Recipient `json:"recipients,omitempty"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Recipient чат, подписанный на рассылку.
type Recipient struct {
	Name      string    `json:"name"`
	ChatID    int64     `json:"chat_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatIDs возвращает идентификаторы чатов подписчиков.
func (s State) ChatIDs() []int64 {
	ids := make([]int64, 0, len(s.Recipients))
	for _, r := range s.Recipients {
		ids = append(ids, r.ChatID)
	}
	return ids
}

// NextOffset возвращает offset для следующего вызова getUpdates.
func (s State) NextOffset() int64 {
	if s.LastUpdateID == 0 {
		return 0
	}
	return s.LastUpdateID + 1
}

// FileStore хранит состояние в JSON-файле.
type FileStore struct {
	path string
}

// NewFileStore создаёт новый файловый стор.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает состояние из файла. Отсутствующий файл означает пустое состояние.
func (s *FileStore) Load(ctx context.Context) (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, errors.Wrap(err, "read state file")
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		// Повреждённый файл сохраняем рядом как .broken и начинаем с пустого состояния:
		// сервер сам отдаст все неподтверждённые обновления.
		_ = os.WriteFile(s.path+".broken", data, 0644)
		return State{}, nil
	}

	return st, nil
}

// Save записывает состояние в файл атомарно (через временный файл).
func (s *FileStore) Save(ctx context.Context, st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, "create state directory")
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Wrap(err, "write temp state file")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(err, "rename temp state file")
	}

	return nil
}
