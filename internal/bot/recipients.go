package bot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/maine/telebot/internal/state"
	"github.com/maine/telebot/internal/telegram"
)

// AddRecipient добавляет чат сообщения в список получателей или обновляет существующую запись.
// Результат отсортирован по имени.
func AddRecipient(recipients []state.Recipient, msg telegram.Message, now time.Time) []state.Recipient {
	res := make([]state.Recipient, 0, len(recipients)+1)
	for _, r := range recipients {
		if r.ChatID != msg.Chat.ID {
			res = append(res, r)
		}
	}
	res = append(res, state.Recipient{
		Name:      RecipientName(msg),
		ChatID:    msg.Chat.ID,
		UpdatedAt: now,
	})

	sort.SliceStable(res, func(i, j int) bool {
		return strings.Compare(res[i].Name, res[j].Name) < 0
	})
	return res
}

// RemoveRecipient убирает чат из списка получателей.
func RemoveRecipient(recipients []state.Recipient, chatID int64) []state.Recipient {
	res := make([]state.Recipient, 0, len(recipients))
	for _, r := range recipients {
		if r.ChatID != chatID {
			res = append(res, r)
		}
	}
	return res
}

// RecipientName выбирает читаемое имя чата: username, затем название, затем имя и фамилия.
func RecipientName(msg telegram.Message) string {
	chat := msg.Chat
	if s := deref(chat.Username); s != "" {
		return s
	}
	if msg.From != nil {
		if s := deref(msg.From.Username); s != "" {
			return s
		}
	}
	if s := deref(chat.Title); s != "" {
		return s
	}
	if name := strings.TrimSpace(deref(chat.FirstName) + " " + deref(chat.LastName)); name != "" {
		return name
	}
	return fmt.Sprintf("chat-%d", chat.ID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
