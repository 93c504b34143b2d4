package filter

import (
	"strings"
	"time"

	"github.com/maine/telebot/internal/config"
	"github.com/maine/telebot/internal/telegram"
)

// Filter отсекает входящие сообщения, на которые бот не должен отвечать.
type Filter struct {
	users  map[string]struct{}
	chats  map[int64]struct{}
	maxAge time.Duration
	clock  func() time.Time
}

// New создаёт экземпляр фильтра. Пустые списки означают "разрешены все".
func New(cfg config.Filter) *Filter {
	f := &Filter{
		users:  make(map[string]struct{}, len(cfg.AllowedUsers)),
		chats:  make(map[int64]struct{}, len(cfg.AllowedChats)),
		maxAge: cfg.MaxAge,
		clock:  time.Now,
	}
	for _, u := range cfg.AllowedUsers {
		f.users[normalizeUsername(u)] = struct{}{}
	}
	for _, id := range cfg.AllowedChats {
		f.chats[id] = struct{}{}
	}
	return f
}

// Allow сообщает, нужно ли передавать сообщение обработчику.
func (f *Filter) Allow(msg telegram.Message) bool {
	// Сообщения, накопившиеся пока бот был выключен, устаревают
	if f.maxAge > 0 {
		cutoff := f.clock().Add(-f.maxAge)
		if time.Unix(msg.Date, 0).Before(cutoff) {
			return false
		}
	}

	if len(f.chats) > 0 {
		if _, ok := f.chats[msg.Chat.ID]; !ok {
			return false
		}
	}

	if len(f.users) > 0 {
		if msg.From == nil || msg.From.Username == nil {
			return false
		}
		if _, ok := f.users[normalizeUsername(*msg.From.Username)]; !ok {
			return false
		}
	}

	return true
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(u), "@"))
}
