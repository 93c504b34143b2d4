package bot

import (
	"context"

	"github.com/pkg/errors"

	"github.com/maine/telebot/internal/telegram"
)

// Poller получает обновления пачками и сдвигает offset, чтобы сервер не присылал их повторно.
// Poller не предназначен для конкурентного использования.
type Poller struct {
	client  telegram.TelegramClient
	offset  int64
	timeout int
	limit   int
}

// NewPoller создаёт поллер. timeout в секундах передаётся серверу как таймаут long polling.
func NewPoller(client telegram.TelegramClient, timeout, limit int) *Poller {
	return &Poller{
		client:  client,
		timeout: timeout,
		limit:   limit,
	}
}

// Offset возвращает offset следующего запроса.
func (p *Poller) Offset() int64 {
	return p.offset
}

// SetOffset задаёт offset, например восстановленный из состояния.
func (p *Poller) SetOffset(offset int64) {
	p.offset = offset
}

// Poll выполняет один getUpdates и возвращает обновления в порядке сервера.
func (p *Poller) Poll(ctx context.Context) ([]telegram.Update, error) {
	updates, err := p.client.GetUpdates(ctx, telegram.GetUpdatesOptions{
		Offset:  p.offset,
		Limit:   p.limit,
		Timeout: p.timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "get updates")
	}

	for _, upd := range updates {
		if upd.UpdateID >= p.offset {
			p.offset = upd.UpdateID + 1
		}
	}
	return updates, nil
}
