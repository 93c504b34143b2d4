package bot

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/maine/telebot/internal/state"
	"github.com/maine/telebot/internal/telegram"
)

// HandlerFunc обрабатывает одно входящее сообщение.
type HandlerFunc func(ctx context.Context, client telegram.TelegramClient, msg telegram.Message) error

// OffsetStore хранит позицию бота между перезапусками.
type OffsetStore interface {
	Load(ctx context.Context) (state.State, error)
	Save(ctx context.Context, st state.State) error
}

// Option настраивает Bot.
type Option func(*Bot)

// WithStore включает сохранение offset между запусками.
func WithStore(store OffsetStore) Option {
	return func(b *Bot) { b.store = store }
}

// WithPolling задаёт таймаут long polling в секундах и размер пачки.
func WithPolling(timeout, limit int) Option {
	return func(b *Bot) { b.timeout, b.limit = timeout, limit }
}

// WithLogger задаёт логгер цикла опроса. По умолчанию zerolog.Nop.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bot) { b.log = log }
}

// WithMessageFilter пропускает к обработчику только сообщения, для которых allow вернул true.
func WithMessageFilter(allow func(telegram.Message) bool) Option {
	return func(b *Bot) { b.allow = allow }
}

// WithBackOff задаёт политику пауз между неудачными опросами.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(b *Bot) { b.newBackOff = newBackOff }
}

// Bot цикл long polling: получает обновления и передаёт сообщения обработчику.
type Bot struct {
	client     telegram.TelegramClient
	store      OffsetStore
	log        zerolog.Logger
	timeout    int
	limit      int
	newBackOff func() backoff.BackOff
	clock      func() time.Time
	allow      func(telegram.Message) bool

	mu      sync.Mutex
	current state.State
}

// New создаёт бота поверх клиента Bot API.
func New(client telegram.TelegramClient, opts ...Option) *Bot {
	b := &Bot{
		client:  client,
		log:     zerolog.Nop(),
		timeout: 30,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = time.Second
			bo.MaxInterval = 30 * time.Second
			bo.MaxElapsedTime = 0
			return bo
		},
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run блокируется до отмены ctx. Ошибки опроса повторяются с паузой, ошибки обработчика логируются.
func (b *Bot) Run(ctx context.Context, handle HandlerFunc) error {
	poller := NewPoller(b.client, b.timeout, b.limit)

	if b.store != nil {
		st, err := b.store.Load(ctx)
		if err != nil {
			return errors.Wrap(err, "load state")
		}
		b.mu.Lock()
		b.current = st
		b.mu.Unlock()
		poller.SetOffset(st.NextOffset())
	}

	bo := backoff.WithContext(b.newBackOff(), ctx)
	for {
		if ctx.Err() != nil {
			return nil
		}

		updates, err := poller.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			// Без update_id смещение не сдвинуть, сервер будет отдавать ту же пачку.
			if errors.Is(err, telegram.ErrMalformedEntity) {
				return errors.Wrap(err, "undecodable updates")
			}
			wait := bo.NextBackOff()
			if wait == backoff.Stop {
				return errors.Wrap(err, "polling stopped")
			}
			b.log.Warn().Err(err).Dur("retry_in", wait).Msg("poll failed")

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			continue
		}
		bo.Reset()

		if len(updates) == 0 {
			continue
		}

		for _, upd := range updates {
			b.dispatch(ctx, handle, upd)
		}
		b.save(ctx, poller.Offset())
	}
}

func (b *Bot) dispatch(ctx context.Context, handle HandlerFunc, upd telegram.Update) {
	if upd.Message == nil {
		b.log.Debug().Int64("update_id", upd.UpdateID).Msg("skip update without message")
		return
	}

	msg := *upd.Message
	if b.allow != nil && !b.allow(msg) {
		b.log.Debug().Int64("update_id", upd.UpdateID).Int64("chat_id", msg.Chat.ID).Msg("message filtered out")
		return
	}

	if err := handle(ctx, b.client, msg); err != nil {
		b.log.Error().
			Err(err).
			Int64("update_id", upd.UpdateID).
			Int64("chat_id", msg.Chat.ID).
			Msg("handler failed")
	}
}

// Subscribe добавляет чат сообщения в список получателей рассылки.
// Список сохраняется вместе с offset после обработки пачки.
func (b *Bot) Subscribe(msg telegram.Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Recipients = AddRecipient(b.current.Recipients, msg, b.clock())
}

// Unsubscribe убирает чат из списка получателей.
func (b *Bot) Unsubscribe(chatID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current.Recipients = RemoveRecipient(b.current.Recipients, chatID)
}

// Recipients возвращает копию текущего списка получателей.
func (b *Bot) Recipients() []state.Recipient {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]state.Recipient(nil), b.current.Recipients...)
}

func (b *Bot) save(ctx context.Context, offset int64) {
	if b.store == nil {
		return
	}

	b.mu.Lock()
	b.current.LastUpdateID = offset - 1
	b.current.UpdatedAt = b.clock()
	st := b.current
	st.Recipients = append([]state.Recipient(nil), b.current.Recipients...)
	b.mu.Unlock()

	if err := b.store.Save(ctx, st); err != nil {
		b.log.Error().Err(err).Int64("last_update_id", st.LastUpdateID).Msg("save state failed")
	}
}
