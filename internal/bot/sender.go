package bot

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/maine/telebot/internal/formatter"
	"github.com/maine/telebot/internal/telegram"
)

const (
	// broadcastRateLimitPerSecond лимит Bot API на рассылку: 30 сообщений в секунду.
	broadcastRateLimitPerSecond = 30
	defaultMaxRetries           = 3
)

// Sender отправляет текстовые сообщения с повтором временных ошибок.
type Sender struct {
	client      telegram.TelegramClient
	log         zerolog.Logger
	maxRetries  uint64
	minInterval time.Duration
	newBackOff  func() backoff.BackOff
	splitter    *formatter.Splitter
}

// SenderOption настраивает Sender.
type SenderOption func(*Sender)

// WithSenderLogger задаёт логгер для повторных попыток отправки.
func WithSenderLogger(log zerolog.Logger) SenderOption {
	return func(s *Sender) { s.log = log }
}

// WithRetry задаёт число повторов и политику пауз между ними.
func WithRetry(maxRetries uint64, newBackOff func() backoff.BackOff) SenderOption {
	return func(s *Sender) {
		s.maxRetries = maxRetries
		s.newBackOff = newBackOff
	}
}

// WithMinInterval задаёт минимальную паузу между сообщениями рассылки.
func WithMinInterval(d time.Duration) SenderOption {
	return func(s *Sender) { s.minInterval = d }
}

// NewSender создаёт новый экземпляр отправителя.
func NewSender(client telegram.TelegramClient, opts ...SenderOption) *Sender {
	s := &Sender{
		client:      client,
		log:         zerolog.Nop(),
		maxRetries:  defaultMaxRetries,
		minInterval: time.Second / broadcastRateLimitPerSecond,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 2 * time.Second
			bo.MaxInterval = 10 * time.Second
			return bo
		},
		splitter: formatter.NewSplitter(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reply отправляет текст в чат. Сетевые ошибки, 5xx и 429 повторяются, остальные ошибки API возвращаются сразу.
func (s *Sender) Reply(ctx context.Context, chatID int64, text string, opts telegram.SendMessageOptions) (telegram.Message, error) {
	var sent telegram.Message

	op := func() error {
		msg, err := s.client.SendMessage(ctx, chatID, text, opts)
		if err == nil {
			sent = msg
			return nil
		}
		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}
		if wait := retryAfter(err); wait > 0 {
			select {
			case <-ctx.Done():
				return backoff.Permanent(ctx.Err())
			case <-time.After(wait):
			}
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		s.log.Warn().Err(err).Int64("chat_id", chatID).Dur("retry_in", wait).Msg("send failed, retrying")
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return telegram.Message{}, errors.Wrapf(err, "send message to %d", chatID)
	}
	return sent, nil
}

// ReplyLong разбивает текст длиннее лимита Telegram на части и отправляет их по порядку.
// При ошибке возвращаются уже доставленные части.
func (s *Sender) ReplyLong(ctx context.Context, chatID int64, text string) ([]telegram.Message, error) {
	parts := s.splitter.Split(text)
	sent := make([]telegram.Message, 0, len(parts))
	for i, part := range parts {
		msg, err := s.Reply(ctx, chatID, part, telegram.SendMessageOptions{})
		if err != nil {
			return sent, errors.WithMessagef(err, "part %d/%d", i+1, len(parts))
		}
		sent = append(sent, msg)
	}
	return sent, nil
}

// Broadcast отправляет текст в каждый чат с учётом rate limit.
// Ошибка одного получателя не прерывает рассылку; возвращается число доставленных сообщений.
func (s *Sender) Broadcast(ctx context.Context, chatIDs []int64, text string) (int, error) {
	if len(chatIDs) == 0 {
		return 0, errors.New("no recipients provided")
	}

	sent := 0
	var lastSent time.Time
	for _, chatID := range chatIDs {
		if wait := s.minInterval - time.Since(lastSent); wait > 0 {
			select {
			case <-ctx.Done():
				return sent, ctx.Err()
			case <-time.After(wait):
			}
		}

		if _, err := s.ReplyLong(ctx, chatID, text); err != nil {
			if ctx.Err() != nil {
				return sent, ctx.Err()
			}
			s.log.Error().Err(err).Int64("chat_id", chatID).Msg("broadcast failed for recipient")
			continue
		}
		sent++
		lastSent = time.Now()
	}

	s.log.Info().Int("sent", sent).Int("total", len(chatIDs)).Msg("broadcast finished")
	return sent, nil
}

// isRetryableError определяет, можно ли повторить отправку при данной ошибке.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var netErr *telegram.NetworkError
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr *telegram.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	// Неразборчивый ответ или битая сущность не исправятся повтором.
	return false
}

func retryAfter(err error) time.Duration {
	var apiErr *telegram.Error
	if !errors.As(err, &apiErr) || apiErr.Parameters == nil || apiErr.Parameters.RetryAfter == nil {
		return 0
	}
	return time.Duration(*apiErr.Parameters.RetryAfter) * time.Second
}
