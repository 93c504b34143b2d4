package telegram

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/jx"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

const (
	// DefaultAPIURL адрес Bot API по умолчанию.
	DefaultAPIURL = "https://api.telegram.org"
	// DefaultRequestTimeout время на один обмен запрос/ответ без учёта long polling.
	DefaultRequestTimeout = 15 * time.Second
)

// TelegramClient определяет интерфейс для работы с Telegram Bot API.
// Это позволяет легко создавать моки для тестирования.
type TelegramClient interface {
	GetMe(ctx context.Context) (User, error)
	GetUpdates(ctx context.Context, opts GetUpdatesOptions) ([]Update, error)
	SendMessage(ctx context.Context, chatID int64, text string, opts SendMessageOptions) (Message, error)
	ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (Message, error)
	SendPhoto(ctx context.Context, chatID int64, photo FileSource, opts SendPhotoOptions) (Message, error)
	SendAudio(ctx context.Context, chatID int64, audio FileSource, opts SendOptions) (Message, error)
	SendDocument(ctx context.Context, chatID int64, document FileSource, opts SendOptions) (Message, error)
	SendSticker(ctx context.Context, chatID int64, sticker FileSource, opts SendOptions) (Message, error)
	SendVideo(ctx context.Context, chatID int64, video FileSource, opts SendVideoOptions) (Message, error)
	SendLocation(ctx context.Context, chatID int64, latitude, longitude float64, opts SendOptions) (Message, error)
	SendChatAction(ctx context.Context, chatID int64, action ChatAction) (bool, error)
	GetUserProfilePhotos(ctx context.Context, userID int64, opts GetUserProfilePhotosOptions) (UserProfilePhotos, error)
}

// Client инкапсулирует работу с Telegram Bot API.
// Состояния между вызовами нет, поэтому Client безопасен для конкурентного использования.
type Client struct {
	token   string
	client  *http.Client
	apiURL  string
	timeout time.Duration
}

// Убеждаемся, что Client реализует интерфейс TelegramClient.
var _ TelegramClient = (*Client)(nil)

// Option настраивает Client.
type Option func(*Client)

// WithAPIURL задаёт адрес Bot API (например, для тестового сервера).
func WithAPIURL(apiURL string) Option {
	return func(c *Client) { c.apiURL = apiURL }
}

// WithHTTPClient задаёт транспорт. Timeout у переданного клиента должен превышать таймаут long polling.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRequestTimeout задаёт таймаут одного вызова. Неположительное значение заменяется на DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// NewClient создаёт клиента. token обязателен.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		client:  cleanhttp.DefaultPooledClient(),
		apiURL:  DefaultAPIURL,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout <= 0 {
		c.timeout = DefaultRequestTimeout
	}
	return c
}

// GetUpdatesOptions параметры getUpdates. Нулевые значения не передаются.
type GetUpdatesOptions struct {
	// Offset должен быть на единицу больше максимального полученного update_id.
	Offset int64
	// Limit 1-100, по умолчанию сервер отдаёт до 100.
	Limit int
	// Timeout в секундах для long polling, 0 - обычный короткий опрос.
	Timeout int
}

// SendOptions общие необязательные параметры методов отправки.
type SendOptions struct {
	ReplyToMessageID int64
	ReplyMarkup      ReplyMarkup
}

func (o SendOptions) apply(p *params) error {
	p.setOptInt("reply_to_message_id", o.ReplyToMessageID)
	return p.setMarkup(o.ReplyMarkup)
}

// SendMessageOptions параметры sendMessage.
type SendMessageOptions struct {
	DisableWebPagePreview bool
	SendOptions
}

// SendPhotoOptions параметры sendPhoto. Пустой Caption не передаётся.
type SendPhotoOptions struct {
	Caption string
	SendOptions
}

// SendVideoOptions параметры sendVideo. Duration в секундах, 0 не передаётся.
type SendVideoOptions struct {
	Caption  string
	Duration int
	SendOptions
}

// GetUserProfilePhotosOptions постраничная выборка фотографий профиля. Нулевые значения не передаются.
type GetUserProfilePhotosOptions struct {
	Offset int
	Limit  int
}

// GetMe проверяет токен и возвращает информацию о боте.
func (c *Client) GetMe(ctx context.Context) (User, error) {
	return call(ctx, c, "getMe", newParams(), decodeUser)
}

// GetUpdates получает входящие обновления long polling'ом.
// Обновления возвращаются в порядке сервера; отслеживать offset должен вызывающий.
func (c *Client) GetUpdates(ctx context.Context, opts GetUpdatesOptions) ([]Update, error) {
	p := newParams()
	p.setOptInt("offset", opts.Offset)
	p.setOptInt("limit", int64(opts.Limit))
	p.setOptInt("timeout", int64(opts.Timeout))
	p.longPoll = time.Duration(opts.Timeout) * time.Second

	return call(ctx, c, "getUpdates", p, decodeUpdates)
}

// SendMessage отправляет текстовое сообщение.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts SendMessageOptions) (Message, error) {
	p := newParams()
	p.setInt("chat_id", chatID)
	p.set("text", text)
	p.setBool("disable_web_page_preview", opts.DisableWebPagePreview)
	if err := opts.apply(p); err != nil {
		return Message{}, errors.WithMessage(err, "sendMessage")
	}
	return call(ctx, c, "sendMessage", p, decodeMessage)
}

// ForwardMessage пересылает сообщение любого типа.
func (c *Client) ForwardMessage(ctx context.Context, chatID, fromChatID, messageID int64) (Message, error) {
	p := newParams()
	p.setInt("chat_id", chatID)
	p.setInt("from_chat_id", fromChatID)
	p.setInt("message_id", messageID)
	return call(ctx, c, "forwardMessage", p, decodeMessage)
}

// SendPhoto отправляет фотографию: InputFile загружается, FileID переиспользует файл с сервера.
func (c *Client) SendPhoto(ctx context.Context, chatID int64, photo FileSource, opts SendPhotoOptions) (Message, error) {
	return c.sendFile(ctx, "sendPhoto", chatID, "photo", photo, func(p *params) error {
		p.setOptString("caption", opts.Caption)
		return opts.apply(p)
	})
}

// SendAudio отправляет аудио (.ogg OPUS отображается как голосовое сообщение).
func (c *Client) SendAudio(ctx context.Context, chatID int64, audio FileSource, opts SendOptions) (Message, error) {
	return c.sendFile(ctx, "sendAudio", chatID, "audio", audio, opts.apply)
}

// SendDocument отправляет произвольный файл.
func (c *Client) SendDocument(ctx context.Context, chatID int64, document FileSource, opts SendOptions) (Message, error) {
	return c.sendFile(ctx, "sendDocument", chatID, "document", document, opts.apply)
}

// SendSticker отправляет стикер .webp.
func (c *Client) SendSticker(ctx context.Context, chatID int64, sticker FileSource, opts SendOptions) (Message, error) {
	return c.sendFile(ctx, "sendSticker", chatID, "sticker", sticker, opts.apply)
}

// SendVideo отправляет видео (.mp4).
func (c *Client) SendVideo(ctx context.Context, chatID int64, video FileSource, opts SendVideoOptions) (Message, error) {
	return c.sendFile(ctx, "sendVideo", chatID, "video", video, func(p *params) error {
		p.setOptString("caption", opts.Caption)
		p.setOptInt("duration", int64(opts.Duration))
		return opts.apply(p)
	})
}

// SendLocation отправляет точку на карте.
func (c *Client) SendLocation(ctx context.Context, chatID int64, latitude, longitude float64, opts SendOptions) (Message, error) {
	p := newParams()
	p.setInt("chat_id", chatID)
	p.setFloat("latitude", latitude)
	p.setFloat("longitude", longitude)
	if err := opts.apply(p); err != nil {
		return Message{}, errors.WithMessage(err, "sendLocation")
	}
	return call(ctx, c, "sendLocation", p, decodeMessage)
}

// SendChatAction показывает собеседнику статус бота (печатает, загружает фото и т.п.).
func (c *Client) SendChatAction(ctx context.Context, chatID int64, action ChatAction) (bool, error) {
	p := newParams()
	p.setInt("chat_id", chatID)
	p.set("action", string(action))
	return call(ctx, c, "sendChatAction", p, decodeTrue)
}

// GetUserProfilePhotos возвращает фотографии профиля пользователя.
func (c *Client) GetUserProfilePhotos(ctx context.Context, userID int64, opts GetUserProfilePhotosOptions) (UserProfilePhotos, error) {
	p := newParams()
	p.setInt("user_id", userID)
	p.setOptInt("offset", int64(opts.Offset))
	p.setOptInt("limit", int64(opts.Limit))
	return call(ctx, c, "getUserProfilePhotos", p, decodeUserProfilePhotos)
}

func (c *Client) sendFile(ctx context.Context, method string, chatID int64, field string, src FileSource, extra func(*params) error) (Message, error) {
	p := newParams()
	p.setInt("chat_id", chatID)
	if err := p.setFile(field, src); err != nil {
		return Message{}, errors.WithMessage(err, method)
	}
	if err := extra(p); err != nil {
		return Message{}, errors.WithMessage(err, method)
	}
	return call(ctx, c, method, p, decodeMessage)
}

// call единый конвейер: кодирование параметров, POST, разбор конверта и result.
func call[T any](ctx context.Context, c *Client, method string, p *params, decode func(*jx.Decoder) (T, error)) (T, error) {
	var zero T

	body, contentType, err := p.encode()
	if err != nil {
		return zero, errors.WithMessage(err, method)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout+p.longPoll)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(method), body)
	if err != nil {
		// Текст ошибки разбора URL цитирует фрагменты токена.
		return zero, errors.Errorf("%s: build request: invalid API URL or token", method)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return zero, &NetworkError{Method: method, Err: scrubURL(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &NetworkError{Method: method, Err: err}
	}

	env, err := decodeEnvelope(data)
	if err != nil {
		return zero, errors.WithMessagef(err, "%s: HTTP %d", method, resp.StatusCode)
	}
	if !env.ok {
		return zero, env.apiError()
	}

	v, err := decode(jx.DecodeBytes(env.result))
	if err != nil {
		if !errors.Is(err, ErrMalformedEntity) {
			err = fieldErr("result", "", err)
		}
		return zero, errors.WithMessage(err, method)
	}
	return v, nil
}

func (c *Client) endpoint(method string) string {
	return c.apiURL + "/bot" + c.token + "/" + method
}

// scrubURL убирает URL запроса (в нём токен) из ошибок net/http.
func scrubURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}
