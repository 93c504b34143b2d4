package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/maine/telebot/internal/config"
	"github.com/maine/telebot/internal/telegram"
)

// replier отправляет текстовые ответы (bot.Sender с повторами).
type replier interface {
	Reply(ctx context.Context, chatID int64, text string, opts telegram.SendMessageOptions) (telegram.Message, error)
}

type subscriber interface {
	Subscribe(msg telegram.Message)
	Unsubscribe(chatID int64)
}

// handler разбирает команды из текста сообщения и отвечает на них.
type handler struct {
	replies     replier
	subscribers subscriber
	fixtures    config.Fixtures
	log         zerolog.Logger
}

func (h *handler) handle(ctx context.Context, client telegram.TelegramClient, msg telegram.Message) error {
	text := ""
	if msg.Text != nil {
		text = *msg.Text
	}
	sender := "unknown"
	if msg.From != nil {
		sender = msg.From.FirstName
	}
	h.log.Info().Str("from", sender).Int64("chat_id", msg.Chat.ID).Msg(text)

	chatID := msg.Chat.ID
	switch {
	case strings.Contains(text, "get_me"):
		me, err := client.GetMe(ctx)
		if err != nil {
			return errors.Wrap(err, "get_me")
		}
		return h.reply(ctx, chatID, describeUser(me))

	case strings.Contains(text, "send_message"):
		return h.reply(ctx, chatID, "You said: "+text)

	case strings.Contains(text, "send_photo"):
		photo := telegram.NewInputFile(h.fixtures.Photo, h.fixtures.PhotoContentType)
		if _, err := client.SendPhoto(ctx, chatID, photo, telegram.SendPhotoOptions{}); err != nil {
			return errors.Wrap(err, "send_photo")
		}
		return nil

	case strings.Contains(text, "forward_message"):
		if _, err := client.ForwardMessage(ctx, chatID, chatID, msg.MessageID); err != nil {
			return errors.Wrap(err, "forward_message")
		}
		return nil

	case strings.Contains(text, "send_audio"):
		if err := h.reply(ctx, chatID, "Let me say 'Hi' in Esperanto."); err != nil {
			return err
		}
		if _, err := client.SendChatAction(ctx, chatID, telegram.ChatActionUploadAudio); err != nil {
			h.log.Warn().Err(err).Int64("chat_id", chatID).Msg("chat action failed")
		}
		audio := telegram.NewInputFile(h.fixtures.Audio)
		if _, err := client.SendAudio(ctx, chatID, audio, telegram.SendOptions{}); err != nil {
			return errors.Wrap(err, "send_audio")
		}
		return nil

	case strings.Contains(text, "unsubscribe"):
		h.subscribers.Unsubscribe(chatID)
		return h.reply(ctx, chatID, "Unsubscribed.")

	case strings.Contains(text, "subscribe"), strings.HasPrefix(text, "/start"):
		h.subscribers.Subscribe(msg)
		return h.reply(ctx, chatID, "Subscribed. Send unsubscribe to stop.")

	default:
		return h.reply(ctx, chatID, "Unknown command")
	}
}

func (h *handler) reply(ctx context.Context, chatID int64, text string) error {
	_, err := h.replies.Reply(ctx, chatID, text, telegram.SendMessageOptions{})
	return err
}

func describeUser(u telegram.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "id: %d\nfirst_name: %s", u.ID, u.FirstName)
	if u.LastName != nil {
		fmt.Fprintf(&b, "\nlast_name: %s", *u.LastName)
	}
	if u.Username != nil {
		fmt.Fprintf(&b, "\nusername: @%s", *u.Username)
	}
	return b.String()
}
