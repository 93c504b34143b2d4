package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/maine/telebot/internal/bot"
	"github.com/maine/telebot/internal/config"
	"github.com/maine/telebot/internal/filter"
	"github.com/maine/telebot/internal/logger"
	"github.com/maine/telebot/internal/state"
	"github.com/maine/telebot/internal/telegram"
)

func main() {
	// Загружаем переменные окружения (токен и путь к конфигу)
	envCfg, err := config.LoadEnvConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load env config")
	}

	rootCfg, err := config.LoadRoot(envCfg.ConfigPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logg, err := logger.Console(rootCfg.Log.Level, rootCfg.Log.Color)
	if err != nil {
		log.Fatal().Err(err).Str("level", rootCfg.Log.Level).Msg("init logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := telegram.NewClient(envCfg.TelegramBotToken,
		telegram.WithAPIURL(rootCfg.Telegram.APIURL),
		telegram.WithRequestTimeout(rootCfg.Telegram.RequestTimeout),
	)

	me, err := client.GetMe(ctx)
	if err != nil {
		logg.Fatal().Err(err).Msg("validate bot token")
	}
	username := ""
	if me.Username != nil {
		username = *me.Username
	}
	logg.Info().Str("bot", username).Int64("id", me.ID).Msg("bot started, listening for messages")

	b := bot.New(client,
		bot.WithStore(state.NewFileStore(rootCfg.State.Path)),
		bot.WithPolling(rootCfg.Polling.Timeout, rootCfg.Polling.Limit),
		bot.WithLogger(logg),
		bot.WithMessageFilter(filter.New(rootCfg.Filter).Allow),
	)
	h := &handler{
		replies:     bot.NewSender(client, bot.WithSenderLogger(logg)),
		subscribers: b,
		fixtures:    rootCfg.Fixtures,
		log:         logg,
	}

	if err := b.Run(ctx, h.handle); err != nil {
		logg.Fatal().Err(err).Msg("bot stopped")
	}
	logg.Info().Msg("bot stopped")
}
