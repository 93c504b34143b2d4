package main

import (
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maine/telebot/internal/config"
	"github.com/maine/telebot/internal/logger"
	"github.com/maine/telebot/internal/telegram"
)

// app общее состояние команд: флаги, конфигурация и клиент Bot API.
type app struct {
	configPath string
	envFile    string
	jsonOut    bool
	noColor    bool

	cfg    config.Root
	client telegram.TelegramClient
	log    zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "telebot",
		Short: "Telebot - call the Telegram Bot API from the command line",
		Long: `Telebot issues single Bot API calls and prints the decoded result.

The bot token is read from TELEGRAM_BOT_TOKEN (a .env file in the current
directory is loaded if present). Settings such as the API address and request
timeout come from the YAML file given by --config or TELEBOT_CONFIG.`,
		Example: `  # Check the token
  telebot me

  # Read pending updates without long polling
  telebot updates --timeout 0

  # Upload a photo with a caption
  telebot send-photo 12345 fixtures/bender_pic.jpg --caption "Bite my shiny metal"

  # Resend an already uploaded file
  telebot send-audio 12345 AwADBAADbXXXXXXXXXXXGBdhD2l6_XX --file-id`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML config (default $TELEBOT_CONFIG)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load environment from this file instead of .env")
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print results as JSON")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newMeCmd(a),
		newUpdatesCmd(a),
		newSendMessageCmd(a),
		newForwardCmd(a),
		newSendFileCmd(a, "send-photo", "photo"),
		newSendFileCmd(a, "send-audio", "audio"),
		newSendFileCmd(a, "send-document", "document"),
		newSendFileCmd(a, "send-sticker", "sticker"),
		newSendFileCmd(a, "send-video", "video"),
		newSendLocationCmd(a),
		newChatActionCmd(a),
		newProfilePhotosCmd(a),
		newBroadcastCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if a.noColor {
		color.NoColor = true
	}

	var envFiles []string
	if a.envFile != "" {
		envFiles = append(envFiles, a.envFile)
	}
	envCfg, err := config.LoadEnvConfig(envFiles...)
	if err != nil {
		return err
	}

	path := a.configPath
	if path == "" {
		path = envCfg.ConfigPath
	}
	a.cfg, err = config.LoadRoot(path)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	a.log, err = logger.New(cmd.ErrOrStderr(), a.cfg.Log.Level, a.cfg.Log.Color && !color.NoColor)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", a.cfg.Log.Level)
	}

	a.client = telegram.NewClient(envCfg.TelegramBotToken,
		telegram.WithAPIURL(a.cfg.Telegram.APIURL),
		telegram.WithRequestTimeout(a.cfg.Telegram.RequestTimeout),
	)
	return nil
}
