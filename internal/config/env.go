package config

import (
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// EnvConfig содержит токен и другие переменные окружения.
type EnvConfig struct {
	TelegramBotToken string
	// ConfigPath путь к YAML-конфигу из TELEBOT_CONFIG.
	ConfigPath string
}

// LoadEnvConfig читает переменные окружения (и .env, если он есть) и возвращает конфигурацию.
// Возвращает ошибку, если обязательные переменные отсутствуют или пустые.
func LoadEnvConfig(envFiles ...string) (*EnvConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}

	tgToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if tgToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	return &EnvConfig{
		TelegramBotToken: tgToken,
		ConfigPath:       os.Getenv("TELEBOT_CONFIG"),
	}, nil
}
