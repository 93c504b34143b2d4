package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/maine/telebot/internal/telegram"
)

type (
	// Root объединяет все конфигурационные блоки.
	Root struct {
		Telegram Telegram `yaml:"telegram"`
		Polling  Polling  `yaml:"polling"`
		State    State    `yaml:"state"`
		Log      Log      `yaml:"log"`
		Filter   Filter   `yaml:"filter"`
		Fixtures Fixtures `yaml:"fixtures"`
	}

	// Telegram параметры подключения к Bot API.
	Telegram struct {
		APIURL         string        `yaml:"api_url"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	}

	// Polling параметры getUpdates.
	Polling struct {
		Timeout int `yaml:"timeout"` // секунды long polling
		Limit   int `yaml:"limit"`
	}

	// State где хранить последний обработанный update_id.
	State struct {
		Path string `yaml:"path"`
	}

	Log struct {
		Level string `yaml:"level"`
		Color bool   `yaml:"color"`
	}

	// Filter какие сообщения echobot обрабатывает.
	Filter struct {
		AllowedUsers []string      `yaml:"allowed_users"`
		AllowedChats []int64       `yaml:"allowed_chats"`
		MaxAge       time.Duration `yaml:"max_age"` // 0 - без ограничения
	}

	// Fixtures файлы, которые echobot отправляет по командам send_photo и send_audio.
	Fixtures struct {
		Photo            string `yaml:"photo"`
		PhotoContentType string `yaml:"photo_content_type"`
		Audio            string `yaml:"audio"`
	}
)

// Default возвращает конфигурацию, которая используется без файла.
func Default() Root {
	return Root{
		Telegram: Telegram{
			APIURL:         telegram.DefaultAPIURL,
			RequestTimeout: telegram.DefaultRequestTimeout,
		},
		Polling: Polling{
			Timeout: 30,
			Limit:   100,
		},
		State: State{Path: "state/state.json"},
		Log: Log{
			Level: "info",
			Color: true,
		},
		Fixtures: Fixtures{
			Photo:            "fixtures/bender_pic.jpg",
			PhotoContentType: "image/jpeg",
			Audio:            "fixtures/saluton_amiko.ogg",
		},
	}
}

// LoadRoot читает основной файл конфигурации поверх значений по умолчанию.
// Пустой path означает конфигурацию по умолчанию.
func LoadRoot(path string) (Root, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Root{}, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Root{}, errors.Wrap(err, "unmarshal config")
	}
	return cfg, nil
}
