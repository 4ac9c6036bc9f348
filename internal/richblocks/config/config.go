// Управление конфигурацией сервиса редактора из переменных окружения.
// Содержит структуру Config для хранения параметров и функцию ReadConfig для их загрузки из переменных окружения.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Преобразование типов данных из переменных окружения (string, int, bool, time.Duration, *url.URL) с ошибкой на некорректное значение.
//   - Маскировка секретных значений (passwords) в логах.
//   - Разбор настроек поля (пресеты шрифтов, цветов, размеров) из JSON.
//   - Значения по умолчанию для адресов, хранилища и сессий.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/rrolla/strapi-plugin-rich-text-blocks-extended/internal/richblocks/settings"
)

type Config struct {
	DatabaseDSN string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"`

	ListenAddr  string `env:"LISTEN_ADDR"`
	MetricsAddr string `env:"METRICS_ADDR"`
	BodyLimit   string `env:"BODY_LIMIT"`

	WebURL *url.URL `env:"WEB_URL"`

	SessionTTL           time.Duration `env:"SESSION_TTL"`
	SessionSweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE"`
	SessionLimit         int           `env:"SESSION_LIMIT"`

	SnippetConversion bool `env:"SNIPPET_CONVERSION"`

	FieldOptionsRaw string `env:"FIELD_OPTIONS"`
	FieldOptions    settings.PluginOptions

	LogJSON  bool   `env:"LOG_JSON"`
	LogLevel string `env:"LOG_LEVEL"`
}

// ReadConfig загружает конфигурацию из переменных окружения. При ошибке в значениях приложение завершает работу.
func ReadConfig() *Config {
	config, err := readConfig()
	if err != nil {
		slog.Error("Read config", "err", err)
		os.Exit(1)
	}
	return config
}

func readConfig() (*Config, error) {
	config := &Config{}

	if err := envConfig("env", config); err != nil {
		return nil, err
	}

	if config.FieldOptionsRaw != "" {
		if err := json.Unmarshal([]byte(config.FieldOptionsRaw), &config.FieldOptions); err != nil {
			return nil, fmt.Errorf("FIELD_OPTIONS incorrect: %w", err)
		}
		if errs := settings.ValidatePresets(config.FieldOptions); len(errs) > 0 {
			return nil, fmt.Errorf("FIELD_OPTIONS incorrect: %w", errs[0])
		}
	}

	if config.SQLitePath == "" {
		config.SQLitePath = "richblocks.db"
	}
	if config.ListenAddr == "" {
		config.ListenAddr = ":8080"
	}
	if config.MetricsAddr == "" {
		config.MetricsAddr = ":9090"
	}
	if config.BodyLimit == "" {
		config.BodyLimit = "2M"
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 30 * time.Minute
	}
	if config.SessionSweepSchedule == "" {
		config.SessionSweepSchedule = "@every 1m"
	}
	if config.SessionLimit <= 0 {
		config.SessionLimit = 1000
	}

	return config, nil
}

// Level возвращает уровень логирования из LOG_LEVEL, по умолчанию info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
