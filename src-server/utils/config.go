package utils

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	port     string
	logLevel slog.Level
	location *time.Location

	pageTTL           time.Duration
	pageSweepInterval time.Duration
	maxUploadBytes    int64

	metricCollectionInterval time.Duration

	discordWebhookURL string
	telegramBotToken  string
	telegramChatID    int64
}

// NewConfig reads the environment and exits the process on invalid values.
func NewConfig() *Config {
	cfg, err := NewConfigFromEnv(os.Getenv)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// NewConfigFromEnv is NewConfig with an injectable lookup, returning the first invalid value as an error.
func NewConfigFromEnv(getenv func(string) string) (*Config, error) {
	var err error
	fail := func(e error) {
		if err == nil {
			err = e
		}
	}
	duration := func(key, fallback string) time.Duration {
		value := getenv(key)
		if value == "" {
			value = fallback
		}
		d, parseErr := time.ParseDuration(value)
		switch {
		case parseErr != nil:
			fail(fmt.Errorf("invalid %s: %w", key, parseErr))
			return 0
		case d <= 0:
			fail(fmt.Errorf("invalid %s: must be positive", key))
			return 0
		}
		slog.Debug("env", key, value, "duration", d)
		return d
	}

	cfg := &Config{
		port: func() string {
			port := getenv("PORT")
			if port == "" {
				port = "8080"
			}
			if _, convErr := strconv.ParseUint(port, 10, 16); convErr != nil {
				fail(fmt.Errorf("invalid PORT: %w", convErr))
			}
			slog.Debug("env", "PORT", port)
			return port
		}(),

		logLevel: func() slog.Level {
			var level slog.Level
			raw := getenv("LOG_LEVEL")
			if raw == "" {
				return slog.LevelDebug
			}
			if unmarshalErr := level.UnmarshalText([]byte(strings.ToUpper(raw))); unmarshalErr != nil {
				fail(fmt.Errorf("invalid LOG_LEVEL: %w", unmarshalErr))
			}
			return level
		}(),

		location: func() *time.Location {
			timezoneStr := getenv("TIMEZONE")
			switch timezoneStr {
			case "":
				slog.Warn("TIMEZONE is not set, using local timezone", "timezone", time.Local)
				return time.Local
			case "UTC":
				return time.UTC
			}
			loc, loadErr := time.LoadLocation(timezoneStr)
			if loadErr != nil {
				fail(fmt.Errorf("invalid TIMEZONE: %w", loadErr))
				return time.Local
			}
			slog.Debug("env", "TIMEZONE", timezoneStr)
			return loc
		}(),

		pageTTL:                  duration("PAGE_TTL", "30m"),
		pageSweepInterval:        duration("PAGE_SWEEP_INTERVAL", "1m"),
		metricCollectionInterval: duration("METRIC_COLLECTION_INTERVAL", "15s"),

		maxUploadBytes: func() int64 {
			raw := getenv("MAX_UPLOAD_BYTES")
			if raw == "" {
				return 10 << 20
			}
			n, convErr := strconv.ParseInt(raw, 10, 64)
			if convErr != nil || n <= 0 {
				fail(fmt.Errorf("invalid MAX_UPLOAD_BYTES: %q", raw))
				return 0
			}
			slog.Debug("env", "MAX_UPLOAD_BYTES", n)
			return n
		}(),

		discordWebhookURL: func() string {
			webhookURL := getenv("DISCORD_WEBHOOK_URL")
			if webhookURL == "" {
				slog.Info("DISCORD_WEBHOOK_URL is not set, discord notifications disabled")
			}
			return webhookURL
		}(),
		telegramBotToken: getenv("TELEGRAM_BOT_TOKEN"),
		telegramChatID: func() int64 {
			raw := getenv("TELEGRAM_CHAT_ID")
			if raw == "" {
				return 0
			}
			id, convErr := strconv.ParseInt(raw, 10, 64)
			if convErr != nil {
				fail(fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", convErr))
			}
			return id
		}(),
	}

	if (cfg.telegramBotToken == "") != (cfg.telegramChatID == 0) {
		fail(fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together"))
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get PORT env, default to 8080
func (c *Config) GetPort() string {
	return c.port
}

// Get LOG_LEVEL env, default to debug
func (c *Config) GetLogLevel() slog.Level {
	return c.logLevel
}

// Get TIMEZONE env
func (c *Config) GetLocation() *time.Location {
	return c.location
}

// Get PAGE_TTL env, default to 30m
func (c *Config) GetPageTTL() time.Duration {
	return c.pageTTL
}

// Get PAGE_SWEEP_INTERVAL env, default to 1m
func (c *Config) GetPageSweepInterval() time.Duration {
	return c.pageSweepInterval
}

// Get MAX_UPLOAD_BYTES env, default to 10 MiB
func (c *Config) GetMaxUploadBytes() int64 {
	return c.maxUploadBytes
}

// Get METRIC_COLLECTION_INTERVAL env, default to 15s
func (c *Config) GetMetricCollectionInterval() time.Duration {
	return c.metricCollectionInterval
}

// Get DISCORD_WEBHOOK_URL env
func (c *Config) GetDiscordWebhookURL() string {
	return c.discordWebhookURL
}

// Get TELEGRAM_BOT_TOKEN env
func (c *Config) GetTelegramBotToken() string {
	return c.telegramBotToken
}

// Get TELEGRAM_CHAT_ID env
func (c *Config) GetTelegramChatID() int64 {
	return c.telegramChatID
}
