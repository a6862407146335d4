package utils_test

import (
	"log/slog"
	"testing"
	"time"

	"evboard/src-server/utils"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := utils.NewConfigFromEnv(envOf(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GetPort() != "8080" {
		t.Error("default port", cfg.GetPort())
	}
	if cfg.GetLogLevel() != slog.LevelDebug {
		t.Error("default log level", cfg.GetLogLevel())
	}
	if cfg.GetPageTTL() != 30*time.Minute {
		t.Error("default page ttl", cfg.GetPageTTL())
	}
	if cfg.GetPageSweepInterval() != time.Minute {
		t.Error("default sweep interval", cfg.GetPageSweepInterval())
	}
	if cfg.GetMaxUploadBytes() != 10<<20 {
		t.Error("default upload limit", cfg.GetMaxUploadBytes())
	}
	if cfg.GetDiscordWebhookURL() != "" || cfg.GetTelegramBotToken() != "" {
		t.Error("notifiers should be off by default")
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg, err := utils.NewConfigFromEnv(envOf(map[string]string{
		"PORT":               "9090",
		"LOG_LEVEL":          "warn",
		"TIMEZONE":           "UTC",
		"PAGE_TTL":           "5m",
		"MAX_UPLOAD_BYTES":   "1024",
		"TELEGRAM_BOT_TOKEN": "token",
		"TELEGRAM_CHAT_ID":   "-100123",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GetPort() != "9090" || cfg.GetLogLevel() != slog.LevelWarn {
		t.Error("port/log level not applied", cfg.GetPort(), cfg.GetLogLevel())
	}
	if cfg.GetLocation() != time.UTC {
		t.Error("timezone not applied", cfg.GetLocation())
	}
	if cfg.GetPageTTL() != 5*time.Minute || cfg.GetMaxUploadBytes() != 1024 {
		t.Error("limits not applied", cfg.GetPageTTL(), cfg.GetMaxUploadBytes())
	}
	if cfg.GetTelegramChatID() != -100123 {
		t.Error("telegram chat id", cfg.GetTelegramChatID())
	}
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"bad duration":      {"PAGE_TTL": "soon"},
		"negative duration": {"PAGE_SWEEP_INTERVAL": "-1s"},
		"bad port":          {"PORT": "http"},
		"bad upload limit":  {"MAX_UPLOAD_BYTES": "0"},
		"bad log level":     {"LOG_LEVEL": "loud"},
		"bad timezone":      {"TIMEZONE": "Mars/Olympus"},
		"telegram half set": {"TELEGRAM_BOT_TOKEN": "token"},
	} {
		if _, err := utils.NewConfigFromEnv(envOf(env)); err == nil {
			t.Error(name, "should be rejected")
		}
	}
}

func TestCleanupString(t *testing.T) {
	if got := utils.CleanupString("  Music   Fest \t 2024 "); got != "Music Fest 2024" {
		t.Errorf("got %q", got)
	}
	// multi-line text keeps its line breaks
	if got := utils.CleanupString(" line one\nline two "); got != "line one\nline two" {
		t.Errorf("got %q", got)
	}
	// decomposed e + combining acute becomes a single code point
	if got := utils.CleanupString("Cafe\u0301"); got != "Caf\u00e9" {
		t.Errorf("got %q", got)
	}
	if got := utils.TitleCase("upcoming events"); got != "Upcoming Events" {
		t.Errorf("got %q", got)
	}
}
