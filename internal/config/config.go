package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ESPNAPI     ESPNAPI
	Webhook     Webhook
	TelegramBot TelegramBot
	Awards      Awards

	LeagueTitle string        `envconfig:"LEAGUE_TITLE" default:"Justice League Fantasy Football"`
	Timezone    string        `envconfig:"TIMEZONE" default:"America/Denver"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	HealthAddr  string        `envconfig:"HEALTH_ADDR" default:":8080"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"20s"`
}

type ESPNAPI struct {
	Year     string `envconfig:"SEASON_ID" required:"true"`
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	SWID     string `envconfig:"SWID"`
	ESPNS2   string `envconfig:"ESPN_S2"`
}

type Webhook struct {
	URL      string `envconfig:"WEBHOOK_URL"`
	Username string `envconfig:"WEBHOOK_USERNAME" default:"Justice League Bot"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// Awards holds the feature flags passed to the award deriver.
type Awards struct {
	ComputeOptimal   bool `envconfig:"COMPUTE_OPTIMAL" default:"true"`
	DebugProjections bool `envconfig:"DEBUG_PROJECTIONS" default:"false"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Location(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Location resolves the display timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) HasTelegram() bool {
	return c.TelegramBot.Token != "" && c.TelegramBot.ChatID != 0
}

func (c *Config) HasWebhook() bool {
	return c.Webhook.URL != ""
}
