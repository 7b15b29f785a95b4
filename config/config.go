package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// HTTP server settings
	Server struct {
		Port        string   `env:"PORT" envDefault:"5250"`
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	}

	// Storage settings
	Storage struct {
		// SQLite file holding the key-value entries; ":memory:" keeps everything in process
		DBPath string `env:"DB_PATH" envDefault:"database/vicmar.db"`

		// Write the built-in property catalog when the store is empty
		SeedCatalog bool `env:"SEED_CATALOG" envDefault:"true"`
	}

	// Session settings
	Auth struct {
		// Emails that are granted the admin role on sign-in
		AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

		// Mark the session cookie Secure; enable behind HTTPS
		SecureCookie bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	}

	Logging struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	// Listing filter settings
	Listing struct {
		// Number of memoized filter results kept
		CacheSize int `env:"LISTING_CACHE_SIZE" envDefault:"128"`
	}

	// Vicinity map settings
	Map struct {
		// Lot data document; the embedded catalog is used when empty
		LotDataPath string `env:"LOT_DATA_PATH"`

		// Optional YAML palette overrides
		PalettePath string `env:"PALETTE_PATH"`

		ClampPan  bool    `env:"MAP_CLAMP_PAN" envDefault:"true"`
		PanMargin float64 `env:"MAP_PAN_MARGIN" envDefault:"40"`
	}

	// Inquiry notifications
	Notifications struct {
		QueueSize        int    `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`
		TelegramEnabled  bool   `env:"TELEGRAM_ENABLED" envDefault:"false"`
		TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
		TelegramChatID   string `env:"TELEGRAM_CHAT_ID"`
	}
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Listing.CacheSize <= 0 {
		return fmt.Errorf("LISTING_CACHE_SIZE must be positive, got %d", c.Listing.CacheSize)
	}
	if c.Notifications.QueueSize <= 0 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be positive, got %d", c.Notifications.QueueSize)
	}
	if c.Map.PanMargin < 0 {
		return fmt.Errorf("MAP_PAN_MARGIN must not be negative, got %v", c.Map.PanMargin)
	}
	if c.Notifications.TelegramEnabled && (c.Notifications.TelegramBotToken == "" || c.Notifications.TelegramChatID == "") {
		return errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required when TELEGRAM_ENABLED is set")
	}
	return nil
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(c.Logging.Level))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
