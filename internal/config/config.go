package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Defaults for optional settings
const (
	DefaultRedisAddr         = "localhost:6379"
	DefaultHTTPAddr          = ":8080"
	DefaultSaveDebounce      = time.Second
	DefaultCurrencySymbol    = "฿"
	DefaultPaymentLinkBase   = "https://promptpay.io"
	DefaultRecentSessionDays = 30
)

// Config is the process configuration read from the environment
type Config struct {
	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// HTTPAddr is where the JSON API listens; empty disables it
	HTTPAddr string

	// Discord bot, enabled when DiscordToken is set
	DiscordToken  string
	ApplicationID string
	GuildID       string

	// DiscordWebhookURL receives one embed per ledger entry when set
	DiscordWebhookURL string

	// Ledger behaviour
	SaveDebounce      time.Duration
	DefaultChipValue  decimal.Decimal
	RecentSessionDays int

	// Presentation
	CurrencySymbol  string
	PaymentLinkBase string

	LogLevel slog.Level
}

// Load reads the given .env files, then the environment. Missing files are
// skipped; variables already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		RedisAddr:         getEnv("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		HTTPAddr:          getEnv("HTTP_ADDR", DefaultHTTPAddr),
		DiscordToken:      getEnv("DISCORD_TOKEN", ""),
		ApplicationID:     getEnv("APPLICATION_ID", ""),
		GuildID:           getEnv("GUILD_ID", ""),
		DiscordWebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		CurrencySymbol:    getEnv("CURRENCY_SYMBOL", DefaultCurrencySymbol),
		PaymentLinkBase:   strings.TrimRight(getEnv("PAYMENT_LINK_BASE", DefaultPaymentLinkBase), "/"),
	}

	var err error
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RecentSessionDays, err = getEnvInt("RECENT_SESSION_DAYS", DefaultRecentSessionDays); err != nil {
		return nil, err
	}
	if cfg.RecentSessionDays <= 0 {
		return nil, fmt.Errorf("RECENT_SESSION_DAYS must be positive, got %d", cfg.RecentSessionDays)
	}

	debounce := getEnv("SAVE_DEBOUNCE", DefaultSaveDebounce.String())
	if cfg.SaveDebounce, err = time.ParseDuration(debounce); err != nil {
		return nil, fmt.Errorf("invalid SAVE_DEBOUNCE %q: %w", debounce, err)
	}

	chipValue := getEnv("DEFAULT_CHIP_VALUE", "0.5")
	if cfg.DefaultChipValue, err = decimal.NewFromString(chipValue); err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CHIP_VALUE %q: %w", chipValue, err)
	}
	if !cfg.DefaultChipValue.IsPositive() {
		return nil, fmt.Errorf("DEFAULT_CHIP_VALUE must be positive, got %s", chipValue)
	}

	level := getEnv("LOG_LEVEL", "info")
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return n, nil
}
