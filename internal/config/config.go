package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"korean-learning-bot/internal/domain/deck"
	"korean-learning-bot/internal/domain/learning"
)

// Config holds everything the bot reads from its environment
type Config struct {
	TelegramToken string `validate:"required"`
	OwnerChatID   int64  `validate:"required"`

	DBDriver  string `validate:"required,oneof=sqlite3 postgres"`
	DBDSN     string `validate:"required"`
	DecksFile string `validate:"required"`

	AppEnv   string
	LogLevel string
	Timezone string

	Reminder Reminder

	Decks []deck.Deck `validate:"required,min=1,dive"`
}

// Reminder configures the periodic study reminder
type Reminder struct {
	Interval        time.Duration `validate:"gt=0"`
	QuietHoursStart int           `validate:"gte=0,lte=23"`
	QuietHoursEnd   int           `validate:"gte=0,lte=23"`
	MaxPerDay       int           `validate:"gte=0"`
}

// Load reads .env (when present), the environment and the decks file
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	cfg.Decks, err = ReadDecks(cfg.DecksFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables, without decks
func FromEnv() (*Config, error) {
	ownerChatID, err := envInt64("OWNER_CHAT_ID", 0)
	if err != nil {
		return nil, err
	}
	interval, err := envInt64("REMINDER_INTERVAL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	quietStart, err := envInt64("QUIET_HOURS_START", 22)
	if err != nil {
		return nil, err
	}
	quietEnd, err := envInt64("QUIET_HOURS_END", 8)
	if err != nil {
		return nil, err
	}
	maxPerDay, err := envInt64("MAX_REMINDERS_PER_DAY", 3)
	if err != nil {
		return nil, err
	}

	return &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OwnerChatID:   ownerChatID,
		DBDriver:      envString("DB_DRIVER", "sqlite3"),
		DBDSN:         envString("DB_DSN", "korean_learning.db"),
		DecksFile:     envString("DECKS_FILE", "decks.yml"),
		AppEnv:        envString("APP_ENV", "prod"),
		LogLevel:      envString("LOG_LEVEL", "info"),
		Timezone:      envString("TIMEZONE", "Local"),
		Reminder: Reminder{
			Interval:        time.Duration(interval) * time.Minute,
			QuietHoursStart: int(quietStart),
			QuietHoursEnd:   int(quietEnd),
			MaxPerDay:       int(maxPerDay),
		},
	}, nil
}

// Location resolves the configured timezone used for day boundaries
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate checks the struct tags, every deck's scheduling settings and that deck keys are unique
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return ValidateDecks(c.Decks)
}

// ValidateDecks checks what struct tags cannot express
func ValidateDecks(decks []deck.Deck) error {
	seen := make(map[string]bool, len(decks))
	for _, d := range decks {
		if seen[d.Key] {
			return fmt.Errorf("duplicate deck key %q", d.Key)
		}
		seen[d.Key] = true

		if err := d.Settings.Validate(); err != nil {
			return fmt.Errorf("deck %s: %w", d.Key, err)
		}
	}
	return nil
}

// ReadDecks decodes the decks file. Settings missing from a deck keep their defaults.
func ReadDecks(path string) ([]deck.Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open decks file: %w", err)
	}
	defer file.Close()

	var raw struct {
		Decks []deckEntry `yaml:"decks"`
	}
	if err := yaml.NewDecoder(file).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode decks file: %w", err)
	}

	decks := make([]deck.Deck, 0, len(raw.Decks))
	for _, e := range raw.Decks {
		decks = append(decks, e.Deck)
	}
	return decks, nil
}

type deckEntry struct {
	deck.Deck
}

func (e *deckEntry) UnmarshalYAML(value *yaml.Node) error {
	type plain deck.Deck
	d := plain{
		Direction: deck.DirectionForward,
		Settings:  learning.DefaultSettings(),
	}
	if err := value.Decode(&d); err != nil {
		return err
	}
	e.Deck = deck.Deck(d)
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
