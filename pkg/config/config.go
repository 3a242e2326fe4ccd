package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/orgball2608/affiliate-post-bot/pkg/errors"
)

var ErrConfigurationMissing = errors.New("configuration missing")

const CodeConfigurationMissing = "configuration_missing"

// MaxPhotosLimit is the largest photo group a composed post may carry.
const MaxPhotosLimit = 4

type Config struct {
	App struct {
		Env        string `env:"APP_ENV" env-default:"development"`
		Port       int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl  string `env:"SENTRY_URL"`
		WorkerPool int    `env:"APP_WORKER_POOL" env-default:"16"`
		Language   string `env:"APP_LANGUAGE" env-default:"he"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		Token             string `env:"BOT_TOKEN" env-required:"true"`
		SourceChatID      int64  `env:"SOURCE_CHAT_ID" env-required:"true"`
		DestinationChatID int64  `env:"DESTINATION_CHAT_ID" env-required:"true"`
		// Falls back to SourceChatID when unset.
		OperatorChatID int64 `env:"OPERATOR_CHAT_ID"`
		// Outbound messages per second across all chats.
		SendRate int `env:"TELEGRAM_SEND_RATE" env-default:"20"`
	}
	Publish struct {
		ShareLink      string        `env:"SHARE_LINK" env-required:"true"`
		UTCOffsetHours int           `env:"PUBLISH_UTC_OFFSET_HOURS" env-default:"3"`
		WindowStart    ClockTime     `env:"PUBLISH_WINDOW_START" env-default:"09:00"`
		WindowEnd      ClockTime     `env:"PUBLISH_WINDOW_END" env-default:"23:30"`
		DelayMin       time.Duration `env:"PUBLISH_DELAY_MIN" env-default:"20m"`
		DelayMax       time.Duration `env:"PUBLISH_DELAY_MAX" env-default:"120m"`
		Keywords       []string      `env:"PUBLISH_KEYWORDS" env-separator:"," env-default:"✅,⭐,🚚,🛒,mAh,Bluetooth,דירוג,קונים,משלוח,קיבולת,עמיד,USB-C,Type-C,LiFePO4,IP-"`
		DoneWord       string        `env:"PUBLISH_DONE_WORD" env-default:"סיימתי"`
		MaxPhotos      int           `env:"PUBLISH_MAX_PHOTOS" env-default:"4"`
	}
	Commands struct {
		Requests int           `env:"COMMANDS_RATE_REQUESTS" env-default:"3"`
		Per      time.Duration `env:"COMMANDS_RATE_PER" env-default:"10s"`
		Burst    int           `env:"COMMANDS_RATE_BURST" env-default:"3"`
	}
}

// ClockTime is a local time of day parsed from "HH:MM".
type ClockTime struct {
	Hour   int
	Minute int
}

func (c *ClockTime) SetValue(s string) error {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return fmt.Errorf("clock time %q out of range", s)
	}
	c.Hour, c.Minute = h, m
	return nil
}

// Offset returns the duration since local midnight.
func (c ClockTime) Offset() time.Duration {
	return time.Duration(c.Hour)*time.Hour + time.Duration(c.Minute)*time.Minute
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Location is the fixed publishing offset; daylight saving is ignored.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.Publish.UTCOffsetHours), c.Publish.UTCOffsetHours*3600)
}

func (c *Config) OperatorChatID() int64 {
	if c.Telegram.OperatorChatID != 0 {
		return c.Telegram.OperatorChatID
	}
	return c.Telegram.SourceChatID
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Telegram.Token) == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.Telegram.SourceChatID == 0 {
		missing = append(missing, "SOURCE_CHAT_ID")
	}
	if c.Telegram.DestinationChatID == 0 {
		missing = append(missing, "DESTINATION_CHAT_ID")
	}
	if strings.TrimSpace(c.Publish.ShareLink) == "" {
		missing = append(missing, "SHARE_LINK")
	}
	if len(missing) > 0 {
		return errors.WrapWithCode(ErrConfigurationMissing, CodeConfigurationMissing,
			"required variables not set: "+strings.Join(missing, ", "))
	}

	if c.Publish.DelayMin <= 0 || c.Publish.DelayMax < c.Publish.DelayMin {
		return fmt.Errorf("invalid publish delay range [%s, %s]", c.Publish.DelayMin, c.Publish.DelayMax)
	}
	if c.Publish.WindowEnd.Offset() < c.Publish.WindowStart.Offset() {
		return fmt.Errorf("publish window end %s is before start %s", c.Publish.WindowEnd, c.Publish.WindowStart)
	}
	if c.Publish.MaxPhotos <= 0 || c.Publish.MaxPhotos > MaxPhotosLimit {
		return fmt.Errorf("PUBLISH_MAX_PHOTOS must be between 1 and %d, got %d", MaxPhotosLimit, c.Publish.MaxPhotos)
	}
	return nil
}

// Load reads the environment (after an optional .env file) into a fresh Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{}
	if err := cleanenv.ReadEnv(c); err != nil {
		help, _ := cleanenv.GetDescription(c, nil)
		return nil, errors.WrapWithCode(errors.Join(ErrConfigurationMissing, err), CodeConfigurationMissing,
			"failed to read configuration\n"+help)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

// New loads the configuration once per process.
func New() (*Config, error) {
	once.Do(func() {
		cfg, loadErr = Load()
	})
	return cfg, loadErr
}
