package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Disambiguation modes for medal lines.
const (
	Parenthetical = "parenthetical" // "Winner (Country)" unless the winner already names it
	TeamPrefix    = "team_prefix"   // "Team Winner" when the winner names the country
)

// Link modes for the reference URL.
const (
	LinkNone   = "none"
	LinkEmbed  = "embed"
	LinkInline = "inline"
)

// Dataset formats.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatSQLite = "sqlite"
)

const DefaultMaxLength = 300

type DatasetConfig struct {
	Path    string            `yaml:"path" env:"MEDALBOT_DATASET"`
	Format  string            `yaml:"format"`  // csv | xlsx | sqlite; inferred from the extension when empty
	Sheet   string            `yaml:"sheet"`   // xlsx only, default: active sheet
	Table   string            `yaml:"table"`   // sqlite only, default: medals
	Columns map[string]string `yaml:"columns"` // field -> header override, e.g. medal: Medal_type
}

type RenderConfig struct {
	Disambiguation string   `yaml:"disambiguation" env:"MEDALBOT_DISAMBIGUATION"` // parenthetical | team_prefix
	OlympicsLabel  bool     `yaml:"olympics_label"`                                // "Summer Olympics" instead of "summer"
	LinkMode       string   `yaml:"link_mode" env:"MEDALBOT_LINK_MODE"`           // none | embed | inline
	MaxLength      *int     `yaml:"max_length"`                                    // graphemes; unset = 300, 0 = no limit
	Unbounded      bool     `yaml:"unbounded"`                                     // drop the length constraint entirely
	Langs          []string `yaml:"langs"`
}

type LinkCardConfig struct {
	Fetch     bool          `yaml:"fetch"` // read og:title/og:description from the page
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

type BlueskyConfig struct {
	Service        string        `yaml:"service" env:"BSKY_SERVICE"`
	Identifier     string        `yaml:"identifier" env:"BSKY_HANDLE"`
	Password       string        `yaml:"password" env:"BSKY_PASSWORD"` // app password
	SessionPath    string        `yaml:"session_path" env:"MEDALBOT_SESSION_PATH"`
	Timeout        time.Duration `yaml:"timeout"`
	UserAgent      string        `yaml:"user_agent"`
	MaxRetries     int           `yaml:"max_retries"`
	Backoff        time.Duration `yaml:"backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	HandleCacheTTL time.Duration `yaml:"handle_cache_ttl"`
}

type LogConfig struct {
	Level      string `yaml:"level" env:"MEDALBOT_LOG_LEVEL"`   // debug | info | warn | error
	Format     string `yaml:"format" env:"MEDALBOT_LOG_FORMAT"` // console | json
	File       string `yaml:"file" env:"MEDALBOT_LOG_FILE"`     // rotate into this file instead of stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type MetricsConfig struct {
	Enable        bool   `yaml:"enable"`
	PushURL       string `yaml:"push_url" env:"MEDALBOT_PUSHGATEWAY"` // Pushgateway base URL
	Job           string `yaml:"job"`
	ListenAddress string `yaml:"listen_address"` // serve /metrics in loop mode
}

type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval" env:"MEDALBOT_INTERVAL"` // 0 = single run
}

type Config struct {
	Dataset   DatasetConfig     `yaml:"dataset"`
	Render    RenderConfig      `yaml:"render"`
	Countries map[string]string `yaml:"countries"` // code -> display name overrides
	LinkCard  LinkCardConfig    `yaml:"link_card"`
	Bluesky   BlueskyConfig     `yaml:"bluesky"`
	DryRun    bool              `yaml:"dry_run" env:"DRYRUN"`
	Log       LogConfig         `yaml:"log"`
	Metrics   MetricsConfig     `yaml:"metrics"`
	Schedule  ScheduleConfig    `yaml:"schedule"`
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and fills defaults. It does not validate.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if err := env.Parse(&c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Dataset.Table == "" {
		c.Dataset.Table = "medals"
	}
	c.Dataset.Format = strings.ToLower(strings.TrimSpace(c.Dataset.Format))

	if c.Render.Disambiguation == "" {
		c.Render.Disambiguation = Parenthetical
	}
	if c.Render.LinkMode == "" {
		c.Render.LinkMode = LinkEmbed
	}
	if c.Render.MaxLength == nil {
		n := DefaultMaxLength
		c.Render.MaxLength = &n
	}
	if len(c.Render.Langs) == 0 {
		c.Render.Langs = []string{"en"}
	}

	if c.LinkCard.Timeout == 0 {
		c.LinkCard.Timeout = 10 * time.Second
	}

	if c.Bluesky.Service == "" {
		c.Bluesky.Service = "https://bsky.social"
	}
	if c.Bluesky.Timeout == 0 {
		c.Bluesky.Timeout = 15 * time.Second
	}
	if c.Bluesky.MaxRetries == 0 {
		c.Bluesky.MaxRetries = 3
	}
	if c.Bluesky.Backoff == 0 {
		c.Bluesky.Backoff = 500 * time.Millisecond
	}
	if c.Bluesky.MaxBackoff == 0 {
		c.Bluesky.MaxBackoff = 5 * time.Second
	}
	if c.Bluesky.HandleCacheTTL == 0 {
		c.Bluesky.HandleCacheTTL = time.Hour
	}
	if c.Bluesky.UserAgent == "" {
		c.Bluesky.UserAgent = "medal-bot"
	}
	if c.LinkCard.UserAgent == "" {
		c.LinkCard.UserAgent = c.Bluesky.UserAgent
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 50
	}

	if c.Metrics.Job == "" {
		c.Metrics.Job = "medal-bot"
	}
}

// EffectiveMaxLength is the length limit handed to the composer; 0 means unconstrained.
func (r RenderConfig) EffectiveMaxLength() int {
	if r.Unbounded {
		return 0
	}
	if r.MaxLength == nil {
		return DefaultMaxLength
	}
	return *r.MaxLength
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(c.Dataset.Path) == "" {
		errs = multierror.Append(errs, errors.New("dataset.path is required"))
	}
	switch c.Dataset.Format {
	case "", FormatCSV, FormatXLSX, FormatSQLite:
	default:
		errs = multierror.Append(errs, fmt.Errorf("dataset.format %q: want csv, xlsx or sqlite", c.Dataset.Format))
	}
	switch c.Render.Disambiguation {
	case Parenthetical, TeamPrefix:
	default:
		errs = multierror.Append(errs, fmt.Errorf("render.disambiguation %q: want %s or %s", c.Render.Disambiguation, Parenthetical, TeamPrefix))
	}
	switch c.Render.LinkMode {
	case LinkNone, LinkEmbed, LinkInline:
	default:
		errs = multierror.Append(errs, fmt.Errorf("render.link_mode %q: want none, embed or inline", c.Render.LinkMode))
	}
	if n := c.Render.EffectiveMaxLength(); n < 0 {
		errs = multierror.Append(errs, fmt.Errorf("render.max_length must not be negative (got %d)", n))
	}
	if _, err := url.ParseRequestURI(c.Bluesky.Service); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("bluesky.service: %w", err))
	}
	if !c.DryRun {
		if c.Bluesky.Identifier == "" {
			errs = multierror.Append(errs, errors.New("bluesky.identifier (BSKY_HANDLE) is required unless dry_run is set"))
		}
		if c.Bluesky.Password == "" {
			errs = multierror.Append(errs, errors.New("bluesky.password (BSKY_PASSWORD) is required unless dry_run is set"))
		}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = multierror.Append(errs, fmt.Errorf("log.format %q: want console or json", c.Log.Format))
	}
	if c.Metrics.PushURL != "" {
		if _, err := url.ParseRequestURI(c.Metrics.PushURL); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("metrics.push_url: %w", err))
		}
	}
	if c.Schedule.Interval < 0 {
		errs = multierror.Append(errs, errors.New("schedule.interval must not be negative"))
	}
	return errs.ErrorOrNil()
}
