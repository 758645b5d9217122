package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata" // time zones without a system database

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "carta-conjuntura"

	DefaultURL      = "https://www.ipea.gov.br/cartadeconjuntura/"
	DefaultTimeZone = "America/Sao_Paulo"
	DefaultSMTPPort = 587
	DefaultFromName = "Carta de Conjuntura"

	// DefaultConfigFile is looked up in the working directory first.
	DefaultConfigFile = AppName + ".yaml"
)

// Config holds every setting of a run.
type Config struct {
	// URL is the bulletin page.
	URL string `yaml:"url"`

	// TimeZone decides which calendar day counts as today.
	TimeZone string `yaml:"time_zone"`

	// Timeout bounds the page fetch. Zero keeps the client default (none).
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with the fetch when set.
	UserAgent string `yaml:"user_agent"`

	// Recipient overrides the destination; empty means the sender itself.
	Recipient string `yaml:"recipient"`

	SMTP SMTP `yaml:"smtp"`

	// LogLevel is one of DEBUG, INFO, WARN, ERROR.
	LogLevel string `yaml:"log_level"`
}

// SMTP holds the mail server settings.
type SMTP struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	From     string        `yaml:"from"`
	FromName string        `yaml:"from_name"`
	TLS      string        `yaml:"tls"`
	Timeout  time.Duration `yaml:"timeout"`
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		URL:      DefaultURL,
		TimeZone: DefaultTimeZone,
		LogLevel: "INFO",
		SMTP: SMTP{
			Port:     DefaultSMTPPort,
			FromName: DefaultFromName,
		},
	}
}

// XDGConfigFile returns the per-user configuration path.
// On Linux: ~/.config/carta-conjuntura/config.yaml
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// FindConfigFile resolves the file to load:
//  1. path, when given (ErrConfigNotFound if missing)
//  2. carta-conjuntura.yaml in the working directory
//  3. the XDG config file
//
// An empty result with a nil error means no file exists and defaults apply.
func FindConfigFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return path, nil
	}

	for _, candidate := range []string{DefaultConfigFile, XDGConfigFile()} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// Load builds the configuration: defaults, then the file found by
// FindConfigFile(path), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	file, err := FindConfigFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := cfg.loadFile(file); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from CARTA_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"CARTA_URL":           &c.URL,
		"CARTA_TIME_ZONE":     &c.TimeZone,
		"CARTA_RECIPIENT":     &c.Recipient,
		"CARTA_LOG_LEVEL":     &c.LogLevel,
		"CARTA_SMTP_HOST":     &c.SMTP.Host,
		"CARTA_SMTP_USERNAME": &c.SMTP.Username,
		"CARTA_SMTP_PASSWORD": &c.SMTP.Password,
		"CARTA_SMTP_FROM":     &c.SMTP.From,
		"CARTA_SMTP_TLS":      &c.SMTP.TLS,
	}
	for key, field := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*field = v
		}
	}

	if v, ok := lookup("CARTA_SMTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CARTA_SMTP_PORT: %w", err)
		}
		c.SMTP.Port = port
	}
	return nil
}

// Location loads the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// RecipientAddress returns the destination mailbox: the configured
// recipient, or the sender's own address.
func (c *Config) RecipientAddress() string {
	if c.Recipient != "" {
		return c.Recipient
	}
	return c.SMTP.From
}

// Validate checks settings needed by every run. SMTP settings are checked
// separately by ValidateSMTP since dry runs do without them.
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrNoURL
	}
	if c.Timeout < 0 || c.SMTP.Timeout < 0 {
		return ErrInvalidTimeout
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ValidateSMTP checks the settings needed to actually send mail.
func (c *Config) ValidateSMTP() error {
	if c.SMTP.Host == "" {
		return ErrNoSMTPHost
	}
	if c.SMTP.From == "" {
		return ErrNoSender
	}
	return nil
}
