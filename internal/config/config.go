// Package config loads the herald configuration file.
//
// Configuration is a plain YAML file read through viper into an explicit
// struct. It is loaded once per invocation and treated as immutable for the
// rest of the run.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Selection modes. Exact matches events starting on the target date;
// window matches start dates strictly inside (target+offset, target+offset+2).
const (
	ModeExact  = "exact"
	ModeWindow = "window"
)

// Selection controls which events count as "upcoming".
type Selection struct {
	Mode       string `mapstructure:"mode"`
	OffsetDays int    `mapstructure:"offset_days"`
}

// Config is the full application configuration.
type Config struct {
	CalendarSources     []string      `mapstructure:"calendar_sources"`
	WebhookURL          string        `mapstructure:"webhook_url"`
	Username            string        `mapstructure:"username"`
	IconURL             string        `mapstructure:"icon_url"`
	Text                string        `mapstructure:"text"`
	DataTemplate        string        `mapstructure:"data_template"`
	DefaultImage        string        `mapstructure:"default_image"`
	SignatureForRemoval string        `mapstructure:"signature_for_removal"`
	Selection           Selection     `mapstructure:"selection"`
	HTTPTimeout         time.Duration `mapstructure:"http_timeout"`
	LogLevel            string        `mapstructure:"log_level"`
}

// TemplateMode reports whether per-event template delivery is configured.
// When false, a single structured message carrying all events is posted.
func (c *Config) TemplateMode() bool {
	return c.DataTemplate != ""
}

// Load reads the configuration from path, or from herald.yaml next to the
// executable or in the working directory when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("username", "herald")
	v.SetDefault("text", "Upcoming event%PLURAL% on %DATE%:")
	v.SetDefault("selection.mode", ModeExact)
	v.SetDefault("selection.offset_days", 0)
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("herald")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if exe, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(exe))
		}
	}

	v.SetEnvPrefix("HERALD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields eagerly so a misconfigured deployment
// fails at startup rather than mid-pipeline.
func (c *Config) Validate() error {
	if c.WebhookURL == "" {
		return fmt.Errorf("webhook_url is required")
	}
	if u, err := url.Parse(c.WebhookURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("webhook_url %q is not a valid http(s) URL", c.WebhookURL)
	}
	// Attachments must never ship without an image, so the fallback is as
	// required as the webhook itself.
	if c.DefaultImage == "" {
		return fmt.Errorf("default_image is required")
	}
	switch c.Selection.Mode {
	case ModeExact, ModeWindow:
	default:
		return fmt.Errorf("selection.mode %q is not one of %q, %q", c.Selection.Mode, ModeExact, ModeWindow)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}
