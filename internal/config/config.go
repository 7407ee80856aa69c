package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL            string        `mapstructure:"api_base_url"`
	APIUserAgent          string        `mapstructure:"api_user_agent"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	NotificationSeconds int64         `mapstructure:"notification_seconds"`
	NotificationTTL     time.Duration `mapstructure:"-"`
	RenderFormat        string        `mapstructure:"render_format"`
}

// Load reads configuration from environment variables and the optional configs/.env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "employee-directory")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_base_url", "https://mocki.io")
	v.SetDefault("api_user_agent", "employee-directory/1.0")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("notification_seconds", 2)
	v.SetDefault("render_format", "text")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	c.APIBaseURL = strings.TrimSpace(c.APIBaseURL)
	if c.APIBaseURL == "" {
		return fmt.Errorf("invalid api_base_url (must not be empty)")
	}
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("invalid api_base_url %q (must be http or https)", c.APIBaseURL)
	}

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second

	if c.NotificationSeconds <= 0 {
		return fmt.Errorf("invalid notification_seconds (must be positive seconds)")
	}
	c.NotificationTTL = time.Duration(c.NotificationSeconds) * time.Second

	c.RenderFormat = strings.ToLower(strings.TrimSpace(c.RenderFormat))
	return nil
}
