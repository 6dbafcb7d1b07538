package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Dynasty DynastyConfig `mapstructure:"dynasty"`
	Log     LogConfig     `mapstructure:"log"`
}

// DynastyConfig holds Dynasty Scans client configuration
type DynastyConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	Proxies   []string      `mapstructure:"proxies"`

	// Batch retry policy
	MaxAttempts  int           `mapstructure:"max_attempts"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	MaxWorkers   int           `mapstructure:"max_workers"`

	// Outbound rate limit: MaxRequestsPerSecond requests per RateLimitPer window
	MaxRequestsPerSecond int           `mapstructure:"max_requests_per_second"`
	RateLimitPer         time.Duration `mapstructure:"rate_limit_per"`

	// Search classes sent as classes[]
	Classes []string `mapstructure:"classes"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the current directory and falls
// back to defaults when it is absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Dynasty.BaseURL == "" {
		return fmt.Errorf("dynasty.base_url must not be empty")
	}
	if c.Dynasty.MaxAttempts < 1 {
		return fmt.Errorf("dynasty.max_attempts must be at least 1, got %d", c.Dynasty.MaxAttempts)
	}
	if c.Dynasty.MaxRequestsPerSecond < 1 {
		return fmt.Errorf("dynasty.max_requests_per_second must be at least 1, got %d", c.Dynasty.MaxRequestsPerSecond)
	}
	if c.Dynasty.MaxWorkers < 1 {
		return fmt.Errorf("dynasty.max_workers must be at least 1, got %d", c.Dynasty.MaxWorkers)
	}
	c.Dynasty.BaseURL = strings.TrimRight(c.Dynasty.BaseURL, "/")
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dynasty.base_url", "https://dynasty-scans.com")
	v.SetDefault("dynasty.timeout", 30*time.Second)
	v.SetDefault("dynasty.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("dynasty.proxies", []string{})
	v.SetDefault("dynasty.max_attempts", 4)
	v.SetDefault("dynasty.retry_backoff", time.Second)
	v.SetDefault("dynasty.max_workers", 10)
	v.SetDefault("dynasty.max_requests_per_second", 5)
	v.SetDefault("dynasty.rate_limit_per", time.Second)
	v.SetDefault("dynasty.classes", []string{"Series"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
