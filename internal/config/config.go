package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	SourceBackend = "backend"
	SourceGitHub  = "github"

	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

type ColorConfig struct {
	Author    int `mapstructure:"author"`
	Branch    int `mapstructure:"branch"`
	Timestamp int `mapstructure:"timestamp"`
	Live      int `mapstructure:"live"`
	Offline   int `mapstructure:"offline"`
	Checking  int `mapstructure:"checking"`
}

type Config struct {
	APIURL          string        `mapstructure:"api_url"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	Source          string        `mapstructure:"source"`
	Repo            string        `mapstructure:"repo"`
	Output          string        `mapstructure:"output"`
	LogFile         string        `mapstructure:"log_file"`
	NoColor         bool          `mapstructure:"no_color"`
	Colors          ColorConfig   `mapstructure:"colors"`
}

// flagKeys maps command-line flag names onto config keys
var flagKeys = map[string]string{
	"api-url":         "api_url",
	"interval":        "refresh_interval",
	"request-timeout": "request_timeout",
	"source":          "source",
	"repo":            "repo",
	"output":          "output",
	"log-file":        "log_file",
	"no-color":        "no_color",
}

// Dir returns the directory holding config.yaml
func Dir() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "gh-hookwatch")
}

// Load reads configuration with precedence flags > environment > config file > defaults.
// flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("refresh_interval", "15s")
	v.SetDefault("request_timeout", "10s")
	v.SetDefault("source", SourceBackend)
	v.SetDefault("repo", "")
	v.SetDefault("output", OutputText)
	v.SetDefault("log_file", "")
	v.SetDefault("no_color", false)
	v.SetDefault("colors.author", 33)     // Blue
	v.SetDefault("colors.branch", 32)     // Teal
	v.SetDefault("colors.timestamp", 243) // Gray
	v.SetDefault("colors.live", 10)       // Green
	v.SetDefault("colors.offline", 9)     // Red
	v.SetDefault("colors.checking", 11)   // Yellow

	// Config location: ~/.config/gh-hookwatch/config.yaml
	v.AddConfigPath(Dir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		// Missing config is fine - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// HOOKWATCH_REFRESH_INTERVAL, HOOKWATCH_COLORS_LIVE, ...
	v.SetEnvPrefix("HOOKWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// API_URL is the variable the tracker's web front-end already uses
	if err := v.BindEnv("api_url", "HOOKWATCH_API_URL", "API_URL"); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the poller cannot run with
func (c *Config) Validate() error {
	switch c.Source {
	case SourceBackend:
		u, err := url.Parse(c.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_url must be an absolute http(s) URL, got %q", c.APIURL)
		}
	case SourceGitHub:
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceBackend, SourceGitHub, c.Source)
	}

	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output must be one of text, json, yaml, got %q", c.Output)
	}

	return nil
}
