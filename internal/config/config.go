// Package config loads the console server configuration from defaults, an
// optional YAML file, a .env file and INSADMIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. INSADMIN_API_BASE_URL.
const EnvPrefix = "INSADMIN"

// ServerConfig holds configuration for the console server.
type ServerConfig struct {
	Addr       string `mapstructure:"addr"`         // Listen address (default ":8080")
	LogLevel   string `mapstructure:"log_level"`    // Log level: debug, info, warn, error
	LogFormat  string `mapstructure:"log_format"`   // Log format: text, json
	DBPath     string `mapstructure:"db_path"`      // SQLite session database (default ~/.insadmin/sessions.db, ":memory:" for testing)
	APIBaseURL string `mapstructure:"api_base_url"` // Remote API root, e.g. https://api.example.sy/api

	SecureCookies  bool          `mapstructure:"secure_cookies"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DebounceDelay  time.Duration `mapstructure:"debounce_delay"`
	Locale         string        `mapstructure:"locale"` // BCP 47 tag for list labels, e.g. "ar" or "en"

	BreakerFailures int           `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "text",
		APIBaseURL:      "http://localhost:5000/api",
		SessionTTL:      24 * time.Hour,
		CacheTTL:        60 * time.Second,
		RequestTimeout:  15 * time.Second,
		DebounceDelay:   300 * time.Millisecond,
		Locale:          "en",
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// Load reads the configuration. path may name a YAML file; an empty path
// or a missing file leaves the defaults in place. Environment variables
// override the file.
func Load(path string) (ServerConfig, error) {
	v := viper.New()
	setDefaults(v, DefaultServerConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return ServerConfig{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d ServerConfig) {
	v.SetDefault("addr", d.Addr)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("api_base_url", d.APIBaseURL)
	v.SetDefault("secure_cookies", d.SecureCookies)
	v.SetDefault("session_ttl", d.SessionTTL)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("debounce_delay", d.DebounceDelay)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("breaker_failures", d.BreakerFailures)
	v.SetDefault("breaker_timeout", d.BreakerTimeout)
}

// Validate checks values that would otherwise fail later at runtime.
func (c ServerConfig) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: api_base_url %q must be an absolute http(s) URL", c.APIBaseURL)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session_ttl must be positive")
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is
// not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
