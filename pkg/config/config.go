package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvUsername   = "RH_USERNAME"
	EnvPassword   = "RH_PASSWORD"
	EnvBaseURL    = "RH_BASE_URL"
	EnvLogLevel   = "RH_LOG_LEVEL"
	EnvSecretDB   = "RH_SECRET_DB"
	EnvSecretKey  = "RH_SECRET_KEY"
	EnvHTTPSProxy = "HTTPS_PROXY"
)

// CredentialsConfig holds login credentials. Usually left empty in the
// file and supplied via environment or the secret store.
type CredentialsConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SecretsConfig locates the badger secret store.
type SecretsConfig struct {
	DB  string `yaml:"db"`
	Key string `yaml:"key"` // 32 bytes, hex or base64
}

// HTTPConfig tunes the API transport.
type HTTPConfig struct {
	BaseURL           string `yaml:"base_url"`
	APIVersion        string `yaml:"api_version"`
	UserAgent         string `yaml:"user_agent"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RetryCount        int    `yaml:"retry_count"`
	RequestsPerSecond int    `yaml:"requests_per_second"`
	Proxy             string `yaml:"proxy"`
	Debug             bool   `yaml:"debug"`
}

// Timeout is TimeoutSeconds as a duration.
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// PaginationConfig bounds paginated listings.
type PaginationConfig struct {
	MaxPages int `yaml:"max_pages"` // 0 is unbounded
}

// LogConfig configures pkg/logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// Config is the application configuration.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Secrets     SecretsConfig     `yaml:"secrets"`
	HTTP        HTTPConfig        `yaml:"http"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Log         LogConfig         `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Secrets: SecretsConfig{DB: "data/secrets"},
		HTTP: HTTPConfig{
			BaseURL:        "https://api.robinhood.com/",
			APIVersion:     "1.70.0",
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// LoadFromFile loads the configuration. Precedence is environment, then
// file, then defaults. An empty path skips the file.
func LoadFromFile(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", filePath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", filePath, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Credentials.Username = getEnv(EnvUsername, c.Credentials.Username)
	c.Credentials.Password = getEnv(EnvPassword, c.Credentials.Password)
	c.HTTP.BaseURL = getEnv(EnvBaseURL, c.HTTP.BaseURL)
	c.HTTP.Proxy = getEnv(EnvHTTPSProxy, c.HTTP.Proxy)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Secrets.DB = getEnv(EnvSecretDB, c.Secrets.DB)
	c.Secrets.Key = getEnv(EnvSecretKey, c.Secrets.Key)
	c.Pagination.MaxPages = parseIntEnv("RH_MAX_PAGES", c.Pagination.MaxPages)
	c.HTTP.RequestsPerSecond = parseIntEnv("RH_REQUESTS_PER_SECOND", c.HTTP.RequestsPerSecond)
	c.HTTP.Debug = parseBoolEnv("RH_HTTP_DEBUG", c.HTTP.Debug)
}

// applyDefaults fills values a file may have blanked out.
func (c *Config) applyDefaults() {
	d := Default()
	if strings.TrimSpace(c.HTTP.BaseURL) == "" {
		c.HTTP.BaseURL = d.HTTP.BaseURL
	}
	if c.HTTP.APIVersion == "" {
		c.HTTP.APIVersion = d.HTTP.APIVersion
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = d.HTTP.TimeoutSeconds
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Secrets.DB == "" {
		c.Secrets.DB = d.Secrets.DB
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.HTTP.TimeoutSeconds < 0 {
		return fmt.Errorf("http.timeout_seconds must be >= 0, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.HTTP.RetryCount < 0 {
		return fmt.Errorf("http.retry_count must be >= 0, got %d", c.HTTP.RetryCount)
	}
	if c.HTTP.RequestsPerSecond < 0 {
		return fmt.Errorf("http.requests_per_second must be >= 0, got %d", c.HTTP.RequestsPerSecond)
	}
	if c.Pagination.MaxPages < 0 {
		return fmt.Errorf("pagination.max_pages must be >= 0, got %d", c.Pagination.MaxPages)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !strings.HasPrefix(c.HTTP.BaseURL, "http://") && !strings.HasPrefix(c.HTTP.BaseURL, "https://") {
		return fmt.Errorf("http.base_url must be an http(s) url, got %q", c.HTTP.BaseURL)
	}
	return nil
}

// HasCredentials reports whether both username and password are set.
func (c *Config) HasCredentials() bool {
	return c.Credentials.Username != "" && c.Credentials.Password != ""
}

func getEnv(key, defaultValue string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) int {
	if v := getEnv(key, ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) bool {
	if v := getEnv(key, ""); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}
