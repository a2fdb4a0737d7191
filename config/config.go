// Package config loads the proxy settings from an optional YAML file and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prognoshealth/fpdsproxy/fpds"
	"gopkg.in/yaml.v3"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "FPDS_PROXY_CONFIG"

// Config holds the proxy configuration.
type Config struct {
	Feed    FeedConfig    `yaml:"feed"`
	HTTP    HTTPConfig    `yaml:"http"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// FeedConfig describes the upstream feed and how queries are built for it.
type FeedConfig struct {
	BaseURL    string `yaml:"base_url"`
	Name       string `yaml:"name"`
	UserAgent  string `yaml:"user_agent"`
	TimeoutSec int    `yaml:"timeout_sec"`
	WindowDays *int   `yaml:"window_days"` // nil: 90, 0: no default date range
}

// HTTPConfig holds the inbound side settings.
type HTTPConfig struct {
	StrictErrors bool   `yaml:"strict_errors"` // answer failures with 500 instead of 200
	CORSOrigin   string `yaml:"cors_origin"`
	ListenAddr   string `yaml:"listen_addr"` // local server only
}

// CacheConfig enables the dynamodb feed cache when Table is set.
type CacheConfig struct {
	Table  string `yaml:"table"`
	Region string `yaml:"region"`
	TTLSec int64  `yaml:"ttl_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // prod, dev, local
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads the file named by $FPDS_PROXY_CONFIG when set, applies the
// environment overrides and the defaults and validates the result.
func Load() (Config, error) {
	return LoadFile(os.Getenv(PathEnv))
}

// LoadFile is Load with an explicit path. An empty path skips the file.
func LoadFile(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed reading config '%s'", path)
		}

		if err := yaml.Unmarshal(expandEnvVars(data), &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "failed parsing config '%s'", path)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// applyEnv overrides file values with the FPDS_* environment variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	num := func(key string, set func(int)) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "failed parsing %s", key)
		}

		set(n)
		return nil
	}

	str("FPDS_BASE_URL", &c.Feed.BaseURL)
	str("FPDS_FEED_NAME", &c.Feed.Name)
	str("FPDS_USER_AGENT", &c.Feed.UserAgent)
	str("FPDS_CORS_ORIGIN", &c.HTTP.CORSOrigin)
	str("FPDS_LISTEN_ADDR", &c.HTTP.ListenAddr)
	str("FPDS_CACHE_TABLE", &c.Cache.Table)
	str("FPDS_CACHE_REGION", &c.Cache.Region)
	str("FPDS_LOG_ENV", &c.Logging.Env)
	str("FPDS_LOG_LEVEL", &c.Logging.Level)

	if c.Cache.Region == "" {
		str("AWS_REGION", &c.Cache.Region)
	}

	if v, ok := lookup("FPDS_STRICT_ERRORS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(err, "failed parsing FPDS_STRICT_ERRORS")
		}
		c.HTTP.StrictErrors = b
	}

	if err := num("FPDS_TIMEOUT_SEC", func(n int) { c.Feed.TimeoutSec = n }); err != nil {
		return err
	}

	if err := num("FPDS_WINDOW_DAYS", func(n int) { c.Feed.WindowDays = &n }); err != nil {
		return err
	}

	return num("FPDS_CACHE_TTL_SEC", func(n int) { c.Cache.TTLSec = int64(n) })
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = fpds.DefaultBaseURL
	}
	if c.Feed.Name == "" {
		c.Feed.Name = fpds.DefaultFeedName
	}
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = fpds.DefaultUserAgent
	}
	if c.Feed.TimeoutSec <= 0 {
		c.Feed.TimeoutSec = int(fpds.DefaultTimeout / time.Second)
	}
	if c.Feed.WindowDays == nil {
		days := int(fpds.DefaultWindow / (24 * time.Hour))
		c.Feed.WindowDays = &days
	}
	if c.HTTP.CORSOrigin == "" {
		c.HTTP.CORSOrigin = "*"
	}
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "prod"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Feed.BaseURL, "http://") && !strings.HasPrefix(c.Feed.BaseURL, "https://") {
		return errors.Errorf("feed.base_url must be an http(s) url, got '%s'", c.Feed.BaseURL)
	}
	if c.Feed.WindowDays != nil && *c.Feed.WindowDays < 0 {
		return errors.Errorf("feed.window_days must not be negative, got %d", *c.Feed.WindowDays)
	}
	if c.Cache.Table != "" && c.Cache.Region == "" {
		return errors.New("cache.region is required when cache.table is set")
	}
	switch c.Logging.Env {
	case "prod", "dev", "local":
	default:
		return errors.Errorf("logging.env must be prod, dev or local, got '%s'", c.Logging.Env)
	}
	return nil
}

// Timeout returns the feed request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSec) * time.Second
}

// Window returns the default signed-date window. Zero disables it.
func (c Config) Window() time.Duration {
	if c.Feed.WindowDays == nil {
		return fpds.DefaultWindow
	}

	return time.Duration(*c.Feed.WindowDays) * 24 * time.Hour
}

// CacheEnabled reports whether the dynamodb feed cache is configured.
func (c Config) CacheEnabled() bool {
	return c.Cache.Table != ""
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		name, def, hasDefault := strings.Cut(string(match[2:len(match)-1]), ":-")

		v := os.Getenv(name)
		if v == "" && hasDefault {
			v = def
		}

		return []byte(v)
	})
}
