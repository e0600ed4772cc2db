package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the communityfeed CLI.
//
// Units: SessionTTL and RequestTimeout are time.Duration values.
type Config struct {
	APIBaseURL     string
	APIPathPrefix  string
	StoragePath    string
	SessionBackend string
	RedisAddr      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	LandingPath    string
	LogLevel       string
	OTLPEndpoint   string
	OTLPInsecure   bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.APIPathPrefix = "/api"
	c.StoragePath = "communityfeed.db"
	c.SessionBackend = BackendMemory
	c.RedisAddr = "127.0.0.1:6379"
	c.SessionTTL = 30 * time.Minute
	c.RequestTimeout = 10 * time.Second
	c.LandingPath = "/feed"
	c.LogLevel = "info"
	c.OTLPEndpoint = ""
	c.OTLPInsecure = false
}

// Load builds a Config from defaults, then the optional config file named by
// -c/--config, then the environment, then flags. Later sources take precedence.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := configPath(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	parseEnv(cfg, getenv)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api base url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL))
	}

	switch c.SessionBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis session backend needs a redis address"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session backend %q", c.SessionBackend))
	}

	if c.StoragePath == "" {
		errs = append(errs, errors.New("storage path is empty"))
	}
	if !strings.HasPrefix(c.LandingPath, "/") {
		errs = append(errs, fmt.Errorf("landing path %q must start with /", c.LandingPath))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout %s must be positive", c.RequestTimeout))
	}
	if c.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session ttl %s must not be negative", c.SessionTTL))
	}

	return errors.Join(errs...)
}
