package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func defaults() *Config {
	var c Config
	c.LoadDefaults()
	return &c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:8080/api", c.APIBaseURL)
	assert.Equal(t, "/api", c.APIPathPrefix)
	assert.Equal(t, BackendMemory, c.SessionBackend)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, "/feed", c.LandingPath)
	assert.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(nil, noEnv)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_JSONWithComments(t *testing.T) {
	path := writeTemp(t, "cfg.json", `{
  // staging API
  "api_base_url": "https://staging.example.com/api",
  "request_timeout": "3s",
  "session_ttl": 60000000000,
  "otlp_insecure": true, /* trailing comma below */
}`)

	cfg, err := Load([]string{"-c", path}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.OTLPInsecure)
	assert.Equal(t, "/feed", cfg.LandingPath, "absent keys keep defaults")
}

func TestLoad_YAML(t *testing.T) {
	path := writeTemp(t, "cfg.yaml", `
api_base_url: https://feed.example.com/api
session_backend: redis
redis_addr: cache:6379
session_ttl: 45m
landing_path: /trending
log_level: debug
`)

	cfg, err := Load([]string{"--config=" + path}, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "https://feed.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, BackendRedis, cfg.SessionBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "/trending", cfg.LandingPath)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTemp(t, "cfg.yml", "api_base_url: https://file.example.com/api\nlog_level: warn\nstorage_path: file.db\n")
	env := envOf(map[string]string{
		"FEED_API_URL":                "https://env.example.com/api",
		"FEED_LOG_LEVEL":              "error",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "collector:4317",
		"OTEL_EXPORTER_OTLP_INSECURE": "true",
	})

	cfg, err := Load([]string{"-c", path, "--api-url", "https://flag.example.com/api"}, env)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example.com/api", cfg.APIBaseURL, "flags beat env")
	assert.Equal(t, "error", cfg.LogLevel, "env beats file")
	assert.Equal(t, "file.db", cfg.StoragePath, "file beats defaults")
	assert.Equal(t, "collector:4317", cfg.OTLPEndpoint)
	assert.True(t, cfg.OTLPInsecure)
}

func TestLoad_UnknownFlagsIgnored(t *testing.T) {
	cfg, err := Load([]string{"--verbose", "-a", "https://x.example.com/api", "--timeout", "2s"}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "https://x.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
}

func TestLoad_Errors(t *testing.T) {
	bad := writeTemp(t, "bad.json", `{ this is not valid json`)
	badDuration := writeTemp(t, "dur.yaml", "request_timeout: soon\n")

	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{"missing file", []string{"-c", filepath.Join(t.TempDir(), "none.json")}, nil},
		{"invalid json", []string{"-c", bad}, nil},
		{"invalid duration", []string{"-c", badDuration}, nil},
		{"invalid flag value", []string{"--timeout", "abc"}, nil},
		{"invalid backend", nil, map[string]string{"FEED_SESSION_BACKEND": "etcd"}},
		{"relative api url", []string{"--api-url", "/api"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, envOf(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"https url", func(c *Config) { c.APIBaseURL = "https://feed.example.com" }, false},
		{"ftp url", func(c *Config) { c.APIBaseURL = "ftp://feed.example.com" }, true},
		{"redis without addr", func(c *Config) { c.SessionBackend = BackendRedis; c.RedisAddr = "" }, true},
		{"redis with addr", func(c *Config) { c.SessionBackend = BackendRedis }, false},
		{"relative landing", func(c *Config) { c.LandingPath = "feed" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"negative ttl", func(c *Config) { c.SessionTTL = -time.Second }, true},
		{"empty storage", func(c *Config) { c.StoragePath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			if tt.wantErr {
				assert.Error(t, c.Validate())
			} else {
				assert.NoError(t, c.Validate())
			}
		})
	}
}
