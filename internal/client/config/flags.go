package config

import (
	"io"

	"github.com/spf13/pflag"
)

// newFlagSet declares every flag the CLI understands. Unknown flags are
// skipped rather than rejected so other components can own them.
func newFlagSet(cfg *Config, configFile *string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("communityfeed", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsAllowlist.UnknownFlags = true

	fs.StringVarP(configFile, "config", "c", "", "path to a JSON (comments allowed) or YAML config file")
	fs.StringVarP(&cfg.APIBaseURL, "api-url", "a", cfg.APIBaseURL, "base URL of the REST API")
	fs.StringVar(&cfg.APIPathPrefix, "api-prefix", cfg.APIPathPrefix, "path prefix identifying API requests")
	fs.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "SQLite file holding the persisted session")
	fs.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "session-scoped storage: memory or redis")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for the redis session backend")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "lifetime of session-scoped values in redis")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request API timeout")
	fs.StringVar(&cfg.LandingPath, "landing", cfg.LandingPath, "path opened at startup and after login")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", cfg.OTLPEndpoint, "OTLP gRPC endpoint; tracing is off when empty")
	fs.BoolVar(&cfg.OTLPInsecure, "otlp-insecure", cfg.OTLPInsecure, "dial the OTLP endpoint without TLS")
	return fs
}

// configPath extracts -c/--config from args without touching a real Config.
func configPath(args []string) string {
	var path string
	fs := newFlagSet(&Config{}, &path)
	_ = fs.Parse(args)
	return path
}

// parseFlags overlays cfg with command-line flags.
func parseFlags(cfg *Config, args []string) error {
	var path string
	return newFlagSet(cfg, &path).Parse(args)
}
