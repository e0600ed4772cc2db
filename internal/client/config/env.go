package config

import "strconv"

// parseEnv overlays cfg with FEED_* and standard OTEL_* variables. Unset or
// unparsable variables are ignored.
func parseEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		return
	}

	str := func(name string, dst *string) {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	str("FEED_API_URL", &cfg.APIBaseURL)
	str("FEED_STORAGE_PATH", &cfg.StoragePath)
	str("FEED_SESSION_BACKEND", &cfg.SessionBackend)
	str("FEED_REDIS_ADDR", &cfg.RedisAddr)
	str("FEED_LOG_LEVEL", &cfg.LogLevel)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.OTLPEndpoint)

	if v := getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}
}
