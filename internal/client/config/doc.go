// Package config loads runtime configuration for the communityfeed CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or --config. Files ending in
//     .yaml or .yml are YAML; anything else is JSON with comments allowed.
//  3. Environment: FEED_API_URL, FEED_STORAGE_PATH, FEED_SESSION_BACKEND,
//     FEED_REDIS_ADDR, FEED_LOG_LEVEL, OTEL_EXPORTER_OTLP_ENDPOINT and
//     OTEL_EXPORTER_OTLP_INSECURE.
//  4. Command-line flags, which override earlier values. Unknown flags are ignored.
//
// Supported flags
//
//	-a, --api-url string        base URL of the REST API
//	    --api-prefix string     path prefix identifying API requests
//	    --storage string        SQLite file holding the persisted session
//	    --session-backend string memory or redis
//	    --redis-addr string     redis address
//	    --session-ttl duration  lifetime of session-scoped values in redis
//	    --timeout duration      per-request API timeout
//	    --landing string        path opened at startup and after login
//	    --log-level string      debug, info, warn or error
//	    --otlp-endpoint string  OTLP gRPC endpoint
//	    --otlp-insecure         dial the OTLP endpoint without TLS
//
// # File schema
//
// Durations are strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080/api",
//	  "session_backend": "memory",
//	  "request_timeout": "10s"
//	}
package config
