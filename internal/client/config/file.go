package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Duration accepts "30s"-style strings or integer nanoseconds in JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var v any
	if err := n.Decode(&v); err != nil {
		return err
	}
	return d.set(v)
}

func (d *Duration) set(v any) error {
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(x))
	case int:
		*d = Duration(time.Duration(x))
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// fileConfig is the on-disk shape. Absent keys leave the Config untouched.
type fileConfig struct {
	APIBaseURL     *string   `json:"api_base_url" yaml:"api_base_url"`
	APIPathPrefix  *string   `json:"api_path_prefix" yaml:"api_path_prefix"`
	StoragePath    *string   `json:"storage_path" yaml:"storage_path"`
	SessionBackend *string   `json:"session_backend" yaml:"session_backend"`
	RedisAddr      *string   `json:"redis_addr" yaml:"redis_addr"`
	SessionTTL     *Duration `json:"session_ttl" yaml:"session_ttl"`
	RequestTimeout *Duration `json:"request_timeout" yaml:"request_timeout"`
	LandingPath    *string   `json:"landing_path" yaml:"landing_path"`
	LogLevel       *string   `json:"log_level" yaml:"log_level"`
	OTLPEndpoint   *string   `json:"otlp_endpoint" yaml:"otlp_endpoint"`
	OTLPInsecure   *bool     `json:"otlp_insecure" yaml:"otlp_insecure"`
}

// parseFile overlays cfg with the file at path. .yaml and .yml files are
// YAML; anything else is JSON, with comments and trailing commas allowed.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.APIPathPrefix, fc.APIPathPrefix)
	setString(&cfg.StoragePath, fc.StoragePath)
	setString(&cfg.SessionBackend, fc.SessionBackend)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.LandingPath, fc.LandingPath)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.OTLPEndpoint, fc.OTLPEndpoint)
	if fc.SessionTTL != nil {
		cfg.SessionTTL = time.Duration(*fc.SessionTTL)
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(*fc.RequestTimeout)
	}
	if fc.OTLPInsecure != nil {
		cfg.OTLPInsecure = *fc.OTLPInsecure
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
