// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	GeneratorMock = "mock"
	GeneratorHTTP = "http"
)

type Config struct {
	AppEnv     string
	Port       string
	PresetFile string

	PersistBackend   string
	PersistDir       string
	PersistNamespace string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisTTL         time.Duration
	DatabaseURL      string

	Generator        string
	GeneratorURL     string
	GeneratorAPIKey  string
	GeneratorTimeout time.Duration
	MockLatency      time.Duration

	StartingTokens     float64
	RateLimitPerMinute int
	TrustProxyHeaders  bool

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("preset_file", "/data/presets.json")

	v.SetDefault("persist_backend", BackendFile)
	v.SetDefault("persist_dir", "/data/state")
	v.SetDefault("persist_namespace", "thumb-studio")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_ttl", "0s")
	v.SetDefault("database_url", "")

	v.SetDefault("generator", GeneratorMock)
	v.SetDefault("generator_url", "")
	v.SetDefault("generator_api_key", "")
	v.SetDefault("generator_timeout", "60s")
	v.SetDefault("mock_latency", "2500ms")

	v.SetDefault("starting_tokens", 15.0)
	v.SetDefault("rate_limit_per_minute", 30)
	v.SetDefault("trust_proxy_headers", false)

	v.SetDefault("http_read_timeout", "15s")
	v.SetDefault("http_write_timeout", "90s")
	v.SetDefault("http_idle_timeout", "60s")
}

// Load reads settings from environment variables (PORT, PERSIST_BACKEND,
// ...) over built-in defaults and validates them.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		AppEnv:     v.GetString("app_env"),
		Port:       v.GetString("port"),
		PresetFile: v.GetString("preset_file"),

		PersistBackend:   strings.ToLower(v.GetString("persist_backend")),
		PersistDir:       v.GetString("persist_dir"),
		PersistNamespace: v.GetString("persist_namespace"),
		RedisAddr:        v.GetString("redis_addr"),
		RedisPassword:    v.GetString("redis_password"),
		RedisDB:          v.GetInt("redis_db"),
		RedisTTL:         v.GetDuration("redis_ttl"),
		DatabaseURL:      v.GetString("database_url"),

		Generator:        strings.ToLower(v.GetString("generator")),
		GeneratorURL:     v.GetString("generator_url"),
		GeneratorAPIKey:  v.GetString("generator_api_key"),
		GeneratorTimeout: v.GetDuration("generator_timeout"),
		MockLatency:      v.GetDuration("mock_latency"),

		StartingTokens:     v.GetFloat64("starting_tokens"),
		RateLimitPerMinute: v.GetInt("rate_limit_per_minute"),
		TrustProxyHeaders:  v.GetBool("trust_proxy_headers"),

		HTTPReadTimeout:  v.GetDuration("http_read_timeout"),
		HTTPWriteTimeout: v.GetDuration("http_write_timeout"),
		HTTPIdleTimeout:  v.GetDuration("http_idle_timeout"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.PersistBackend {
	case BackendMemory:
	case BackendFile:
		if c.PersistDir == "" {
			return fmt.Errorf("PERSIST_DIR is required for the file backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown PERSIST_BACKEND %q", c.PersistBackend)
	}
	if c.PersistNamespace == "" {
		return fmt.Errorf("PERSIST_NAMESPACE must not be empty")
	}
	switch c.Generator {
	case GeneratorMock:
	case GeneratorHTTP:
		if c.GeneratorURL == "" {
			return fmt.Errorf("GENERATOR_URL is required for the http generator")
		}
	default:
		return fmt.Errorf("unknown GENERATOR %q", c.Generator)
	}
	if c.StartingTokens < 0 {
		return fmt.Errorf("STARTING_TOKENS must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	return nil
}
