package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional YAML file, a .env file and the
// environment, in increasing order of precedence. Environment keys are the
// config keys upper-cased with dots replaced by underscores, so
// database.url is DATABASE_URL.
//
// An empty path searches ./configs and the working directory for config.yaml.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	applyDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("load config: read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("load config: invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Defaults are registered on the viper instance so every key is known to
// AutomaticEnv, even when absent from the file.
func applyDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.route_ttl", 24*time.Hour)

	v.SetDefault("ors.api_key", "")
	v.SetDefault("ors.base_url", "https://api.openrouteservice.org")
	v.SetDefault("ors.country", "JP")
	v.SetDefault("ors.timeout", 10*time.Second)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.timeout", 30*time.Second)

	v.SetDefault("engine.route_provider", "gemini")
	v.SetDefault("engine.past_buffer", 10*time.Minute)
	v.SetDefault("engine.time_bucket", 5*time.Minute)
	v.SetDefault("engine.concurrency", 5)
	v.SetDefault("engine.requests_per_second", 2.0)
	v.SetDefault("engine.burst", 4)

	v.SetDefault("geocode_cache.size", 10000)
	v.SetDefault("geocode_cache.ttl", 7*24*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", cfg.Server.Port)
	}

	switch cfg.Engine.RouteProvider {
	case "gemini", "mock":
	default:
		return fmt.Errorf("engine.route_provider must be gemini or mock, got %q", cfg.Engine.RouteProvider)
	}

	if cfg.Engine.Concurrency <= 0 {
		return fmt.Errorf("engine.concurrency must be positive, got %d", cfg.Engine.Concurrency)
	}
	if cfg.Engine.TimeBucket <= 0 {
		return fmt.Errorf("engine.time_bucket must be positive")
	}
	if cfg.Engine.PastBuffer < 0 {
		return fmt.Errorf("engine.past_buffer must be non-negative")
	}
	if cfg.Engine.RequestsPerSecond < 0 || cfg.Engine.Burst < 0 {
		return fmt.Errorf("engine rate limit must be non-negative")
	}

	if cfg.GeocodeCache.Size < 0 {
		return fmt.Errorf("geocode_cache.size must be non-negative")
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	return nil
}

// Get returns the environment variable key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
