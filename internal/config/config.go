package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DB       string
	SSLMode  string
}

// Enabled reports whether a postgres backend was configured; otherwise the
// service falls back to its local sqlite file.
func (p Postgres) Enabled() bool { return p.Host != "" && p.DB != "" }

type Config struct {
	Port              string
	OpenWeatherAPIKey string

	CacheTTL      time.Duration
	TrackedCities []string
	RefreshSpec   string
	RetentionDays int

	SQLitePath string
	Postgres   Postgres

	RedisAddr      string
	RateLimitRPS   int
	RateLimitBurst int

	MQTTBroker      string
	MQTTTopicPrefix string
}

// Load reads configuration from an optional yaml file (MAUSAM_CONFIG) and
// the environment; env always wins. A missing API key is not an error here:
// the gateway surfaces it per request so the service still starts and
// reports a usable error state instead of crashing.
func Load() (Config, error) {
	// Best effort; a missing .env file is the normal case in production.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("port", "8095")
	v.SetDefault("cache_ttl", "15m")
	v.SetDefault("refresh_spec", "@every 15m")
	v.SetDefault("retention_days", 14)
	v.SetDefault("sqlite_path", "mausam.db")
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("mqtt_topic_prefix", "mausam/weather")

	if path := v.GetString("mausam_config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	ttl, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil || ttl <= 0 {
		ttl = 15 * time.Minute
	}

	cfg := Config{
		Port:              v.GetString("port"),
		OpenWeatherAPIKey: v.GetString("openweather_api_key"),
		CacheTTL:          ttl,
		TrackedCities:     splitList(v.GetString("tracked_cities")),
		RefreshSpec:       v.GetString("refresh_spec"),
		RetentionDays:     v.GetInt("retention_days"),
		SQLitePath:        v.GetString("sqlite_path"),
		Postgres: Postgres{
			Host:     v.GetString("postgres_host"),
			Port:     v.GetString("postgres_port"),
			User:     v.GetString("postgres_user"),
			Password: v.GetString("postgres_password"),
			DB:       v.GetString("postgres_db"),
			SSLMode:  v.GetString("postgres_sslmode"),
		},
		RedisAddr:       v.GetString("redis_addr"),
		RateLimitRPS:    v.GetInt("rate_limit_rps"),
		RateLimitBurst:  v.GetInt("rate_limit_burst"),
		MQTTBroker:      v.GetString("mqtt_broker"),
		MQTTTopicPrefix: v.GetString("mqtt_topic_prefix"),
	}
	if cfg.Postgres.Port == "" {
		cfg.Postgres.Port = "5432"
	}
	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
