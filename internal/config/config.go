package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nurpe/painel-mulher/internal/model"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
	SlowQuery       time.Duration
}

type AuthConfig struct {
	AccessSecret string
}

type DashboardConfig struct {
	Timezone         string
	Location         *time.Location
	DefaultGoal      model.Goal
	LegacyCumulative bool
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Dashboard   DashboardConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("GOALS_DEFAULT_EQUIPMENT", 5)
	v.SetDefault("GOALS_DEFAULT_VEHICLES", 10)
	v.SetDefault("GOALS_DEFAULT_COVERAGE", 50)
	v.SetDefault("DB_SLOW_QUERY", "200ms")

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
			SlowQuery:       v.GetDuration("DB_SLOW_QUERY"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Dashboard: DashboardConfig{
			Timezone: v.GetString("APP_TIMEZONE"),
			DefaultGoal: model.Goal{
				Equipment: v.GetInt("GOALS_DEFAULT_EQUIPMENT"),
				Vehicles:  v.GetInt("GOALS_DEFAULT_VEHICLES"),
				Coverage:  v.GetFloat64("GOALS_DEFAULT_COVERAGE"),
			},
			LegacyCumulative: v.GetBool("PERIOD_LEGACY_CUMULATIVE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"http://localhost:5173"}
	}
	if cfg.Dashboard.Timezone == "" {
		cfg.Dashboard.Timezone = "America/Fortaleza"
	}
	cfg.Dashboard.Location = loadLocation(cfg.Dashboard.Timezone)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	goal := cfg.Dashboard.DefaultGoal
	if goal.Equipment < 0 || goal.Vehicles < 0 || goal.Coverage < 0 || goal.Coverage > 100 {
		return fmt.Errorf("default goal out of range: %+v", goal)
	}
	return nil
}

// loadLocation falls back to a fixed UTC-3 zone when tzdata is unavailable;
// Ceará has no daylight saving time.
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("BRT", -3*60*60)
	}
	return loc
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
