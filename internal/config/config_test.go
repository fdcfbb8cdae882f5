package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/painel-mulher/internal/model"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/painel")
	t.Setenv("JWT_ACCESS_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 7090, cfg.HTTP.Port)
	assert.Equal(t, model.Goal{Equipment: 5, Vehicles: 10, Coverage: 50}, cfg.Dashboard.DefaultGoal)
	assert.Equal(t, 200*time.Millisecond, cfg.DB.SlowQuery)
	assert.False(t, cfg.Dashboard.LegacyCumulative)
	require.NotNil(t, cfg.Dashboard.Location)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/painel")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("GOALS_DEFAULT_EQUIPMENT", "7")
	t.Setenv("GOALS_DEFAULT_COVERAGE", "65.5")
	t.Setenv("PERIOD_LEGACY_CUMULATIVE", "true")
	t.Setenv("APP_TIMEZONE", "Not/AZone")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 7, cfg.Dashboard.DefaultGoal.Equipment)
	assert.Equal(t, 65.5, cfg.Dashboard.DefaultGoal.Coverage)
	assert.True(t, cfg.Dashboard.LegacyCumulative)

	_, offset := time.Date(2024, 1, 1, 12, 0, 0, 0, cfg.Dashboard.Location).Zone()
	assert.Equal(t, -3*60*60, offset)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")

	t.Setenv("DB_DSN", "postgres://localhost/painel")
	t.Setenv("JWT_ACCESS_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_ACCESS_SECRET")
}

func TestLoadRejectsBadDefaultGoal(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/painel")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("GOALS_DEFAULT_COVERAGE", "150")

	_, err := Load()
	assert.ErrorContains(t, err, "default goal")
}
