package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "JWT_TTL_HOURS", "WEATHER_CACHE_TTL", "CORS_ALLOWED_ORIGINS", "FRONTEND_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, 1, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.WeatherCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL_HOURS", "24")
	t.Setenv("WEATHER_CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("OPENWEATHER_URL", "http://weather.test/data/")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24, cfg.JWTTTL)
	assert.Equal(t, 90*time.Second, cfg.WeatherCacheTTL)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 1e-9)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://weather.test/data", cfg.OpenWeatherURL)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "abc")
	t.Setenv("RATE_LIMIT_BURST", "x")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 1, cfg.JWTTTL)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "JWT_TTL_HOURS")

	cfg = &Config{DatabaseURL: "postgres://x", JWTSecret: "s", JWTTTL: 1}
	assert.NoError(t, cfg.Validate())
}
