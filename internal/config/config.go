package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Env         string // development, production or test
	Port        string
	LogLevel    string
	DatabaseURL string
	RedisURL    string
	FrontendURL string // Used as the target of shared favorite-city QR codes

	JWTSecret string // Secret key for JWT token signing
	JWTTTL    int    // JWT token expiration time in hours

	OpenWeatherURL    string
	OpenWeatherGeoURL string
	OpenWeatherAPIKey string
	OpenWeatherUnits  string
	OpenWeatherLang   string
	WeatherCacheTTL   time.Duration
	HTTPClientTimeout time.Duration

	CORSAllowedOrigins []string

	RateLimitRPS          float64 // General API endpoints (requests per second)
	RateLimitBurst        int
	RateLimitAuthRPS      float64 // Login and registration (stricter)
	RateLimitAuthBurst    int
	RateLimitWeatherRPS   float64 // Weather proxy, each call fans out to the provider twice
	RateLimitWeatherBurst int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Env:         strings.ToLower(getEnv("APP_ENV", EnvDevelopment)),
		Port:        getEnv("PORT", "3000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getEnvInt("JWT_TTL_HOURS", 1),

		OpenWeatherURL:    strings.TrimRight(getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5"), "/"),
		OpenWeatherGeoURL: strings.TrimRight(getEnv("OPENWEATHER_GEO_URL", "https://api.openweathermap.org/geo/1.0"), "/"),
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherUnits:  getEnv("OPENWEATHER_UNITS", "metric"),
		OpenWeatherLang:   getEnv("OPENWEATHER_LANG", "es"),
		WeatherCacheTTL:   getEnvDuration("WEATHER_CACHE_TTL", 10*time.Minute),
		HTTPClientTimeout: getEnvDuration("HTTP_CLIENT_TIMEOUT", 10*time.Second),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		RateLimitRPS:          getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:      getEnvFloat("RATE_LIMIT_AUTH_RPS", 2),
		RateLimitAuthBurst:    getEnvInt("RATE_LIMIT_AUTH_BURST", 5),
		RateLimitWeatherRPS:   getEnvFloat("RATE_LIMIT_WEATHER_RPS", 1),
		RateLimitWeatherBurst: getEnvInt("RATE_LIMIT_WEATHER_BURST", 5),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
