package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"clima-be/internal/cache"
	"clima-be/internal/config"
	"clima-be/internal/database"
	"clima-be/internal/jwt"
	"clima-be/internal/logging"
	"clima-be/internal/repository"
	"clima-be/internal/server"
	"clima-be/internal/service"
	"clima-be/internal/weather"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.IsProduction())

	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "invalid configuration", "error", err)
		return err
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	sqlDB, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(ctx, "failed to connect to database", "error", err)
		return err
	}
	defer sqlDB.Close()

	// Run database migrations
	if err := database.RunMigrations(ctx, sqlDB); err != nil {
		logger.Error(ctx, "failed to run migrations", "error", err)
		return err
	}

	db, err := database.NewGorm(sqlDB, database.LogLevel(cfg.Env))
	if err != nil {
		logger.Error(ctx, "failed to initialise gorm", "error", err)
		return err
	}

	// Redis is optional; without it weather results are cached in process
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn(ctx, "redis unavailable, using in-memory weather cache", "error", err)
		cacheClient = cache.NewMemoryCache()
	} else {
		logger.Info(ctx, "connected to redis cache")
	}
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	cityRepo := repository.NewFavoriteCityRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	weatherClient := weather.NewClient(weather.Options{
		BaseURL: cfg.OpenWeatherURL,
		GeoURL:  cfg.OpenWeatherGeoURL,
		APIKey:  cfg.OpenWeatherAPIKey,
		Units:   cfg.OpenWeatherUnits,
		Lang:    cfg.OpenWeatherLang,
		Timeout: cfg.HTTPClientTimeout,
	})
	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn(ctx, "OPENWEATHER_API_KEY is empty, weather lookups will fail")
	}

	// Initialize services
	services := server.Services{
		Auth:    service.NewAuthService(userRepo, jwtService),
		Users:   service.NewUserService(userRepo, bcrypt.DefaultCost),
		Cities:  service.NewFavoriteCityService(cityRepo, userRepo),
		Weather: service.NewWeatherService(weatherClient, cacheClient, cfg.WeatherCacheTTL, logger.With("component", "weather")),
	}

	router := server.NewRouter(cfg, logger, db, jwtService, services)
	defer router.Close()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error(ctx, "server failed", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(shutdownCtx, "graceful shutdown failed", "error", err)
		return err
	}
	logger.Info(shutdownCtx, "server stopped")
	return nil
}
