package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clima-be/internal/cache"
	"clima-be/internal/logging"
	"clima-be/internal/models"
	"clima-be/internal/weather"
)

const MsgLocationNotFound = "Ubicación no encontrada"

// WeatherProvider is the subset of the OpenWeather client the service needs.
type WeatherProvider interface {
	Geocode(ctx context.Context, city string) ([]weather.Location, error)
	Current(ctx context.Context, lat, lon float64) (*weather.Current, error)
}

// WeatherService defines the interface for weather lookups
type WeatherService interface {
	GetWeather(ctx context.Context, city string) (*models.WeatherResult, error)
	GetCoordinates(ctx context.Context, city string) (*models.CoordinatesResult, error)
}

type weatherService struct {
	provider WeatherProvider
	cache    cache.Cache
	ttl      time.Duration
	logger   logging.Logger
}

// NewWeatherService creates a new weather service. cacheClient may be nil,
// in which case every lookup goes to the provider.
func NewWeatherService(provider WeatherProvider, cacheClient cache.Cache, ttl time.Duration, logger logging.Logger) WeatherService {
	return &weatherService{
		provider: provider,
		cache:    cacheClient,
		ttl:      ttl,
		logger:   logger,
	}
}

// GetWeather geocodes the city and fetches its current weather. A city the
// provider does not know yields Found=false and no error.
func (s *weatherService) GetWeather(ctx context.Context, city string) (*models.WeatherResult, error) {
	key := cacheKey("weather", city)
	var cached models.WeatherResult
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	loc, err := s.locate(ctx, city)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return &models.WeatherResult{Found: false, Message: MsgLocationNotFound}, nil
	}

	current, err := s.provider.Current(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	result := &models.WeatherResult{
		Found:    true,
		Location: formatLocation(loc),
		Weather:  current,
	}
	s.toCache(ctx, key, result)
	return result, nil
}

// GetCoordinates resolves the city to coordinates only.
func (s *weatherService) GetCoordinates(ctx context.Context, city string) (*models.CoordinatesResult, error) {
	key := cacheKey("coords", city)
	var cached models.CoordinatesResult
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	loc, err := s.locate(ctx, city)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return &models.CoordinatesResult{Found: false, Message: MsgLocationNotFound}, nil
	}

	result := &models.CoordinatesResult{Found: true, Lat: loc.Lat, Lon: loc.Lon}
	s.toCache(ctx, key, result)
	return result, nil
}

func (s *weatherService) locate(ctx context.Context, city string) (*weather.Location, error) {
	locations, err := s.provider.Geocode(ctx, strings.TrimSpace(city))
	if err != nil {
		return nil, fmt.Errorf("failed to geocode city: %w", err)
	}
	if len(locations) == 0 {
		return nil, nil
	}
	return &locations[0], nil
}

func (s *weatherService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.GetJSON(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn(ctx, "weather cache read failed", "key", key, "error", err)
	}
	return false
}

func (s *weatherService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn(ctx, "weather cache write failed", "key", key, "error", err)
	}
}

func cacheKey(kind, city string) string {
	return "clima:" + kind + ":" + strings.Join(strings.Fields(strings.ToLower(city)), " ")
}

func formatLocation(loc *weather.Location) string {
	if loc.Country == "" {
		return loc.Name
	}
	return loc.Name + ", " + loc.Country
}
