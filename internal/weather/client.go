// Package weather is a client for the OpenWeather geocoding and
// current-weather APIs.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Options struct {
	BaseURL string // e.g. https://api.openweathermap.org/data/2.5
	GeoURL  string // e.g. https://api.openweathermap.org/geo/1.0
	APIKey  string
	Units   string
	Lang    string
	Timeout time.Duration
}

type Client struct {
	opts Options
	http *http.Client
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather provider %s returned %d: %s", e.Endpoint, e.Status, e.Body)
}

// Geocode returns at most one match for the city. An empty slice means
// the provider knows no such place.
func (c *Client) Geocode(ctx context.Context, city string) ([]Location, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("limit", "1")
	q.Set("appid", c.opts.APIKey)

	var locations []Location
	if err := c.get(ctx, c.opts.GeoURL+"/direct", q, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// Current fetches the current weather at the coordinates.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Current, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("appid", c.opts.APIKey)
	if c.opts.Units != "" {
		q.Set("units", c.opts.Units)
	}
	if c.opts.Lang != "" {
		q.Set("lang", c.opts.Lang)
	}

	var current Current
	if err := c.get(ctx, c.opts.BaseURL+"/weather", q, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: endpoint, Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode weather response: %w", err)
	}
	return nil
}
