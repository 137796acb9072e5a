package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"pollution_tracker/internal/model"

	"go.uber.org/zap"
)

const (
	AirPollutionBaseURL = "http://api.openweathermap.org/data/2.5/air_pollution"
	GeocodingBaseURL    = "http://api.openweathermap.org/geo/1.0/direct"
)

// ErrNoData is the single failure signal of the provider client. Network
// errors, non-200 statuses, malformed payloads and empty results all collapse
// into it; the underlying cause is logged, not propagated.
var ErrNoData = errors.New("air quality data unavailable")

// HTTPClient abstracts the HTTP transport so tests can substitute their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherClient fetches air quality data from the OpenWeatherMap API.
type OpenWeatherClient struct {
	airPollutionURL string
	geocodingURL    string
	apiKey          string
	httpClient      HTTPClient
	log             *zap.SugaredLogger
}

// NewOpenWeatherClient creates a new OpenWeatherClient
func NewOpenWeatherClient(apiKey string, httpClient HTTPClient, log *zap.SugaredLogger) (*OpenWeatherClient, error) {
	if apiKey == "" {
		return nil, errors.New("API key cannot be empty")
	}
	return &OpenWeatherClient{
		airPollutionURL: AirPollutionBaseURL,
		geocodingURL:    GeocodingBaseURL,
		apiKey:          apiKey,
		httpClient:      httpClient,
		log:             log,
	}, nil
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
	} `json:"list"`
}

type geocodingEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// aqiMapping translates the OpenWeather 1-5 severity index into a category
// label and advice text. Unmapped indices fall back to Unknown.
func aqiMapping(level int) (string, string) {
	switch level {
	case 1:
		return "Good", "Air quality is satisfactory."
	case 2:
		return "Fair", "Acceptable air quality."
	case 3:
		return "Moderate", "Sensitive groups should reduce outdoor activity."
	case 4:
		return "Poor", "Limit prolonged outdoor exertion."
	case 5:
		return "Very Poor", "Stay indoors and use masks."
	default:
		return "Unknown", "No data available."
	}
}

// FetchByCoordinates fetches the AQI for a coordinate pair. The provider's
// 1-5 index is widened to a rough 0-500 scale by multiplying by 50.
func (c *OpenWeatherClient) FetchByCoordinates(ctx context.Context, lat, lon float64) (*model.AQIReading, error) {
	reqURL := fmt.Sprintf("%s?lat=%f&lon=%f&appid=%s", c.airPollutionURL, lat, lon, c.apiKey)

	var response airPollutionResponse
	if err := c.getJSON(ctx, reqURL, &response); err != nil {
		c.log.Warnw("air pollution request failed", "lat", lat, "lon", lon, "error", err)
		return nil, ErrNoData
	}

	if len(response.List) == 0 {
		c.log.Warnw("air pollution response contained no data", "lat", lat, "lon", lon)
		return nil, ErrNoData
	}

	level := response.List[0].Main.AQI
	category, advice := aqiMapping(level)

	return &model.AQIReading{
		AQI:      level * 50,
		Category: category,
		Advice:   advice,
	}, nil
}

// FetchByCity resolves a city name to coordinates (first geocoder match only)
// and fetches the AQI there.
func (c *OpenWeatherClient) FetchByCity(ctx context.Context, city string) (*model.CityAQI, error) {
	reqURL := fmt.Sprintf("%s?q=%s&limit=1&appid=%s", c.geocodingURL, url.QueryEscape(city), c.apiKey)

	var entries []geocodingEntry
	if err := c.getJSON(ctx, reqURL, &entries); err != nil {
		c.log.Warnw("geocoding request failed", "city", city, "error", err)
		return nil, ErrNoData
	}
	if len(entries) == 0 {
		c.log.Warnw("geocoder found no match", "city", city)
		return nil, ErrNoData
	}

	lat, lon := entries[0].Lat, entries[0].Lon
	reading, err := c.FetchByCoordinates(ctx, lat, lon)
	if err != nil {
		return nil, ErrNoData
	}

	return &model.CityAQI{
		City:       city,
		Lat:        lat,
		Lon:        lon,
		AQIReading: *reading,
	}, nil
}

func (c *OpenWeatherClient) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, resp.Status)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}
	return nil
}
