// Package openweather implements the geocoding + weather provider against
// the OpenWeather direct-geocoding and current-weather APIs.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"goalline/pkg/prediction"
	"goalline/pkg/transport"
)

type Client struct {
	geoURL  string
	dataURL string
	apiKey  string
	http    *transport.Client
}

var _ prediction.WeatherProvider = (*Client)(nil)

func New(geoURL, dataURL, apiKey string, httpClient *transport.Client) *Client {
	return &Client{
		geoURL:  geoURL,
		dataURL: dataURL,
		apiKey:  apiKey,
		http:    httpClient,
	}
}

type geoEntry struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Geocode resolves city[,country] to coordinates
func (c *Client) Geocode(ctx context.Context, city, country string) ([]prediction.GeoPoint, error) {
	q := city
	if country != "" {
		q = city + "," + country
	}
	url, err := transport.BuildURL(c.geoURL, map[string]string{
		"q":     q,
		"limit": "1",
		"appid": c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	var entries []geoEntry
	if err := c.http.GetJSON(ctx, url, nil, &entries); err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	points := make([]prediction.GeoPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, prediction.GeoPoint{Lat: e.Lat, Lon: e.Lon})
	}
	return points, nil
}

type currentWeather struct {
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current fetches conditions at the coordinates, metric units
func (c *Client) Current(ctx context.Context, lat, lon float64) (*prediction.Observation, error) {
	url, err := transport.BuildURL(c.dataURL, map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
		"units": "metric",
		"appid": c.apiKey,
	})
	if err != nil {
		return nil, err
	}

	body, err := c.http.Get(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	var w currentWeather
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	obs := &prediction.Observation{
		WindSpeed: w.Wind.Speed,
		TempC:     w.Main.Temp,
		Raw:       json.RawMessage(body),
	}
	if len(w.Weather) > 0 {
		obs.Category = w.Weather[0].Main
	}
	return obs, nil
}
