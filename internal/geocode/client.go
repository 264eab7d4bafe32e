// Package geocode talks to a Google-style reverse-geocoding endpoint and
// exposes the structured address components the zone resolver works from.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Component is one address component of a geocoding result: a display
// name plus the type tags the service attached to it.
type Component struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

// Result is the shape the zone resolver depends on: the service status
// plus every address component, in response order.
type Result struct {
	Status     string
	Components []Component
}

const StatusOK = "OK"

type Config struct {
	BaseURL    string // defaults to the Google geocoding endpoint
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 20 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, apiKey: cfg.APIKey, httpClient: httpClient}
}

// ReverseGeocode looks up the address components for a coordinate pair.
// A non-2xx response or transport failure is an error; a non-OK status in
// the body is not — callers decide what a ZERO_RESULTS means.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Result, error) {
	q := url.Values{}
	q.Set("latlng", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lon, 'f', -1, 64))
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Status  string `json:"status"`
		Results []struct {
			AddressComponents []Component `json:"address_components"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", err)
	}

	out := &Result{Status: body.Status}
	for _, r := range body.Results {
		out.Components = append(out.Components, r.AddressComponents...)
	}
	return out, nil
}
