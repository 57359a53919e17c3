package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valpere/pohoda/internal/models"
)

const (
	defaultBaseURL   = "https://api.openweathermap.org"
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "Pohoda/1.0"
	maxErrorBodySize = 64 << 10
)

// Client represents an OpenWeatherMap current weather client
type Client struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option customises a Client or GeocodingClient
type Option func(*options)

type options struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// WithBaseURL points the client at another host (tests, proxies)
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		if baseURL != "" {
			o.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient creates a new weather API client. The api key is sent with every
// request and never logged or included in errors.
func NewClient(apiKey string, opts ...Option) *Client {
	o := buildOptions(opts)
	return &Client{
		apiKey:     apiKey,
		baseURL:    o.baseURL,
		userAgent:  o.userAgent,
		httpClient: o.httpClient,
	}
}

// GetWeatherByCity retrieves current weather for a city name
func (c *Client) GetWeatherByCity(ctx context.Context, city string) (*models.WeatherRecord, error) {
	if c.apiKey == "" {
		return nil, &ProviderError{Kind: KindAuthorization, Message: "weather API key is not configured"}
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)

	var record models.WeatherRecord
	if err := getJSON(ctx, c.httpClient, c.userAgent, c.baseURL+"/data/2.5/weather?"+params.Encode(), &record); err != nil {
		return nil, err
	}

	if record.Name == "" {
		return nil, &ProviderError{Kind: KindMalformed, Err: fmt.Errorf("response has no location name")}
	}

	return &record, nil
}

// GeocodingClient resolves coordinates to city names
type GeocodingClient struct {
	apiKey     string
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewGeocodingClient creates a new geocoding client
func NewGeocodingClient(apiKey string, opts ...Option) *GeocodingClient {
	o := buildOptions(opts)
	return &GeocodingClient{
		apiKey:     apiKey,
		baseURL:    o.baseURL,
		userAgent:  o.userAgent,
		httpClient: o.httpClient,
	}
}

// ResolveCity returns the name of the place nearest to the coordinates
func (c *GeocodingClient) ResolveCity(ctx context.Context, lat, lon float64) (string, error) {
	if c.apiKey == "" {
		return "", &ProviderError{Kind: KindAuthorization, Message: "weather API key is not configured"}
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)

	var places []struct {
		Name    string  `json:"name"`
		Country string  `json:"country"`
		State   string  `json:"state"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := getJSON(ctx, c.httpClient, c.userAgent, c.baseURL+"/geo/1.0/reverse?"+params.Encode(), &places); err != nil {
		return "", err
	}

	if len(places) == 0 || strings.TrimSpace(places[0].Name) == "" {
		return "", ErrLocationNotFound
	}

	return places[0].Name, nil
}

func getJSON(ctx context.Context, httpClient *http.Client, userAgent, requestURL string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &ProviderError{Kind: KindNetwork, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req) // nosec G704
	if err != nil {
		return &ProviderError{Kind: KindNetwork, Err: fmt.Errorf("failed to make request: %w", redactURLError(err))}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{
			Kind:       kindForStatus(resp.StatusCode),
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &ProviderError{Kind: KindMalformed, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// errorMessage extracts the "message" field OpenWeatherMap puts in error bodies
func errorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return ""
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

// redactURLError drops the request URL, which carries the api key, from
// transport errors.
func redactURLError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
