package geoip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"
)

// Config holds HTTP locator configuration. The endpoint must contain a
// "%s" placeholder for the IP address and answer with a JSON body the
// locator can map onto Location.
type Config struct {
	Endpoint string        `env:"GEOIP_ENDPOINT" envDefault:"http://ip-api.com/json/%s"`
	Timeout  time.Duration `env:"GEOIP_TIMEOUT" envDefault:"2s"`
}

// DefaultConfig returns default HTTP locator configuration.
func DefaultConfig() Config {
	return Config{
		Endpoint: "http://ip-api.com/json/%s",
		Timeout:  2 * time.Second,
	}
}

// HTTPLocator resolves IP addresses against a JSON geo-IP web service.
type HTTPLocator struct {
	endpoint string
	client   *resty.Client
}

type geoResponse struct {
	Status     string `json:"status"`
	Country    string `json:"countryCode"`
	City       string `json:"city"`
	RegionCode string `json:"region"`
}

// NewHTTPLocator creates a locator calling the configured endpoint.
func NewHTTPLocator(cfg Config) *HTTPLocator {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &HTTPLocator{
		endpoint: cfg.Endpoint,
		client:   client,
	}
}

// Locate resolves the IP to a coarse location. A non-success answer from
// the backend is reported as ErrLookupFailed.
func (l *HTTPLocator) Locate(ctx context.Context, ip string) (*Location, error) {
	if ip == "" {
		return nil, ErrEmptyAddress
	}

	var body geoResponse
	resp, err := l.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get(fmt.Sprintf(l.endpoint, ip))
	if err != nil {
		return nil, errors.Join(ErrLookupFailed, err)
	}
	if resp.IsError() || body.Status == "fail" || body.Country == "" {
		return nil, ErrLookupFailed
	}

	return &Location{
		Country: body.Country,
		City:    body.City,
		Zone:    body.RegionCode,
	}, nil
}

// Close releases the underlying HTTP client resources.
func (l *HTTPLocator) Close() error {
	return l.client.Close()
}
