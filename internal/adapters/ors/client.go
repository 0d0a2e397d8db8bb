package ors

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/domain"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.openrouteservice.org"

// geocodeCache is the persistent address cache consulted before the API.
type geocodeCache interface {
	Get(ctx context.Context, address string) (domain.GeoPoint, bool, error)
	Put(ctx context.Context, address string, p domain.GeoPoint) error
}

// Client talks to OpenRouteService. It implements GeometryProvider through
// the directions API and Geocoder through the geocode API.
//
// The client is safe for concurrent use.
type Client struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	country      string
	geocodeCache geocodeCache
	backoff      time.Duration
}

type Option func(*Client)

// WithBaseURL points the client at another ORS deployment.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			c.baseURL = u
		}
	}
}

// WithGeocodeCache enables persistent geocode caching.
func WithGeocodeCache(gc geocodeCache) Option {
	return func(c *Client) { c.geocodeCache = gc }
}

// WithCountry restricts geocoding to one ISO country code.
func WithCountry(code string) Option {
	return func(c *Client) { c.country = code }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.session = hc }
}

func withBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	c := &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		country: "FR",
		backoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// profileFor maps a leg mode to an ORS routing profile.
func profileFor(mode domain.Mode) string {
	switch mode {
	case domain.ModeBike:
		return "cycling-regular"
	case domain.ModeBus:
		return "driving-car"
	default:
		return "foot-walking"
	}
}
