package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"dinescout-engine/internal/domain"
)

// Geocoder resolves a free-text location name to coordinates. The ranking
// pipeline consumes this as a narrow collaborator interface and must keep
// working when it fails.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (domain.LatLng, error)
}

// ErrNotFound means the service answered but had no result for the name.
var ErrNotFound = errors.New("location not found")

// errRateLimited marks responses worth retrying with backoff.
var errRateLimited = errors.New("geocoder rate limited")

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	ReqPerSec  float64
	Burst      int
	MaxRetries int
}

// Client talks to a Google-style geocoding endpoint. Retries are bounded and
// only rate-limit style failures back off and retry; ZERO_RESULTS maps to
// ErrNotFound and other API errors fail fast.
type Client struct {
	cfg     Config
	hc      *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

func New(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.ReqPerSec <= 0 {
		cfg.ReqPerSec = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}
	return &Client{
		cfg:     cfg,
		hc:      &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.ReqPerSec), cfg.Burst),
		log:     log.With().Str("component", "geocoder").Logger(),
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (c *Client) Geocode(ctx context.Context, location string) (domain.LatLng, error) {
	baseDelay := time.Second

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.LatLng{}, err
		}

		ll, err := c.geocodeOnce(ctx, location)
		if err == nil {
			return ll, nil
		}
		if !errors.Is(err, errRateLimited) {
			return domain.LatLng{}, err
		}

		delay := baseDelay*(1<<attempt) + time.Duration(rand.Int63n(int64(time.Second)))
		c.log.Warn().Str("location", location).Int("attempt", attempt+1).
			Dur("delay", delay).Msg("geocoder rate limited, backing off")
		select {
		case <-ctx.Done():
			return domain.LatLng{}, ctx.Err()
		case <-time.After(delay):
		}
	}
	return domain.LatLng{}, fmt.Errorf("geocode %q: retries exhausted", location)
}

func (c *Client) geocodeOnce(ctx context.Context, location string) (domain.LatLng, error) {
	q := url.Values{}
	q.Set("address", location)
	if c.cfg.APIKey != "" {
		q.Set("key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.LatLng{}, err
	}
	req.Header.Set("User-Agent", "DineScout/1.0 (+local)")

	res, err := c.hc.Do(req)
	if err != nil {
		return domain.LatLng{}, fmt.Errorf("geocode request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusTooManyRequests {
		return domain.LatLng{}, errRateLimited
	}
	if res.StatusCode >= 400 {
		return domain.LatLng{}, fmt.Errorf("geocode status %d", res.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return domain.LatLng{}, fmt.Errorf("geocode decode: %w", err)
	}

	switch body.Status {
	case "OK":
		if len(body.Results) == 0 {
			return domain.LatLng{}, ErrNotFound
		}
		loc := body.Results[0].Geometry.Location
		return domain.LatLng{Lat: loc.Lat, Lng: loc.Lng}, nil
	case "ZERO_RESULTS":
		return domain.LatLng{}, ErrNotFound
	case "OVER_QUERY_LIMIT":
		return domain.LatLng{}, errRateLimited
	default:
		return domain.LatLng{}, fmt.Errorf("geocode api status %s", body.Status)
	}
}
