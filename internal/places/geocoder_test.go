package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return New(Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		ReqPerSec:  1000,
		Burst:      1000,
		MaxRetries: 2,
	}, zerolog.Nop())
}

func TestGeocodeOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Digbeth", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":52.4756,"lng":-1.8828}}}]}`)
	}))
	defer srv.Close()

	ll, err := testClient(srv.URL).Geocode(context.Background(), "Digbeth")
	require.NoError(t, err)
	assert.InDelta(t, 52.4756, ll.Lat, 1e-9)
	assert.InDelta(t, -1.8828, ll.Lng, 1e-9)
}

func TestGeocodeZeroResults(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "nowhereville")
	assert.ErrorIs(t, err, ErrNotFound)
	// not-found must not be retried
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeocodeFatalStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","results":[]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Digbeth")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGeocodeRetriesRateLimit(t *testing.T) {
	if testing.Short() {
		t.Skip("backoff sleep")
	}
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			fmt.Fprint(w, `{"status":"OVER_QUERY_LIMIT"}`)
			return
		}
		fmt.Fprint(w, `{"status":"OK","results":[{"geometry":{"location":{"lat":1,"lng":2}}}]}`)
	}))
	defer srv.Close()

	ll, err := testClient(srv.URL).Geocode(context.Background(), "Digbeth")
	require.NoError(t, err)
	assert.Equal(t, 1.0, ll.Lat)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGeocodeRetriesExhausted(t *testing.T) {
	if testing.Short() {
		t.Skip("backoff sleep")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "Digbeth")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retries exhausted")
}

func TestGeocodeContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OVER_QUERY_LIMIT"}`)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testClient(srv.URL).Geocode(ctx, "Digbeth")
	assert.ErrorIs(t, err, context.Canceled)
}
