package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinescout-engine/internal/config"
	"dinescout-engine/internal/domain"
	"dinescout-engine/internal/events"
	"dinescout-engine/internal/prefs"
)

type stubGeocoder struct {
	pt  domain.LatLng
	err error
}

func (s stubGeocoder) Geocode(_ context.Context, _ string) (domain.LatLng, error) {
	return s.pt, s.err
}

func testRecommendHandler(corpus []domain.Restaurant, geo *stubGeocoder) RecommendHandler {
	cfg := config.Default()

	var cfgVal, corpusVal, parserVal atomic.Value
	cfgVal.Store(cfg)
	corpusVal.Store(corpus)
	parserVal.Store(prefs.New(cfg))

	h := RecommendHandler{
		CfgVal:    &cfgVal,
		Corpus:    &corpusVal,
		ParserVal: &parserVal,
		Log:       zerolog.Nop(),
	}
	if geo != nil {
		h.Geocoder = *geo
	}
	return h
}

func corpusFixture() []domain.Restaurant {
	return []domain.Restaurant{
		{
			PlaceID: "it1", Name: "Trattoria", Address: "1 Via Roma, Digbeth",
			Coords:       &domain.LatLng{Lat: 52.4756, Lng: -1.8828},
			AvgRating:    4.5, TotalRatings: 120,
			CuisineTags: []string{"Italian"}, AspectTags: []string{"Service"},
		},
		{
			PlaceID: "in1", Name: "Curry House", Address: "2 Spice Ln, Moseley",
			Coords:       &domain.LatLng{Lat: 52.4450, Lng: -1.8880},
			AvgRating:    4.2, TotalRatings: 300,
			CuisineTags: []string{"Indian"}, AspectTags: []string{},
		},
	}
}

func postRecommend(t *testing.T, h RecommendHandler, body string) (*httptest.ResponseRecorder, recommendResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/recommend", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Recommend(w, req)

	var out recommendResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestRecommend(t *testing.T) {
	h := testRecommendHandler(corpusFixture(), nil)

	w, out := postRecommend(t, h, `{"query":"italian with over 4 stars"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Italian", out.Preferences.Cuisine)
	assert.False(t, out.LocationResolved)
	require.Len(t, out.Restaurants, 1)
	assert.Equal(t, "it1", out.Restaurants[0].PlaceID)
}

func TestRecommendBadJSON(t *testing.T) {
	h := testRecommendHandler(corpusFixture(), nil)
	w, _ := postRecommend(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendEmptyQuery(t *testing.T) {
	h := testRecommendHandler(corpusFixture(), nil)
	w, _ := postRecommend(t, h, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecommendWithCoordinates(t *testing.T) {
	h := testRecommendHandler(corpusFixture(), nil)

	w, out := postRecommend(t, h,
		`{"query":"anywhere good","lat":52.4756,"lng":-1.8828,"radiusM":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, out.LocationResolved)
	require.Len(t, out.Restaurants, 1)
	assert.Equal(t, "it1", out.Restaurants[0].PlaceID)
	require.NotNil(t, out.Restaurants[0].DistanceM)
}

func TestRecommendGeocodeSuccess(t *testing.T) {
	h := testRecommendHandler(corpusFixture(),
		&stubGeocoder{pt: domain.LatLng{Lat: 52.4756, Lng: -1.8828}})

	w, out := postRecommend(t, h, `{"query":"food in digbeth","radiusM":500}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, out.LocationResolved)
	require.Len(t, out.Restaurants, 1)
	assert.Equal(t, "it1", out.Restaurants[0].PlaceID)
}

func TestRecommendGeocodeFailureDegrades(t *testing.T) {
	h := testRecommendHandler(corpusFixture(),
		&stubGeocoder{err: errors.New("boom")})

	// geocoding is down: the request still succeeds and the address
	// substring fallback takes over
	w, out := postRecommend(t, h, `{"query":"food in digbeth"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, out.LocationResolved)
	require.Len(t, out.Restaurants, 1)
	assert.Equal(t, "it1", out.Restaurants[0].PlaceID)
}

func TestRestaurantsList(t *testing.T) {
	var corpusVal atomic.Value
	corpusVal.Store(corpusFixture())
	h := RestaurantsHandler{Corpus: &corpusVal}

	req := httptest.NewRequest(http.MethodGet, "/restaurants?limit=1", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var out []domain.Restaurant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 1)

	req = httptest.NewRequest(http.MethodGet, "/restaurants?limit=x", nil)
	w = httptest.NewRecorder()
	h.List(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	var corpusVal atomic.Value
	corpusVal.Store(corpusFixture())
	h := HealthHandler{Corpus: &corpusVal, Hub: events.NewHub()}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, true, out["ok"])
	assert.Equal(t, float64(2), out["restaurants"])
}

func TestMethodMux(t *testing.T) {
	handler := methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(204) },
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	w = httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, 204, w.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})
	h := Chain(inner, RequestID)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))

	// a supplied id is propagated, not replaced
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc123")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc123", seen)
}

func TestWriteError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	WriteError(w, req, http.StatusTeapot, "odd_code", "something odd")

	assert.Equal(t, http.StatusTeapot, w.Code)
	var e APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.Equal(t, "odd_code", e.Error.Code)
	assert.Equal(t, "something odd", e.Error.Message)
}
