package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
  "status": "OK",
  "results": [
    {
      "address_components": [
        {"long_name": "Centro", "types": ["neighborhood", "political"]},
        {"long_name": "Guadalajara", "types": ["locality", "political"]}
      ]
    },
    {
      "address_components": [
        {"long_name": "Jalisco", "types": ["administrative_area_level_1"]}
      ]
    }
  ]
}`

func TestReverseGeocode(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "test-key"})
	res, err := c.ReverseGeocode(context.Background(), 20.6736, -103.344)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status)
	// components flattened across results, response order preserved
	require.Len(t, res.Components, 3)
	assert.Equal(t, "Centro", res.Components[0].LongName)
	assert.Equal(t, "Jalisco", res.Components[2].LongName)

	assert.Contains(t, gotQuery, "latlng=20.6736%2C-103.344")
	assert.Contains(t, gotQuery, "key=test-key")
}

func TestReverseGeocodeNonOKStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer srv.Close()

	res, err := New(Config{BaseURL: srv.URL}).ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "ZERO_RESULTS", res.Status)
	assert.Empty(t, res.Components)
}

func TestReverseGeocodeHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(Config{BaseURL: srv.URL}).ReverseGeocode(context.Background(), 0, 0)
	assert.Error(t, err)
}

func TestReverseGeocodeContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := New(Config{BaseURL: srv.URL}).ReverseGeocode(ctx, 0, 0)
	assert.Error(t, err)
}
