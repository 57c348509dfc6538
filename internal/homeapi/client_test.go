package homeapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dopc-calculator/internal/pricing"
)

const staticBody = `{
  "venue_raw": {
    "location": {"coordinates": [24.92813512, 60.17012143]}
  }
}`

const dynamicBody = `{
  "venue_raw": {
    "delivery_specs": {
      "order_minimum_no_surcharge": 1000,
      "delivery_pricing": {
        "base_price": 190,
        "distance_ranges": [
          {"min": 0, "max": 500, "a": 0, "b": 0, "flag": null},
          {"min": 500, "max": 1000, "a": 100, "b": 1, "flag": null},
          {"min": 1000, "max": 0, "a": 0, "b": 0, "flag": null}
        ]
      }
    }
  }
}`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/", MaxAttempts: 3, Backoff: time.Millisecond}, srv.Client(), discardLogger())
}

func venueMux(static, dynamic string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/home-assignment-api/v1/venues/home-assignment-venue-helsinki/static", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, static)
	})
	mux.HandleFunc("/home-assignment-api/v1/venues/home-assignment-venue-helsinki/dynamic", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, dynamic)
	})
	return mux
}

func TestFetchVenue(t *testing.T) {
	c := newTestClient(t, venueMux(staticBody, dynamicBody))

	v, err := c.FetchVenue(context.Background(), "home-assignment-venue-helsinki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Location.Latitude != 60.17012143 || v.Location.Longitude != 24.92813512 {
		t.Fatalf("unexpected location: %+v", v.Location)
	}
	if v.BasePrice != 190 || v.MinimumOrder != 1000 {
		t.Fatalf("unexpected pricing: %+v", v)
	}
	want := []pricing.DistanceRange{
		{Min: 0, Max: 500, A: 0, B: 0},
		{Min: 500, Max: 1000, A: 100, B: 1},
		{Min: 1000, Max: 0, A: 0, B: 0},
	}
	if len(v.DistanceRanges) != len(want) {
		t.Fatalf("got %d ranges, want %d", len(v.DistanceRanges), len(want))
	}
	for i := range want {
		if v.DistanceRanges[i] != want[i] {
			t.Fatalf("range %d = %+v, want %+v", i, v.DistanceRanges[i], want[i])
		}
	}
}

func TestGetStaticLocationShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"lon lat array", `{"venue_raw":{"location":{"coordinates":[24.9,60.1]}}}`},
		{"coordinates object", `{"venue_raw":{"location":{"coordinates":{"lat":60.1,"lon":24.9}}}}`},
		{"flat lat lon", `{"venue_raw":{"location":{"lat":60.1,"lon":24.9}}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, venueMux(tc.body, dynamicBody))
			s, err := c.GetStatic(context.Background(), "home-assignment-venue-helsinki")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if s.Location.Latitude != 60.1 || s.Location.Longitude != 24.9 {
				t.Fatalf("unexpected location: %+v", s.Location)
			}
		})
	}
}

func TestFetchVenueIncompletePayload(t *testing.T) {
	cases := []struct {
		name    string
		static  string
		dynamic string
	}{
		{"no venue_raw", `{}`, dynamicBody},
		{"no location", `{"venue_raw":{}}`, dynamicBody},
		{"short coordinates", `{"venue_raw":{"location":{"coordinates":[24.9]}}}`, dynamicBody},
		{"no minimum", staticBody, `{"venue_raw":{"delivery_specs":{"delivery_pricing":{"base_price":190,"distance_ranges":[]}}}}`},
		{"no base price", staticBody, `{"venue_raw":{"delivery_specs":{"order_minimum_no_surcharge":1000,"delivery_pricing":{"distance_ranges":[]}}}}`},
		{"no ranges", staticBody, `{"venue_raw":{"delivery_specs":{"order_minimum_no_surcharge":1000,"delivery_pricing":{"base_price":190}}}}`},
		{"not json", `<html>`, dynamicBody},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, venueMux(tc.static, tc.dynamic))
			_, err := c.FetchVenue(context.Background(), "home-assignment-venue-helsinki")
			if !errors.Is(err, pricing.ErrDataUnavailable) {
				t.Fatalf("expected ErrDataUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchVenueNotFoundIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"message":"venue not found"}`, http.StatusNotFound)
	}))

	_, err := c.FetchVenue(context.Background(), "unknown")
	if !errors.Is(err, pricing.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Fatalf("expected wrapped 404 StatusError, got %v", err)
	}
	// One request per endpoint at most; a 404 on either may cancel the other.
	if n := hits.Load(); n > 2 {
		t.Fatalf("expected no retries, got %d requests", n)
	}
}

func TestGetDynamicRetriesTransientFailures(t *testing.T) {
	var hits atomic.Int32
	mux := venueMux(staticBody, dynamicBody)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		mux.ServeHTTP(w, r)
	}))

	d, err := c.GetDynamic(context.Background(), "home-assignment-venue-helsinki")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.BasePrice != 190 {
		t.Fatalf("unexpected base price %d", d.BasePrice)
	}
	if n := hits.Load(); n != 3 {
		t.Fatalf("expected 3 requests, got %d", n)
	}
}

func TestGetDynamicGivesUpAfterMaxAttempts(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "down", http.StatusBadGateway)
	}))

	_, err := c.GetDynamic(context.Background(), "home-assignment-venue-helsinki")
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 StatusError, got %v", err)
	}
	if n := hits.Load(); n != 3 {
		t.Fatalf("expected 3 requests, got %d", n)
	}
}

func TestVenueURLEscapesSlug(t *testing.T) {
	c := New(Config{BaseURL: "https://example.com/"}, nil, nil)
	got := c.venueURL("a/b c", "static")
	want := "https://example.com/home-assignment-api/v1/venues/a%2Fb%20c/static"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
