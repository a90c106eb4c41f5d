package ipapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/1.2.3.4" {
			t.Errorf("expected path /json/1.2.3.4, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":"success","country":"Switzerland","countryCode":"CH","city":"Geneva","lat":46.2,"lon":6.15,"query":"1.2.3.4"}`)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL})

	loc, err := client.Locate(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loc.CountryCode != "CH" || loc.City != "Geneva" {
		t.Errorf("unexpected location: %+v", loc)
	}
	if loc.Lat != 46.2 {
		t.Errorf("expected lat 46.2, got %v", loc.Lat)
	}
}

func TestLocate_FailStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"fail","message":"private range","query":"10.0.0.1"}`)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL})

	_, err := client.Locate(context.Background(), "10.0.0.1")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}

func TestLocate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL})

	_, err := client.Locate(context.Background(), "1.2.3.4")
	if !errors.Is(err, ErrLookupFailed) {
		t.Fatalf("expected ErrLookupFailed, got %v", err)
	}
}

func TestLocate_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected with a canceled context")
	}))
	defer server.Close()

	// Pacing makes the limiter consult the context before the request.
	client := NewClient(Config{URL: server.URL, RatePerSecond: 0.001})
	_ = client.limiter.Allow()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Locate(ctx, "1.2.3.4"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
