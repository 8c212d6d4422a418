package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"voyagent/models"
)

func TestBooking_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/properties/list-by-map" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-rapidapi-key") != "k" || r.Header.Get("x-rapidapi-host") != DefaultBookingHost {
			t.Errorf("missing rapidapi headers: %v", r.Header)
		}
		if r.URL.Query().Get("bbox") != "1,2,3,4" {
			t.Errorf("expected bbox param, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"result":[{"hotel_name":"Driskill"}]}`))
	}))
	defer srv.Close()

	b := NewBooking("k", "", time.Second).WithBaseURL(srv.URL)
	raw, err := b.Search(context.Background(), models.ProviderQuery{
		Kind:   models.KindHotel,
		Params: map[string]string{"bbox": "1,2,3,4"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := raw["result"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("unexpected payload %v", raw)
	}
}

func TestFlyScraper_Errors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{"rate limited", http.StatusTooManyRequests, `{"message":"too many requests"}`, http.StatusTooManyRequests},
		{"not json", http.StatusOK, `<html>oops</html>`, http.StatusOK},
		{"array body", http.StatusOK, `[1,2]`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/flight/search" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewFlyScraper("k", "", time.Second).WithBaseURL(srv.URL).
				Search(context.Background(), models.ProviderQuery{Kind: models.KindFlight})
			var ue *models.UpstreamError
			if !errors.As(err, &ue) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if ue.Provider != "flyscraper" || ue.Status != tt.wantStatus {
				t.Errorf("unexpected error %+v", ue)
			}
		})
	}
}

func TestRapidAPI_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewBooking("k", "", 5*time.Second).WithBaseURL(srv.URL).Search(ctx, models.ProviderQuery{})
	var ue *models.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline to be wrapped, got %v", err)
	}
}

func TestAmadeus_TokenIsCached(t *testing.T) {
	var tokenCalls, searchCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/security/oauth2/token":
			atomic.AddInt32(&tokenCalls, 1)
			if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" {
				t.Errorf("bad token request: %v", r.Form)
			}
			w.Write([]byte(`{"access_token":"tok","expires_in":1799}`))
		case "/v2/shopping/flight-offers":
			atomic.AddInt32(&searchCalls, 1)
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("missing bearer token")
			}
			if r.URL.Query().Get("originLocationCode") != "NYC" {
				t.Errorf("unexpected query %s", r.URL.RawQuery)
			}
			w.Write([]byte(`{"data":[{"price":{"grandTotal":"199.00","currency":"USD"}}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewAmadeus("id", "secret", "test", time.Second).WithBaseURL(srv.URL)
	q := models.ProviderQuery{Kind: models.KindFlight, Params: map[string]string{"originLocationCode": "NYC"}}
	for i := 0; i < 3; i++ {
		if _, err := c.Search(context.Background(), q); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if atomic.LoadInt32(&tokenCalls) != 1 || atomic.LoadInt32(&searchCalls) != 3 {
		t.Errorf("expected 1 token and 3 search calls, got %d and %d", tokenCalls, searchCalls)
	}
}

func TestAmadeus_NotConfigured(t *testing.T) {
	_, err := NewAmadeus("", "", "test", 0).Search(context.Background(), models.ProviderQuery{})
	var ue *models.UpstreamError
	if !errors.As(err, &ue) || ue.Provider != "amadeus" {
		t.Fatalf("expected amadeus UpstreamError, got %v", err)
	}
}

func TestAmadeus_AuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	_, err := NewAmadeus("id", "bad", "test", time.Second).WithBaseURL(srv.URL).
		Search(context.Background(), models.ProviderQuery{})
	var ue *models.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestSample_Search(t *testing.T) {
	s := NewSample()

	hotels, err := s.Search(context.Background(), models.ProviderQuery{
		Kind:   models.KindHotel,
		Params: map[string]string{"arrival_date": "2026-06-10", "departure_date": "2026-06-14"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := hotels["result"].([]any)
	first := list[0].(map[string]any)
	if first["min_total_price"].(float64) != 600 {
		t.Errorf("expected 4 nights at 150, got %v", first["min_total_price"])
	}

	flights, err := s.Search(context.Background(), models.ProviderQuery{
		Kind:   models.KindFlight,
		Params: map[string]string{"originSkyId": "NYCA", "destinationSkyId": "DFWA", "departureDate": "2026-06-10", "adults": "2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	its := flights["data"].(map[string]any)["itineraries"].([]any)
	price := its[0].(map[string]any)["price"].(map[string]any)["raw"].(float64)
	if price != 480 {
		t.Errorf("expected 2 x 240, got %v", price)
	}
}
