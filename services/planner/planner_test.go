package planner

import (
	"errors"
	"testing"

	"voyagent/models"
	"voyagent/services/location"
)

func intent(origin, dest string) *models.TravelIntent {
	return &models.TravelIntent{
		Origin:        origin,
		Location:      dest,
		ArrivalDate:   "2026-06-10",
		DepartureDate: "2026-06-14",
		GuestQty:      2,
		ChildrenQty:   2,
		ChildrenAge:   []int{5, 8},
		TravelPurpose: "business",
	}
}

func TestHotelQuery(t *testing.T) {
	p := New(nil, "")
	q, err := p.HotelQuery(intent("", "austin"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{
		"room_qty":                  "1",
		"guest_qty":                 "2",
		"children_qty":              "2",
		"children_age":              "5,8",
		"bbox":                      "25.837377,36.500704,-106.645646,-93.508292",
		"price_filter_currencycode": "USD",
		"languagecode":              "en-us",
		"travel_purpose":            "business",
		"order_by":                  "popularity",
		"arrival_date":              "2026-06-10",
		"departure_date":            "2026-06-14",
		"categories_filter":         "class::1,class::2,class::3",
		"offset":                    "0",
	}
	for k, v := range want {
		if q.Params[k] != v {
			t.Errorf("param %s: expected %q, got %q", k, v, q.Params[k])
		}
	}
	if len(q.Params) != len(want) {
		t.Errorf("expected %d params, got %d", len(want), len(q.Params))
	}
	if q.Kind != models.KindHotel || q.LowConfidence {
		t.Errorf("unexpected kind/confidence: %s %v", q.Kind, q.LowConfidence)
	}
}

func TestHotelQuery_UnknownRegion(t *testing.T) {
	q, err := New(nil, "").HotelQuery(intent("", "atlantis"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Params["bbox"] != location.DefaultUS.String() {
		t.Errorf("expected default box, got %s", q.Params["bbox"])
	}
	if !q.LowConfidence {
		t.Error("expected unknown region to be low-confidence")
	}
}

func TestHotelQuery_MissingLocation(t *testing.T) {
	_, err := New(nil, "").HotelQuery(intent("", " "))
	var mf *models.MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "location" {
		t.Fatalf("expected missing location, got %v", err)
	}
}

func TestFlyScraperQuery(t *testing.T) {
	tests := []struct {
		name          string
		origin        string
		dest          string
		wantOrigin    string
		wantDest      string
		lowConfidence bool
	}{
		{"both known", "New York", "dallas", "NYCA", "DFWA", false},
		{"unknown destination", "boston", "Springfield", "BOSA", "SPRINGFIELDA", true},
	}
	p := New(nil, FlightProviderFlyScraper)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := p.FlightQuery(intent(tt.origin, tt.dest))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Params["originSkyId"] != tt.wantOrigin || q.Params["destinationSkyId"] != tt.wantDest {
				t.Errorf("unexpected codes %s -> %s", q.Params["originSkyId"], q.Params["destinationSkyId"])
			}
			if q.Params["departureDate"] != "2026-06-10" || q.Params["adults"] != "2" {
				t.Errorf("unexpected params %v", q.Params)
			}
			if q.Params["cabinClass"] != "economy" || q.Params["sort"] != "best" || q.Params["currency"] != "USD" {
				t.Errorf("unexpected fixed params %v", q.Params)
			}
			if q.LowConfidence != tt.lowConfidence {
				t.Errorf("expected low confidence %v", tt.lowConfidence)
			}
		})
	}
}

func TestAmadeusQuery(t *testing.T) {
	p := New(nil, FlightProviderAmadeus)
	q, err := p.FlightQuery(intent("LHR", "paris"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Params["originLocationCode"] != "LON" || q.Params["destinationLocationCode"] != "PAR" {
		t.Errorf("unexpected codes %v", q.Params)
	}
	if q.Params["returnDate"] != "2026-06-14" || q.Params["max"] != "10" || q.Params["children"] != "2" {
		t.Errorf("unexpected params %v", q.Params)
	}
	if q.LowConfidence {
		t.Error("expected known codes")
	}
}

func TestFlightQuery_MissingOrigin(t *testing.T) {
	_, err := New(nil, "").Query(models.KindFlight, intent("", "paris"))
	var mf *models.MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "origin" {
		t.Fatalf("expected missing origin, got %v", err)
	}
}

func TestCodeOverrides(t *testing.T) {
	codes := location.NewCodes().Merge(location.SkyID, map[string]string{"springfield": "SPIA"})
	q, _ := New(codes, "").FlyScraperQuery(intent("boston", "Springfield"))
	if q.Params["destinationSkyId"] != "SPIA" || q.LowConfidence {
		t.Errorf("expected override to apply, got %s (low=%v)", q.Params["destinationSkyId"], q.LowConfidence)
	}
}
