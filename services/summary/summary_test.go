package summary

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"voyagent/models"
	"voyagent/services/llm"
)

func price(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

var austin = &models.TravelIntent{
	Location:      "austin",
	ArrivalDate:   "2026-06-10",
	DepartureDate: "2026-06-14",
	GuestQty:      2,
	Budget:        price("1500"),
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    decimal.NullDecimal
		currency string
		want     string
	}{
		{price("812.4"), "USD", "$812.40"},
		{price("99"), "", "$99.00"},
		{price("412.3"), "EUR", "412.30 EUR"},
		{decimal.NullDecimal{}, "USD", "Price unavailable"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.price, tt.currency); got != tt.want {
			t.Errorf("FormatPrice(%v, %q) = %q, expected %q", tt.price, tt.currency, got, tt.want)
		}
	}
}

func TestCompose_Hotels(t *testing.T) {
	offers := []models.NormalizedOffer{
		{Kind: models.KindHotel, Name: "Hotel Ella", Price: price("640"), Currency: "USD", Rating: 8.8, Link: "https://www.booking.com/hotel/us/hotel-ella.html"},
		{Kind: models.KindHotel, Name: "Unnamed Hotel"},
	}
	got := Compose(austin, models.KindHotel, offers)

	want := `Hotel options in austin, 2026-06-10 to 2026-06-14:

1. Hotel Ella
   Price: $640.00
   Rating: 8.8
   Link: https://www.booking.com/hotel/us/hotel-ella.html

2. Unnamed Hotel
   Price: Price unavailable
   Link: none available
`
	if got != want {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", got, want)
	}
	if Compose(austin, models.KindHotel, offers) != got {
		t.Error("Compose is not deterministic")
	}
}

func TestCompose_FlightsAndEmpty(t *testing.T) {
	trip := &models.TravelIntent{Origin: "new york", Location: "dallas", ArrivalDate: "2026-07-10", DepartureDate: "2026-07-13"}
	got := Compose(trip, models.KindFlight, []models.NormalizedOffer{{
		Kind: models.KindFlight, Name: "Delta Air Lines", Price: price("240"),
		Dates: models.OfferDates{Start: "2026-07-10T06:00:00", End: "2026-07-10T09:55:00"}, Duration: "3h 55m", Stops: 1,
	}})
	for _, part := range []string{
		"Flight options from new york to dallas, 2026-07-10 to 2026-07-13:",
		"Departs: 2026-07-10T06:00:00  Arrives: 2026-07-10T09:55:00",
		"Duration: 3h 55m, 1 stop",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("missing %q in:\n%s", part, got)
		}
	}

	if empty := Compose(trip, models.KindFlight, nil); !strings.Contains(empty, "No results found.") {
		t.Errorf("expected no-results line, got:\n%s", empty)
	}
}

func TestComposeTrip_BranchError(t *testing.T) {
	r := &Report{
		Intent: austin,
		Sections: []Section{
			{Kind: models.KindHotel, Offers: []models.NormalizedOffer{{Kind: models.KindHotel, Name: "Hotel Ella", Price: price("640")}}},
			{Kind: models.KindFlight, Err: &models.MissingFieldError{Field: "origin"}},
		},
		Estimated: true,
	}
	got := ComposeTrip(r)
	if !strings.HasPrefix(got, "Note: prices are estimated") {
		t.Errorf("expected estimated note first, got:\n%s", got)
	}
	if !strings.Contains(got, "Hotel Ella") || !strings.Contains(got, `No results: missing required field "origin"`) {
		t.Errorf("expected both sections, got:\n%s", got)
	}
}

func TestRecommendation(t *testing.T) {
	flights := []models.NormalizedOffer{
		{Name: "United Airlines", Price: price("300")},
		{Name: "Spirit Airlines", Price: price("180"), Stops: 1},
		{Name: "Unknown Airline"},
	}
	hotels := []models.NormalizedOffer{
		{Name: "Hotel Ella", Price: price("640")},
		{Name: "Economy Suites", Price: price("260")},
	}

	got := Recommendation(austin, flights, hotels, 4)
	for _, part := range []string{"Spirit Airlines at $180.00 (1 stop)", "Economy Suites at $260.00", "Estimated total: $440.00", "fits your $1500 budget"} {
		if !strings.Contains(got, part) {
			t.Errorf("missing %q in %q", part, got)
		}
	}

	tight := &models.TravelIntent{Budget: price("400")}
	if got := Recommendation(tight, flights, hotels, 4); !strings.Contains(got, "exceeds your $400 budget by $40") {
		t.Errorf("expected over-budget note, got %q", got)
	}
	euroHotels := []models.NormalizedOffer{{Name: "Hôtel du Louvre", Price: price("500"), Currency: "EUR"}}
	mixed := Recommendation(austin, flights, euroHotels, 4)
	if strings.Contains(mixed, "Estimated total") || strings.Contains(mixed, "budget") {
		t.Errorf("expected no total across currencies, got %q", mixed)
	}
	if !strings.Contains(mixed, "Hôtel du Louvre at 500.00 EUR") || !strings.Contains(mixed, "different currencies") {
		t.Errorf("unexpected mixed-currency recommendation %q", mixed)
	}
	if got := Recommendation(austin, nil, hotels, 4); got != "" {
		t.Errorf("expected no recommendation without flights, got %q", got)
	}
}

func TestAdvise(t *testing.T) {
	prompt := AdvicePrompt(austin, nil, []models.NormalizedOffer{{Name: "Hotel Ella", Price: price("640")}}, true)
	if !strings.Contains(prompt, "Hotel Ella - $640.00") || !strings.Contains(prompt, "prices are estimated") {
		t.Errorf("unexpected prompt:\n%s", prompt)
	}

	ok := llm.CompleterFunc(func(ctx context.Context, p string) (string, error) { return "  Stay at Hotel Ella.  ", nil })
	if got, err := Advise(context.Background(), ok, prompt, "fallback"); err != nil || got != "Stay at Hotel Ella." {
		t.Errorf("unexpected advice %q, %v", got, err)
	}

	failing := llm.CompleterFunc(func(ctx context.Context, p string) (string, error) { return "", errors.New("down") })
	if got, err := Advise(context.Background(), failing, prompt, "fallback"); err == nil || got != "fallback" {
		t.Errorf("expected fallback with error, got %q, %v", got, err)
	}
	if got, _ := Advise(context.Background(), nil, prompt, "fallback"); got != "fallback" {
		t.Errorf("expected fallback without completer, got %q", got)
	}
}

func TestRenderPDF(t *testing.T) {
	r := &Report{
		ID:     "abc",
		Query:  "hotel in Austin, TX from June 10th to June 14th for 2 adults",
		Intent: austin,
		Sections: []Section{
			{Kind: models.KindHotel, Offers: []models.NormalizedOffer{
				{Kind: models.KindHotel, Name: "Hotel San José", Price: price("640"), Rating: 8.8, Link: "https://example.com"},
			}},
			{Kind: models.KindFlight, Err: errors.New("provider unavailable")},
		},
		Recommendation: "Best value picks: ...",
	}
	data, err := RenderPDF(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
}
