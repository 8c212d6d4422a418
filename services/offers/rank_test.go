package offers

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"voyagent/models"
)

func priced(name string, price string) models.NormalizedOffer {
	o := models.NormalizedOffer{Kind: models.KindFlight, Name: name}
	if price != "" {
		o.Price = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
	return o
}

func names(offers []models.NormalizedOffer) []string {
	out := make([]string, len(offers))
	for i, o := range offers {
		out[i] = o.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRank(t *testing.T) {
	in := []models.NormalizedOffer{
		priced("b", "300"),
		priced("none-1", ""),
		priced("a", "120"),
		priced("c", "300"),
		priced("none-2", ""),
		priced("d", "80"),
	}

	tests := []struct {
		name string
		opts RankOptions
		want []string
	}{
		{"sort with unpriced last", RankOptions{Limit: 10}, []string{"d", "a", "b", "c", "none-1", "none-2"}},
		{"default limit", RankOptions{}, []string{"d", "a", "b", "c", "none-1"}},
		{"truncate", RankOptions{Limit: 2}, []string{"d", "a"}},
		{"ceiling keeps unpriced", RankOptions{Limit: 10, Ceiling: decimal.NewNullDecimal(decimal.NewFromInt(120))}, []string{"d", "a", "none-1", "none-2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Rank(in, tt.opts))
			if !equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if in[0].Name != "b" {
		t.Error("Rank modified its input")
	}
}

func TestFlightCeiling_BudgetExample(t *testing.T) {
	intent := &models.TravelIntent{Budget: decimal.NewNullDecimal(decimal.NewFromInt(1000))}

	ceiling := FlightCeiling(intent, 0.4)
	if !ceiling.Valid || !ceiling.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("expected ceiling 400, got %v", ceiling)
	}

	got := names(Rank([]models.NormalizedOffer{priced("over", "450"), priced("under", "399")}, RankOptions{Ceiling: ceiling}))
	if !equal(got, []string{"under"}) {
		t.Errorf("expected only the 399 offer, got %v", got)
	}
}

func TestFlightCeiling(t *testing.T) {
	explicit := &models.TravelIntent{
		Budget:       decimal.NewNullDecimal(decimal.NewFromInt(1000)),
		FlightBudget: decimal.NewNullDecimal(decimal.NewFromInt(650)),
	}
	if c := FlightCeiling(explicit, 0.4); !c.Decimal.Equal(decimal.NewFromInt(650)) {
		t.Errorf("expected the flight budget to win, got %v", c)
	}
	if c := FlightCeiling(&models.TravelIntent{}, 0.4); c.Valid {
		t.Errorf("expected no ceiling without a budget, got %v", c)
	}
	if c := FlightCeiling(nil, 0.4); c.Valid {
		t.Errorf("expected no ceiling for nil intent, got %v", c)
	}
}

func TestLinkChain_Order(t *testing.T) {
	tests := []struct {
		name  string
		entry map[string]any
		want  string
	}{
		{
			"direct field beats slug",
			map[string]any{"deep_link": "https://a.example/1", "hotel_slug": "x"},
			"https://a.example/1",
		},
		{
			"non-http direct field is skipped",
			map[string]any{"booking_url": "/relative", "url": "https://b.example/2"},
			"https://b.example/2",
		},
		{
			"slug before website",
			map[string]any{"url_slug": "moxy-austin", "hotel_website": "https://moxy.example"},
			"https://www.booking.com/hotel/us/moxy-austin.html",
		},
		{
			"website before search",
			map[string]any{"hotel_website": "https://moxy.example", "hotel_name": "Moxy"},
			"https://moxy.example",
		},
		{
			"search from name and city",
			map[string]any{"hotel_name": "Hotel San José", "city": "Austin"},
			"https://www.google.com/search?q=" + url.QueryEscape("Hotel San José Austin"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HotelLinks.Resolve(tt.entry, firstString(tt.entry, "hotel_name"), firstString(tt.entry, "city"))
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if got := HotelLinks.Resolve(map[string]any{}, "", ""); got != "" {
		t.Errorf("expected empty link without name or URL, got %q", got)
	}
}

func TestDecorateBookingURL(t *testing.T) {
	intent := &models.TravelIntent{
		ArrivalDate:   "2026-06-10",
		DepartureDate: "2026-06-14",
		GuestQty:      2,
		ChildrenQty:   2,
		ChildrenAge:   []int{4, 7},
	}

	got := DecorateBookingURL("https://www.booking.com/hotel/us/x.html?aid=1", intent)
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("bad url %s", got)
	}
	q := u.Query()
	if q.Get("aid") != "1" || q.Get("checkin") != "2026-06-10" || q.Get("checkout") != "2026-06-14" ||
		q.Get("group_adults") != "2" || q.Get("group_children") != "2" || q.Get("age") != "4,7" {
		t.Errorf("unexpected query %v", q)
	}

	other := "https://www.google.com/search?q=x"
	if DecorateBookingURL(other, intent) != other {
		t.Error("non-booking links must not change")
	}
}
