package offers

import (
	"net/url"
	"strconv"
	"strings"

	"voyagent/models"
)

const googleSearchURL = "https://www.google.com/search?q="

// LinkChain resolves the best booking link for a raw provider entry. Each
// step runs only when the previous ones produced nothing.
type LinkChain struct {
	// Direct fields holding a full URL, in priority order.
	Direct []string
	// Slug fields and the URL template their value is placed into.
	Slug        []string
	SlugPattern string
	// Fields holding the property's own website.
	Website []string
}

var (
	HotelLinks = LinkChain{
		Direct:      []string{"booking_url", "deep_link", "affiliate_url", "url", "composite_url", "click_url"},
		Slug:        []string{"hotel_slug", "url_slug"},
		SlugPattern: "https://www.booking.com/hotel/us/%s.html",
		Website:     []string{"hotel_website"},
	}
	FlightLinks = LinkChain{
		Direct: []string{"deeplink", "deep_link", "booking_url", "url"},
	}
)

// LinksFor returns the chain used for kind.
func LinksFor(kind models.Kind) LinkChain {
	if kind == models.KindFlight {
		return FlightLinks
	}
	return HotelLinks
}

// Resolve returns the first usable link for entry. When the entry carries
// no URL, a web search for terms is returned; the result is empty only when
// both are missing.
func (c LinkChain) Resolve(entry map[string]any, terms ...string) string {
	for _, f := range c.Direct {
		if s := firstString(entry, f); isHTTP(s) {
			return s
		}
	}
	if c.SlugPattern != "" {
		if slug := firstString(entry, c.Slug...); slug != "" {
			return strings.Replace(c.SlugPattern, "%s", url.PathEscape(slug), 1)
		}
	}
	for _, f := range c.Website {
		if s := firstString(entry, f); isHTTP(s) {
			return s
		}
	}
	return SearchURL(terms...)
}

// SearchURL builds a web search link from the non-empty terms.
func SearchURL(terms ...string) string {
	words := make([]string, 0, len(terms))
	for _, t := range terms {
		words = append(words, strings.Fields(t)...)
	}
	if len(words) == 0 {
		return ""
	}
	return googleSearchURL + url.QueryEscape(strings.Join(words, " "))
}

// DecorateBookingURL adds the stay's dates and party to booking.com links.
// Other links and unparseable URLs are returned unchanged.
func DecorateBookingURL(link string, intent *models.TravelIntent) string {
	if intent == nil || link == "" {
		return link
	}
	u, err := url.Parse(link)
	if err != nil || !strings.HasSuffix(u.Hostname(), "booking.com") {
		return link
	}

	q := u.Query()
	if intent.ArrivalDate != "" {
		q.Set("checkin", intent.ArrivalDate)
	}
	if intent.DepartureDate != "" {
		q.Set("checkout", intent.DepartureDate)
	}
	q.Set("group_adults", strconv.Itoa(intent.GuestQty))
	q.Set("group_children", strconv.Itoa(intent.ChildrenQty))
	if intent.ChildrenQty > 0 && len(intent.ChildrenAge) > 0 {
		q.Set("age", intent.ChildrenAgeString())
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func isHTTP(s string) bool {
	return strings.HasPrefix(s, "http")
}
