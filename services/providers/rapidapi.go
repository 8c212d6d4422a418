package providers

import "time"

const (
	DefaultBookingHost    = "apidojo-booking-v1.p.rapidapi.com"
	DefaultFlyScraperHost = "flyscraper.p.rapidapi.com"
)

// Booking searches hotels through the Booking.com list-by-map endpoint.
type Booking struct{ *rapidAPI }

// NewBooking returns a hotel provider; an empty host uses the public one.
func NewBooking(apiKey, host string, timeout time.Duration) *Booking {
	if host == "" {
		host = DefaultBookingHost
	}
	return &Booking{newRapidAPI("booking", apiKey, host, "/properties/list-by-map", timeout)}
}

// WithBaseURL overrides the scheme and host requests are sent to.
func (b *Booking) WithBaseURL(u string) *Booking {
	b.baseURL = u
	return b
}

// FlyScraper searches one-way flights by sky ID.
type FlyScraper struct{ *rapidAPI }

// NewFlyScraper returns a flight provider; an empty host uses the public one.
func NewFlyScraper(apiKey, host string, timeout time.Duration) *FlyScraper {
	if host == "" {
		host = DefaultFlyScraperHost
	}
	return &FlyScraper{newRapidAPI("flyscraper", apiKey, host, "/flight/search", timeout)}
}

// WithBaseURL overrides the scheme and host requests are sent to.
func (f *FlyScraper) WithBaseURL(u string) *FlyScraper {
	f.baseURL = u
	return f
}
