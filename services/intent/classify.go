package intent

import (
	"regexp"
	"strings"

	"voyagent/models"
)

var (
	flightKeywords = []string{"flight", "flights", "fly", "flying", "plane", "airline", "airport", "depart", "return ticket"}
	hotelKeywords  = []string{"hotel", "hotels", "stay", "room", "rooms", "accommodation", "lodging", "night", "nights"}

	wordRe = regexp.MustCompile(`[a-z]+`)
)

// DetectQueryType counts flight and hotel keywords and returns the higher
// scoring kind. A tie, including no keywords at all, goes to hotel.
func DetectQueryType(text string) models.QueryType {
	lowered := strings.ToLower(text)
	words := map[string]int{}
	for _, w := range wordRe.FindAllString(lowered, -1) {
		words[w]++
	}

	flight := score(lowered, words, flightKeywords)
	hotel := score(lowered, words, hotelKeywords)
	if flight > hotel {
		return models.QueryFlight
	}
	return models.QueryHotel
}

func score(text string, words map[string]int, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(k, " ") {
			n += strings.Count(text, k)
			continue
		}
		n += words[k]
	}
	return n
}
