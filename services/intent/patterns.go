package intent

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"voyagent/models"
)

const (
	monthWords    = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`
	monthPattern  = `(` + monthWords + `)`
	dayPattern    = `(\d{1,2})(?:st|nd|rd|th)?`
	amountPattern = `(?:(?:usd|eur|gbp)\s*|\p{Sc}\s*)?([\d,]+(?:\.\d+)?)`

	// A place name ends at a control word, a month, a digit, punctuation or the end of the text.
	placeStop = `(?:\s+(?:to|from|on|in|between|starting|for|with|and|next|this|by|during|under|` + monthWords + `)\b|\s*\d|\s*[,;!?]|\.\s|\.$|$)`
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// Leading words that mean a captured place is something else.
var rejectedPlaceWords = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "our": true,
	"go": true, "visit": true, "travel": true, "fly": true, "stay": true, "see": true, "book": true,
}

// Abbreviations whose period does not end a place name ("st. louis").
var placeAbbreviation = regexp.MustCompile(`\b(st|ste|ft|mt|pt)\.\s`)

// rule is one pattern for one intent field. apply returns false when the
// match is not usable, in which case the next match or rule is tried.
type rule struct {
	name  string
	re    *regexp.Regexp
	apply func(p *Pattern, in *models.TravelIntent, text string, m []int) bool
}

// Rules per field, in priority order.
var (
	originRules = []rule{
		{"from-place", regexp.MustCompile(`\bfrom\s+([a-z][a-z .'-]*?)` + placeStop), setPlace(func(in *models.TravelIntent, s string) { in.Origin = s })},
	}
	destinationRules = []rule{
		{"to-place", regexp.MustCompile(`\bto\s+([a-z][a-z .'-]*?)` + placeStop), setPlace(func(in *models.TravelIntent, s string) { in.Location = s })},
		{"in-place", regexp.MustCompile(`\bin\s+([a-z][a-z .'-]*?)` + placeStop), setPlace(func(in *models.TravelIntent, s string) { in.Location = s })},
	}
	dateRules = []rule{
		{"month-day-range", regexp.MustCompile(`\b` + monthPattern + `\.?\s+` + dayPattern + `\s*(?:to|-|until|till|through|thru)\s*` + monthPattern + `\.?\s+` + dayPattern + `\b`), applyDateRange},
		{"month-days-range", regexp.MustCompile(`\b` + monthPattern + `\.?\s+` + dayPattern + `\s*(?:to|-|until|till|through|thru)\s*` + dayPattern + `\b`), applySameMonthRange},
	}
	guestRules = []rule{
		{"count-people", regexp.MustCompile(`\b(\d+)\s*(?:persons?|people|passengers?|travell?ers?|adults?|guests?)\b`), applyGuests},
	}
	childrenRules = []rule{
		{"count-children", regexp.MustCompile(`\b(\d+)\s*(?:kids?|child|children)\b`), applyChildren},
	}
	flightBudgetRules = []rule{
		{"flight-budget", regexp.MustCompile(`\bflights?\s+budget\s*(?:is|of|:)?\s*` + amountPattern), setAmount(func(in *models.TravelIntent, d decimal.Decimal) { in.FlightBudget = decimal.NewNullDecimal(d) })},
	}
	budgetRules = []rule{
		{"budget", regexp.MustCompile(`\bbudget\s*(?:is|of|:)?\s*(?:about|around)?\s*` + amountPattern), applyTotalBudget},
	}
)

// Pattern extracts intents with regular expressions only. It never calls
// out and is the fallback when the language service is unavailable.
type Pattern struct {
	now   func() time.Time
	rules [][]rule
}

// NewPattern returns a pattern extractor resolving year-less dates against now.
func NewPattern(now func() time.Time) *Pattern {
	if now == nil {
		now = time.Now
	}
	return &Pattern{
		now:   now,
		rules: [][]rule{originRules, destinationRules, dateRules, guestRules, childrenRules, flightBudgetRules, budgetRules},
	}
}

// Extract applies every field's rules independently. A field without a
// match keeps its default; it never stops the other fields.
func (p *Pattern) Extract(ctx context.Context, text string) (*models.TravelIntent, error) {
	if err := requireText(text); err != nil {
		return nil, err
	}
	lowered := strings.ToLower(strings.Join(strings.Fields(text), " "))
	lowered = placeAbbreviation.ReplaceAllString(lowered, "$1 ")

	intent := &models.TravelIntent{}
	for _, field := range p.rules {
		p.applyFirst(field, intent, lowered)
	}
	intent.ApplyDefaults(1)
	return intent, nil
}

func (p *Pattern) applyFirst(rules []rule, intent *models.TravelIntent, text string) {
	for _, r := range rules {
		for offset := 0; offset < len(text); {
			m := r.re.FindStringSubmatchIndex(text[offset:])
			if m == nil {
				break
			}
			for i := range m {
				if m[i] >= 0 {
					m[i] += offset
				}
			}
			if r.apply(p, intent, text, m) {
				return
			}
			// Resume after the rejected capture, not the whole match: in
			// "to go to paris" the second "to" is part of the first match's stop.
			next := m[1]
			if len(m) > 3 && m[3] > offset {
				next = m[3]
			}
			offset = next
		}
	}
}

func group(text string, m []int, n int) string {
	if 2*n+1 >= len(m) || m[2*n] < 0 {
		return ""
	}
	return text[m[2*n]:m[2*n+1]]
}

func setPlace(set func(*models.TravelIntent, string)) func(*Pattern, *models.TravelIntent, string, []int) bool {
	return func(_ *Pattern, in *models.TravelIntent, text string, m []int) bool {
		place := strings.Trim(group(text, m, 1), " .'-")
		if place == "" {
			return false
		}
		first := strings.Fields(place)[0]
		if _, isMonth := monthOf(first); isMonth || rejectedPlaceWords[first] {
			return false
		}
		set(in, place)
		return true
	}
}

func setAmount(set func(*models.TravelIntent, decimal.Decimal)) func(*Pattern, *models.TravelIntent, string, []int) bool {
	return func(_ *Pattern, in *models.TravelIntent, text string, m []int) bool {
		d, err := decimal.NewFromString(strings.ReplaceAll(group(text, m, 1), ",", ""))
		if err != nil {
			return false
		}
		set(in, d)
		return true
	}
}

// applyTotalBudget skips "flight budget", which has its own rule.
func applyTotalBudget(p *Pattern, in *models.TravelIntent, text string, m []int) bool {
	prefix := strings.TrimRight(text[:m[0]], " ")
	if strings.HasSuffix(prefix, "flight") || strings.HasSuffix(prefix, "flights") {
		return false
	}
	return setAmount(func(in *models.TravelIntent, d decimal.Decimal) { in.Budget = decimal.NewNullDecimal(d) })(p, in, text, m)
}

func applyGuests(_ *Pattern, in *models.TravelIntent, text string, m []int) bool {
	n, err := strconv.Atoi(group(text, m, 1))
	if err != nil || n <= 0 {
		return false
	}
	in.GuestQty = n
	return true
}

func applyChildren(_ *Pattern, in *models.TravelIntent, text string, m []int) bool {
	n, err := strconv.Atoi(group(text, m, 1))
	if err != nil || n < 0 {
		return false
	}
	in.ChildrenQty = n
	return true
}

func applyDateRange(p *Pattern, in *models.TravelIntent, text string, m []int) bool {
	return p.setDates(in, group(text, m, 1), group(text, m, 2), group(text, m, 3), group(text, m, 4))
}

func applySameMonthRange(p *Pattern, in *models.TravelIntent, text string, m []int) bool {
	month := group(text, m, 1)
	return p.setDates(in, month, group(text, m, 2), month, group(text, m, 3))
}

func (p *Pattern) setDates(in *models.TravelIntent, startMonth, startDay, endMonth, endDay string) bool {
	year := p.now().Year()
	start, ok := calendarDate(year, startMonth, startDay)
	if !ok {
		return false
	}
	end, ok := calendarDate(year, endMonth, endDay)
	if !ok {
		return false
	}
	// "Dec 28 to Jan 3" ends in the following year.
	if end.Before(start) {
		end = end.AddDate(1, 0, 0)
	}
	in.ArrivalDate = start.Format(models.DateLayout)
	in.DepartureDate = end.Format(models.DateLayout)
	return true
}

func calendarDate(year int, month, day string) (time.Time, bool) {
	mon, ok := monthOf(month)
	if !ok {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, mon, d, 0, 0, 0, 0, time.UTC)
	if t.Month() != mon {
		return time.Time{}, false
	}
	return t, true
}

func monthOf(word string) (time.Month, bool) {
	word = strings.TrimSuffix(word, ".")
	if len(word) < 3 {
		return 0, false
	}
	mon, ok := months[word[:3]]
	if !ok {
		return 0, false
	}
	// Accept the abbreviation, the full name or "sept"; reject words like "marble".
	full := strings.ToLower(mon.String())
	if word != word[:3] && !strings.HasPrefix(full, word) && word != "sept" {
		return 0, false
	}
	return mon, true
}
