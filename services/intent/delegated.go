package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"voyagent/models"
	"voyagent/services/llm"
)

const extractionTemplate = `Extract the following travel parameters from the user input and return ONLY valid JSON (no markdown or explanation):
- origin (city the traveler leaves from, or null)
- location (destination city or state)
- arrival_date (format YYYY-MM-DD, start of the trip)
- departure_date (format YYYY-MM-DD, end of the trip)
- guest_qty (number of adult travelers)
- children_qty
- children_age (list of integers)
- budget (total budget as a number, or null)
- flight_budget (budget for flights only as a number, or null)
- travel_purpose (leisure or business)

Today is %s. Dates without a year are in %d. Use null for anything not stated.

User input: %s
Respond with JSON only.`

// ErrNoJSONObject is returned when a reply contains no balanced JSON object.
var ErrNoJSONObject = errors.New("no JSON object in reply")

// Delegated extracts intents through an external language service.
type Delegated struct {
	completer llm.Completer
	now       func() time.Time
}

// NewDelegated returns an extractor that asks completer to produce JSON.
func NewDelegated(completer llm.Completer) *Delegated {
	return &Delegated{completer: completer, now: time.Now}
}

// Prompt builds the instruction sent for text.
func (d *Delegated) Prompt(text string) string {
	now := d.now()
	return fmt.Sprintf(extractionTemplate, now.Format(models.DateLayout), now.Year(), strings.TrimSpace(text))
}

// Extract sends the prompt and decodes the first JSON object of the reply.
func (d *Delegated) Extract(ctx context.Context, text string) (*models.TravelIntent, error) {
	if err := requireText(text); err != nil {
		return nil, err
	}

	reply, err := d.completer.Complete(ctx, d.Prompt(text))
	if err != nil {
		return nil, err
	}

	obj, err := FirstJSONObject(reply)
	if err != nil {
		return nil, &models.ExtractionError{Reason: "malformed upstream response", Err: err}
	}

	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader([]byte(obj)))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, &models.ExtractionError{Reason: "malformed upstream response", Err: err}
	}

	intent := DecodeFields(fields)
	intent.ApplyDefaults(models.DefaultGuestQty)
	return intent, nil
}

// FirstJSONObject returns the first balanced {...} block of s. Braces inside
// JSON strings are ignored.
func FirstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrNoJSONObject
}
