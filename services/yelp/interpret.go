package yelp

import (
	"regexp"
	"strings"

	"slate/services/availability"
)

var (
	unavailableIndicators = []string{"no availability", "not available", "fully booked", "no tables", "unavailable"}
	availableIndicators   = []string{"available", "has availability", "can accommodate"}
	bookedIndicators      = []string{"confirmed", "booked", "reservation is set"}
	handoffIndicators     = []string{"can't complete", "cannot complete", "visit their", "call them", "book directly"}

	altTimeRe = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)
	confRe    = regexp.MustCompile(`(?i)(?:confirmation|conf\.?)\s*(?:#|number|:)?\s*([A-Z0-9][A-Z0-9-]*\d[A-Z0-9-]*)`)
)

// InterpretAvailability reads an availability answer from chat text.
func InterpretAvailability(text string) availability.AvailabilityResult {
	lower := strings.ToLower(text)
	available := !containsAny(lower, unavailableIndicators) && containsAny(lower, availableIndicators)

	seen := make(map[string]bool)
	var alts []string
	for _, m := range altTimeRe.FindAllString(lower, -1) {
		m = strings.ToUpper(strings.TrimSpace(m))
		if !seen[m] {
			seen[m] = true
			alts = append(alts, m)
		}
	}
	return availability.AvailabilityResult{Available: available, AlternativeTimes: alts, Message: text}
}

// InterpretBooking reads a booking answer from chat text.
func InterpretBooking(text string) availability.BookingResult {
	lower := strings.ToLower(text)
	res := availability.BookingResult{
		RequiresHandoff: containsAny(lower, handoffIndicators),
		Message:         text,
	}
	res.Success = !res.RequiresHandoff && containsAny(lower, bookedIndicators)
	if m := confRe.FindStringSubmatch(text); m != nil {
		res.ConfirmationNumber = m[1]
	}
	return res
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
