package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	earliestSlotHour = 17
	latestSlotHour   = 22
	maxSlots         = 6
)

// DefaultTimeSlots are offered when the requested time cannot be read.
var DefaultTimeSlots = []string{"6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM", "8:00 PM", "8:30 PM"}

var clockRe = regexp.MustCompile(`(?i)^\s*(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\s*$`)

// ParseClock reads "7:00 PM", "7pm" or "19:00" into a 24h hour and minute.
func ParseClock(s string) (hour, minute int, ok bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// FormatClock renders a 24h time as "7:30 PM".
func FormatClock(hour, minute int) string {
	hour = ((hour % 24) + 24) % 24
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, period)
}

// GenerateTimeSlots offers half-hour slots from one hour before to two hours
// after base, kept within 5 PM to 10:30 PM and capped at six.
func GenerateTimeSlots(base string) []string {
	hour, _, ok := ParseClock(base)
	if !ok {
		return append([]string(nil), DefaultTimeSlots...)
	}
	var slots []string
	for h := hour - 1; h <= hour+2; h++ {
		if h < earliestSlotHour || h > latestSlotHour {
			continue
		}
		for _, m := range []int{0, 30} {
			slots = append(slots, FormatClock(h, m))
		}
	}
	if len(slots) == 0 {
		return append([]string(nil), DefaultTimeSlots...)
	}
	if len(slots) > maxSlots {
		slots = slots[:maxSlots]
	}
	return slots
}

// AddMinutes shifts a clock string, wrapping past midnight. Unreadable input is returned unchanged.
func AddMinutes(t string, minutes int) string {
	hour, minute, ok := ParseClock(t)
	if !ok {
		return t
	}
	total := hour*60 + minute + minutes
	total = ((total % (24 * 60)) + 24*60) % (24 * 60)
	return FormatClock(total/60, total%60)
}
