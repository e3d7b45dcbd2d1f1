package autonomy

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"slate/models"
	"slate/services/booking"
)

const dateKeyLayout = "2006-01-02"

func notifyHour(notifyTime string) (int, bool) {
	h, _, ok := strings.Cut(strings.TrimSpace(notifyTime), ":")
	if !ok {
		h = strings.TrimSpace(notifyTime)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

// DueTarget reports whether cfg should plan during the hour containing now
// and, if so, for which evening. A config is due on the weekday that falls
// NotifyDaysBefore days ahead of one of its target weekdays, at NotifyTime's hour.
func DueTarget(cfg models.AutonomyConfig, now time.Time) (time.Time, bool) {
	if !cfg.Enabled {
		return time.Time{}, false
	}
	hour, ok := notifyHour(cfg.Schedule.NotifyTime)
	if !ok || now.Hour() != hour {
		return time.Time{}, false
	}
	target := now.AddDate(0, 0, cfg.Schedule.NotifyDaysBefore)
	if !slices.Contains(cfg.Schedule.DaysOfWeek, int(target.Weekday())) {
		return time.Time{}, false
	}
	return dateOnly(target), true
}

// NextTarget is the nearest upcoming scheduled evening, never today.
func NextTarget(cfg models.AutonomyConfig, now time.Time) time.Time {
	best := 0
	for _, d := range cfg.Schedule.DaysOfWeek {
		diff := (d - int(now.Weekday()) + 7) % 7
		if diff == 0 {
			diff = 7
		}
		if best == 0 || diff < best {
			best = diff
		}
	}
	if best == 0 {
		best = 1
	}
	return dateOnly(now.AddDate(0, 0, best))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BuildPrompt turns standing constraints into a request the planner can parse.
// Only the first neighbourhood is used as the search location.
func BuildPrompt(c models.AutonomyConstraints, target time.Time) string {
	var b strings.Builder
	party := c.PartySize
	if party < 1 {
		party = 2
	}
	fmt.Fprintf(&b, "Plan dinner for %d on %s %d", party, target.Month(), target.Day())
	if h, m, ok := booking.ParseClock(c.TimePreference.Earliest); ok {
		fmt.Fprintf(&b, " at %s", booking.FormatClock(h, m))
	}
	if len(c.Neighborhoods) > 0 {
		fmt.Fprintf(&b, " in %s", c.Neighborhoods[0])
	}
	b.WriteString(".")
	if len(c.CuisinePreferences) > 0 {
		fmt.Fprintf(&b, " Prefer %s.", strings.Join(c.CuisinePreferences, ", "))
	}
	if budget := budgetTarget(c.BudgetPerPerson); budget > 0 {
		fmt.Fprintf(&b, " Budget $%d per person.", budget)
	}
	if c.IncludeDrinks {
		b.WriteString(" Include drinks after.")
	}
	return b.String()
}

// budgetTarget is the middle of the range, or whichever bound is set.
func budgetTarget(r models.BudgetRange) int {
	switch {
	case r.Min > 0 && r.Max > 0:
		return (r.Min + r.Max) / 2
	case r.Max > 0:
		return r.Max
	}
	return r.Min
}
