package notification

import (
	"fmt"
	"strings"

	"slate/models"
)

func PlanConfirmation(plan *models.EveningPlan) string {
	lines := []string{"Your evening is set!", ""}
	for _, stop := range plan.Stops {
		status := "Walk-in"
		switch {
		case stop.Type == models.StopDinner && stop.Booking.Status == models.BookingConfirmed:
			status = strings.TrimSpace("Confirmed " + stop.Booking.ConfirmationNumber)
		case stop.Booking.Status == models.BookingHandoff:
			status = "Finish booking: " + stop.Booking.HandoffURL
		}
		lines = append(lines,
			fmt.Sprintf("%s - %s", stop.Time, stop.Restaurant.Name),
			stop.Restaurant.Location.Address,
			status,
			"")
	}
	if plan.TotalEstimatedCost > 0 {
		lines = append(lines, fmt.Sprintf("Est. total: $%d", plan.TotalEstimatedCost))
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func GroupInvite(session *models.GroupSession, inviteURL string) string {
	return fmt.Sprintf("You're invited to plan dinner! Add your preferences here: %s\n\n%d people already in.",
		inviteURL, len(session.Participants))
}

func GroupResult(session *models.GroupSession) string {
	if session.Solution == nil {
		return "Couldn't find a spot that works for everyone. Try adjusting constraints?"
	}
	n := len(session.Participants)
	return fmt.Sprintf("Found it! %s works for all %d of you.\n\n%s\n\nBooking %s for %d. Reply YES to confirm.",
		session.Solution.Name, n, session.Solution.Location.Address, session.Time, n)
}

// GroupBooked tells participants the table is held.
func GroupBooked(session *models.GroupSession) string {
	if session.Solution == nil || session.Booking == nil {
		return GroupResult(session)
	}
	b := session.Booking
	switch b.Status {
	case models.BookingConfirmed:
		return fmt.Sprintf("Booked! %s, %s at %s for %d. Confirmation %s.",
			session.Solution.Name, b.RequestedDate, b.RequestedTime, b.PartySize, b.ConfirmationNumber)
	case models.BookingHandoff:
		return fmt.Sprintf("%s has a table at %s. Finish the reservation here: %s",
			session.Solution.Name, b.RequestedTime, b.HandoffURL)
	}
	return fmt.Sprintf("Couldn't book %s at %s. We'll try another time.", session.Solution.Name, b.RequestedTime)
}

type ReplyIntent string

const (
	ReplyConfirm ReplyIntent = "confirm"
	ReplyDecline ReplyIntent = "decline"
	ReplyUnknown ReplyIntent = "unknown"
)

var (
	confirmWords = []string{"yes", "yep", "yeah", "y", "sure", "ok", "okay", "book it", "do it", "confirm"}
	declineWords = []string{"no", "nope", "nah", "n", "pass", "skip", "cancel"}
)

// ParseInboundReply classifies a text reply by its leading word or phrase.
func ParseInboundReply(body string) ReplyIntent {
	lower := strings.TrimRight(strings.ToLower(strings.TrimSpace(body)), "!.? ")
	if startsWithAny(lower, confirmWords) {
		return ReplyConfirm
	}
	if startsWithAny(lower, declineWords) {
		return ReplyDecline
	}
	return ReplyUnknown
}

func startsWithAny(s string, words []string) bool {
	for _, w := range words {
		if s == w || strings.HasPrefix(s, w+" ") {
			return true
		}
	}
	return false
}
