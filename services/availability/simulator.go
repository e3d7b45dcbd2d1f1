package availability

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"slate/models"
)

const (
	baseAvailabilityRate = 0.65
	minAvailabilityRate  = 0.2
	maxAvailabilityRate  = 0.85
	fullyBookedRate      = 0.15

	// fully booked decisions remembered before the oldest are forgotten
	maxBookedDecisions = 4096
)

var failureReasons = []string{
	"That time slot was just booked by another party",
	"The restaurant is no longer accepting reservations for this time",
	"Unable to accommodate party size at this time",
	"Please try a different time or call the restaurant directly",
	"High demand - this slot filled while processing",
}

// Simulator fakes availability and booking with realistic odds. A fixed Seed
// makes every run identical.
type Simulator struct {
	// Weekend reports whether date is a weekend night. Defaults to today's weekday.
	Weekend func(date string) bool
	// Delay is slept before each answer to mimic network latency.
	Delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
	// fully booked decisions are made once per restaurant and date,
	// and the oldest are evicted past maxBooked
	booked      map[string]bool
	bookedOrder []string
	maxBooked   int
}

func NewSimulator(seed int64) *Simulator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulator{
		rng:    rand.New(rand.NewSource(seed)),
		booked:    make(map[string]bool),
		maxBooked: maxBookedDecisions,
	}
}

func (s *Simulator) CheckAvailability(ctx context.Context, req SlotRequest) (AvailabilityResult, error) {
	if err := s.wait(ctx); err != nil {
		return AvailabilityResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := req.Restaurant.ID + "|" + req.Date
	full, seen := s.booked[key]
	if !seen {
		full = s.rng.Float64() < fullyBookedRate
		s.rememberBooked(key, full)
	}
	if full {
		return AvailabilityResult{Available: false, Message: fmt.Sprintf("%s is fully booked on %s", req.Restaurant.Name, req.Date)}, nil
	}

	rate := s.availabilityRate(req)
	if s.rng.Float64() < rate {
		return AvailabilityResult{Available: true, Message: fmt.Sprintf("%s has availability at %s", req.Restaurant.Name, req.Time)}, nil
	}
	return AvailabilityResult{Available: false, Message: fmt.Sprintf("No tables at %s for %d", req.Time, req.PartySize)}, nil
}

// rememberBooked records a decision. Callers hold s.mu.
func (s *Simulator) rememberBooked(key string, full bool) {
	for len(s.bookedOrder) >= s.maxBooked && len(s.bookedOrder) > 0 {
		delete(s.booked, s.bookedOrder[0])
		s.bookedOrder = s.bookedOrder[1:]
	}
	s.booked[key] = full
	s.bookedOrder = append(s.bookedOrder, key)
}

func (s *Simulator) AttemptBooking(ctx context.Context, req SlotRequest) (BookingResult, error) {
	if err := s.wait(ctx); err != nil {
		return BookingResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rng.Float64() < BookingSuccessRate(req.PartySize) {
		conf := ConfirmationNumber(req.Restaurant.Name, 1000+s.rng.Intn(9000))
		return BookingResult{
			Success:            true,
			ConfirmationNumber: conf,
			Message:            fmt.Sprintf("Reservation confirmed at %s, confirmation %s", req.Restaurant.Name, conf),
		}, nil
	}
	return BookingResult{
		Success: false,
		Message: failureReasons[s.rng.Intn(len(failureReasons))],
	}, nil
}

func (s *Simulator) availabilityRate(req SlotRequest) float64 {
	weekend := isWeekendToday
	if s.Weekend != nil {
		weekend = s.Weekend
	}
	return AvailabilityRate(req.Restaurant, req.Time, req.PartySize, weekend(req.Date))
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var slotHourRe = regexp.MustCompile(`(\d+):`)

// AvailabilityRate estimates the chance a slot is open. Busy venues, prime
// time, big parties, weekends and expensive places all lower it.
func AvailabilityRate(r models.Restaurant, slot string, partySize int, weekend bool) float64 {
	rate := baseAvailabilityRate
	if r.ReviewCount > 1000 {
		rate -= 0.15
	}
	if r.ReviewCount > 2000 {
		rate -= 0.1
	}
	if r.Rating >= 4.5 {
		rate -= 0.1
	}
	if r.Rating >= 4.8 {
		rate -= 0.1
	}
	hour := 7
	if m := slotHourRe.FindStringSubmatch(slot); m != nil {
		hour, _ = strconv.Atoi(m[1])
	}
	if hour == 7 || hour == 8 {
		rate -= 0.1
	}
	if partySize > 4 {
		rate -= 0.1
	}
	if partySize > 6 {
		rate -= 0.15
	}
	if weekend {
		rate -= 0.1
	}
	if r.PriceOrdinal() >= 3 {
		rate -= 0.1
	}
	if rate < minAvailabilityRate {
		return minAvailabilityRate
	}
	if rate > maxAvailabilityRate {
		return maxAvailabilityRate
	}
	return rate
}

// BookingSuccessRate drops for large parties.
func BookingSuccessRate(partySize int) float64 {
	switch {
	case partySize > 8:
		return 0.6
	case partySize > 6:
		return 0.75
	}
	return 0.9
}

var wordSplitRe = regexp.MustCompile(`[\s-]+`)

// ConfirmationNumber formats INITIALS-NNNN, with initials padded to three letters using X.
func ConfirmationNumber(name string, n int) string {
	var initials strings.Builder
	for _, w := range wordSplitRe.Split(strings.TrimSpace(name), -1) {
		if w == "" {
			continue
		}
		initials.WriteString(strings.ToUpper(string([]rune(w)[0])))
		if initials.Len() >= 3 {
			break
		}
	}
	s := initials.String()
	if len([]rune(s)) > 3 {
		s = string([]rune(s)[:3])
	}
	for len([]rune(s)) < 3 {
		s += "X"
	}
	return fmt.Sprintf("%s-%04d", s, n)
}

func isWeekendToday(string) bool {
	d := time.Now().Weekday()
	return d == time.Saturday || d == time.Sunday
}
