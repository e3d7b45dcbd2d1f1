package planner

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"slate/models"
	"slate/services/availability"
	"slate/services/booking"
	"slate/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubParser models.ParsedIntent

func (p stubParser) Parse(context.Context, string) models.ParsedIntent {
	return models.ParsedIntent(p)
}

// slots answers every availability check the same way and books per restaurant ID.
type slots struct {
	open    bool
	results map[string]availability.BookingResult
	deflt   availability.BookingResult
}

func (s slots) CheckAvailability(context.Context, availability.SlotRequest) (availability.AvailabilityResult, error) {
	return availability.AvailabilityResult{Available: s.open}, nil
}

func (s slots) AttemptBooking(_ context.Context, req availability.SlotRequest) (availability.BookingResult, error) {
	if r, ok := s.results[req.Restaurant.ID]; ok {
		return r, nil
	}
	return s.deflt, nil
}

type countingSearcher struct {
	availability.Searcher
	calls []availability.SearchParams
}

func (c *countingSearcher) Search(ctx context.Context, p availability.SearchParams) ([]models.Restaurant, error) {
	c.calls = append(c.calls, p)
	return c.Searcher.Search(ctx, p)
}

type memArchive struct{ saved []*models.EveningPlan }

func (m *memArchive) Save(_ context.Context, p *models.EveningPlan) error {
	m.saved = append(m.saved, p)
	return nil
}

func (m *memArchive) Get(context.Context, string) (*models.EveningPlan, error) { return nil, nil }

func westVillage() models.ParsedIntent {
	return models.ParsedIntent{
		Date:           "Friday, October 16, 2026",
		Time:           "7:00 PM",
		PartySize:      2,
		Location:       "West Village",
		Cuisines:       []string{"italian"},
		IncludeDessert: true,
		IncludeDrinks:  true,
	}
}

func newService(in models.ParsedIntent, s slots) (*DefaultPlannerService, *countingSearcher, *memArchive) {
	search := &countingSearcher{Searcher: availability.DemoCatalog()}
	archive := &memArchive{}
	provider := availability.Composite{Searcher: search, Checker: s, Booker: s}
	svc := NewPlannerService(stubParser(in), provider, nil, archive, zap.NewNop())
	svc.Now = func() time.Time { return time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC) }
	return svc, search, archive
}

func TestCreatePlan_FullEvening(t *testing.T) {
	svc, _, archive := newService(westVillage(), slots{open: true, deflt: availability.BookingResult{Success: true, ConfirmationNumber: "VIA-1234"}})
	rec := &events.Recorder{}

	plan := svc.CreatePlan(context.Background(), "italian in the west village with dessert and drinks", nil, rec)

	require.Len(t, plan.Stops, 3)
	assert.Equal(t, models.PlanConfirmed, plan.Status)

	dinner := plan.Stops[0]
	assert.Equal(t, models.StopDinner, dinner.Type)
	assert.Equal(t, "via-carota", dinner.Restaurant.ID)
	assert.Equal(t, "6:00 PM", dinner.Time)
	assert.Equal(t, "VIA-1234", dinner.Booking.ConfirmationNumber)
	assert.Equal(t, &models.CellRef{Row: 0, Col: 0}, plan.Matrix.SelectedCell)

	dessert := plan.Stops[1]
	assert.Equal(t, models.StopDessert, dessert.Type)
	assert.Equal(t, "amorino", dessert.Restaurant.ID)
	assert.Equal(t, "8:30 PM", dessert.Time, "dessert follows the requested 7:00 PM, not the 6:00 PM slot")
	require.NotNil(t, dessert.WalkingFromPrevious)
	assert.Equal(t, 2, dessert.WalkingFromPrevious.Minutes)

	drinks := plan.Stops[2]
	assert.Equal(t, models.StopDrinks, drinks.Type)
	assert.Equal(t, "little-branch", drinks.Restaurant.ID)
	assert.Equal(t, "9:00 PM", drinks.Time)
	assert.Equal(t, models.BookingConfirmed, drinks.Booking.Status)
	require.NotNil(t, drinks.WalkingFromPrevious)
	assert.Equal(t, 3, drinks.WalkingFromPrevious.Minutes)

	assert.Equal(t, 3*30*2+1*30*2+2*30*2, plan.TotalEstimatedCost)

	types := rec.Types()
	assert.Equal(t, models.EventIntentParsed, types[0])
	assert.Equal(t, models.EventPlanComplete, types[len(types)-1])
	assert.Contains(t, types, models.EventDessertSearch)
	assert.Contains(t, types, models.EventDrinksSearch)
	assert.Contains(t, types, models.EventWalkingRouteCalculated)
	require.Len(t, archive.saved, 1)
	assert.Equal(t, plan.ID, archive.saved[0].ID)
}

func TestCreatePlan_MissingLocation(t *testing.T) {
	in := westVillage()
	in.Location = ""
	svc, search, _ := newService(in, slots{open: true})
	rec := &events.Recorder{}

	plan := svc.CreatePlan(context.Background(), "dinner somewhere", nil, rec)

	assert.Equal(t, models.PlanFailed, plan.Status)
	assert.Empty(t, plan.Stops)
	assert.Empty(t, search.calls)
	types := rec.Types()
	assert.Equal(t, models.EventError, types[len(types)-1])
}

func TestCreatePlan_NoAvailability(t *testing.T) {
	svc, _, _ := newService(westVillage(), slots{open: false})
	rec := &events.Recorder{}

	plan := svc.CreatePlan(context.Background(), "italian", nil, rec)

	assert.Equal(t, models.PlanFailed, plan.Status)
	assert.Empty(t, plan.Stops)
	assert.Nil(t, plan.Matrix.SelectedCell)
	assert.Contains(t, rec.Types(), models.EventError)
	assert.NotContains(t, rec.Types(), models.EventDessertSearch)
}

func TestCreatePlan_HandoffIsPartial(t *testing.T) {
	in := westVillage()
	in.IncludeDessert, in.IncludeDrinks = false, false
	svc, _, _ := newService(in, slots{open: true, deflt: availability.BookingResult{RequiresHandoff: true, HandoffURL: "https://www.yelp.com/reservations/via-carota"}})

	plan := svc.CreatePlan(context.Background(), "italian", nil, nil)

	require.Len(t, plan.Stops, 1)
	assert.Equal(t, models.BookingHandoff, plan.Stops[0].Booking.Status)
	assert.Equal(t, models.PlanPartial, plan.Status)
}

func TestCreatePlan_RetriesWithoutPrice(t *testing.T) {
	in := westVillage()
	budget := 15
	in.Budget = &budget
	svc, search, _ := newService(in, slots{open: true, deflt: availability.BookingResult{Success: true}})

	plan := svc.CreatePlan(context.Background(), "cheap italian", nil, nil)

	require.GreaterOrEqual(t, len(search.calls), 2)
	assert.Equal(t, "1", search.calls[0].Price)
	assert.Equal(t, "", search.calls[1].Price)
	assert.NotEmpty(t, plan.Stops)
}

func TestCreatePlan_ProfileDrivesRanking(t *testing.T) {
	in := westVillage()
	in.IncludeDessert, in.IncludeDrinks = false, false
	svc, _, _ := newService(in, slots{open: true, deflt: availability.BookingResult{Success: true}})
	profile := &models.UserProfile{ID: "u1", VibeVector: models.NeutralVibe()}

	plan := svc.CreatePlan(context.Background(), "italian", profile, nil)

	assert.Equal(t, "u1", plan.UserID)
	for _, r := range plan.Matrix.Restaurants {
		assert.NotEqual(t, defaultVibeReason, r.VibeMatchReason)
		assert.NotNil(t, r.VibeVector)
	}
	for i := 1; i < len(plan.Matrix.Restaurants); i++ {
		assert.GreaterOrEqual(t, plan.Matrix.Restaurants[i-1].VibeMatchScore, plan.Matrix.Restaurants[i].VibeMatchScore)
	}
}

type panicParser struct{}

func (panicParser) Parse(context.Context, string) models.ParsedIntent { panic("boom") }

func TestCreatePlan_RecoversFromPanic(t *testing.T) {
	svc, _, _ := newService(westVillage(), slots{open: true})
	svc.Parser = panicParser{}
	rec := &events.Recorder{}

	plan := svc.CreatePlan(context.Background(), "anything", nil, rec)

	assert.Equal(t, models.PlanFailed, plan.Status)
	types := rec.Types()
	assert.Equal(t, models.EventError, types[len(types)-1])
}

func TestHaversineAndCost(t *testing.T) {
	a := models.Coordinates{Latitude: 40.7333, Longitude: -74.0037}
	assert.InDelta(t, 0, haversineMiles(a, a), 1e-9)
	b := models.Coordinates{Latitude: 40.7478, Longitude: -73.9857}
	assert.InDelta(t, haversineMiles(a, b), haversineMiles(b, a), 1e-9)
	assert.InDelta(t, 1.4, haversineMiles(a, b), 0.1)

	w := walkingInfo(0.5)
	assert.Equal(t, 10, w.Minutes)
	assert.Equal(t, 805, w.DistanceMeters)

	stops := []models.PlanStop{
		{Restaurant: models.Restaurant{PriceLevel: "$$$$"}},
		{Restaurant: models.Restaurant{}},
	}
	assert.Equal(t, 4*30*3+2*30*3, EstimateCost(stops, 3))
}

func TestFollowUpAnchor(t *testing.T) {
	tests := []struct {
		name, requested, booked, want string
	}{
		{"requested time wins", "7:00 PM", "6:00 PM", "7:00 PM"},
		{"24h requested time", "19:30", "6:00 PM", "19:30"},
		{"unreadable request falls back to slot", "", "6:30 PM", "6:30 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, followUpAnchor(tt.requested, tt.booked))
		})
	}
}

// slowSlots delays each availability check so the consumer reads events
// while the matrix is still being filled in.
type slowSlots struct{ slots }

func (s slowSlots) CheckAvailability(ctx context.Context, req availability.SlotRequest) (availability.AvailabilityResult, error) {
	time.Sleep(time.Millisecond)
	return s.slots.CheckAvailability(ctx, req)
}

func TestCreatePlan_StreamedMatrixIsSnapshot(t *testing.T) {
	s := slowSlots{slots{open: true, deflt: availability.BookingResult{Success: true, ConfirmationNumber: "ABC-1234"}}}
	svc, _, _ := newService(westVillage(), s.slots)
	svc.Builder = booking.NewMatrixBuilder(s, zap.NewNop())

	stream := events.NewStream()
	done := make(chan *models.EveningPlan, 1)
	go func() {
		defer stream.Close()
		done <- svc.CreatePlan(context.Background(), "italian in the west village", nil, stream)
	}()

	var matrixEvents int
	for e := range stream.C() {
		_, err := json.Marshal(e)
		require.NoError(t, err)
		if e.Type != models.EventMatrixUpdate {
			continue
		}
		matrixEvents++
		m := e.Data.(*models.AvailabilityMatrix)
		total := len(m.Restaurants) * len(m.TimeSlots)
		assert.Equal(t, total, m.CountStatus(models.CellIdle))
	}
	assert.Equal(t, 1, matrixEvents)

	plan := <-done
	require.NotNil(t, plan.Matrix)
	assert.Zero(t, plan.Matrix.CountStatus(models.CellIdle))
}
