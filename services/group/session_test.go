package group

import (
	"context"
	"sync"
	"testing"
	"time"

	"slate/database/kv"
	"slate/models"
	"slate/services/availability"
	"slate/services/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedBooker struct {
	res availability.BookingResult
	err error
}

func (b fixedBooker) AttemptBooking(context.Context, availability.SlotRequest) (availability.BookingResult, error) {
	return b.res, b.err
}

type queued struct{ to, body string }

type fakeNotify struct {
	mu   sync.Mutex
	msgs []queued
}

func (f *fakeNotify) SendSMS(ctx context.Context, to, body string) error { return f.QueueSMS(ctx, to, body) }

func (f *fakeNotify) QueueSMS(_ context.Context, to, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, queued{to, body})
	return nil
}

var t0 = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newSessionService(pool []models.Restaurant, booker fixedBooker) (*DefaultGroupSessionService, *kv.MemoryStore, *time.Time, *fakeNotify) {
	now := t0
	clock := func() time.Time { return now }
	store := kv.NewMemoryStore().WithClock(clock)
	notify := &fakeNotify{}
	svc := &DefaultGroupSessionService{
		Store:   store,
		Solver:  NewSolver(fixedSearcher{rs: pool}, nil),
		Booker:  booker,
		Notify:  notify,
		BaseURL: "https://slate.app",
		Logger:  zap.NewNop(),
		Now:     clock,
	}
	return svc, store, &now, notify
}

func createReq() CreateSessionRequest {
	return CreateSessionRequest{CreatorName: "Ana", CreatorPhone: "+15550000001", Date: "Saturday, October 17, 2026", Time: "7:30 PM", Location: "Manhattan"}
}

func TestCreate(t *testing.T) {
	svc, store, _, _ := newSessionService(nil, fixedBooker{})
	ctx := context.Background()

	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)
	assert.Len(t, s.ID, 8)
	assert.Equal(t, models.GroupCollecting, s.Status)
	require.Len(t, s.Participants, 1)
	assert.Equal(t, s.CreatorID, s.Participants[0].ID)
	assert.Equal(t, models.DefaultCreatorMaxPrice, s.Participants[0].Constraints.MaxPrice)
	assert.Equal(t, t0.Add(24*time.Hour), s.ExpiresAt)

	ttl, err := store.TTL(ctx, "group:"+s.ID)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	_, err = svc.Create(ctx, CreateSessionRequest{CreatorName: "Ana"})
	var se *SessionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodeInvalid, se.Code)
}

func TestJoinAndConstraints(t *testing.T) {
	svc, store, now, _ := newSessionService(nil, fixedBooker{})
	ctx := context.Background()
	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	*now = t0.Add(2 * time.Hour)
	p, updated, err := svc.Join(ctx, s.ID, JoinRequest{Name: "Ben", Constraints: &models.GroupConstraints{Dietary: []string{" vegan ", ""}}})
	require.NoError(t, err)
	assert.Len(t, updated.Participants, 2)
	assert.Equal(t, []string{"vegan"}, p.Constraints.Dietary)
	assert.Equal(t, []string{}, p.Constraints.CuisineNo)

	ttl, err := store.TTL(ctx, "group:"+s.ID)
	require.NoError(t, err)
	assert.Equal(t, 22*time.Hour, ttl)

	_, _, err = svc.Join(ctx, s.ID, JoinRequest{Name: " "})
	assert.Error(t, err)
	_, _, err = svc.Join(ctx, "missing1", JoinRequest{Name: "Cy"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	updated, err = svc.UpdateConstraints(ctx, s.ID, p.ID, models.GroupConstraints{CuisineNo: []string{"Thai"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Thai"}, updated.Participant(p.ID).Constraints.CuisineNo)

	_, err = svc.UpdateConstraints(ctx, s.ID, "nobody", models.GroupConstraints{})
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}

func TestJoin_ConcurrentJoinsAllLand(t *testing.T) {
	svc, _, _, _ := newSessionService(nil, fixedBooker{})
	ctx := context.Background()
	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Join(ctx, s.ID, JoinRequest{Name: "guest"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 21)
}

func TestSolveAndBook(t *testing.T) {
	pool := []models.Restaurant{
		rest("thai-house", "$$", 4.8, "Thai"),
		rest("verde", "$$", 4.2, "Vegetarian", "Italian"),
	}
	svc, _, _, notify := newSessionService(pool, fixedBooker{res: availability.BookingResult{Success: true, ConfirmationNumber: "VER-0042"}})
	ctx := context.Background()
	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)
	_, err = svc.UpdateConstraints(ctx, s.ID, s.CreatorID, models.GroupConstraints{CuisineNo: []string{"Thai"}})
	require.NoError(t, err)

	_, err = svc.BookSolution(ctx, s.ID, nil)
	assert.ErrorIs(t, err, ErrNoSolution)

	rec := &events.Recorder{}
	res, solved, err := svc.Solve(ctx, s.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, "verde", res.Solution.ID)
	assert.Equal(t, models.GroupSolved, solved.Status)
	assert.Len(t, solved.EliminationLog, 1)

	_, _, err = svc.Join(ctx, s.ID, JoinRequest{Name: "Late"})
	assert.ErrorIs(t, err, ErrNotCollecting)

	booked, err := svc.BookSolution(ctx, s.ID, rec)
	require.NoError(t, err)
	assert.Equal(t, models.GroupBooked, booked.Status)
	require.NotNil(t, booked.Booking)
	assert.Equal(t, "VER-0042", booked.Booking.ConfirmationNumber)
	assert.Equal(t, 1, booked.Booking.PartySize)
	assert.Contains(t, rec.Types(), models.EventBookingComplete)

	_, _, err = svc.Solve(ctx, s.ID, nil)
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	require.Len(t, notify.msgs, 2)
	assert.Contains(t, notify.msgs[0].body, "Found it! verde")
	assert.Contains(t, notify.msgs[1].body, "VER-0042")
}

func TestSolve_NoSolutionReturnsToCollecting(t *testing.T) {
	svc, _, _, _ := newSessionService(nil, fixedBooker{})
	ctx := context.Background()
	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	res, got, err := svc.Solve(ctx, s.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, res.Solution)
	assert.Equal(t, models.GroupCollecting, got.Status)
}

type panickingSearcher struct{}

func (panickingSearcher) Search(context.Context, availability.SearchParams) ([]models.Restaurant, error) {
	panic("upstream decoder blew up")
}

func TestSolve_SolverPanicRestoresSession(t *testing.T) {
	tests := []struct {
		name   string
		solved bool
		want   models.GroupStatus
	}{
		{name: "collecting session", want: models.GroupCollecting},
		{name: "re-solving a solved session", solved: true, want: models.GroupSolved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newSessionService([]models.Restaurant{rest("verde", "$$", 4.2, "Italian")}, fixedBooker{})
			ctx := context.Background()
			s, err := svc.Create(ctx, createReq())
			require.NoError(t, err)
			if tt.solved {
				_, _, err = svc.Solve(ctx, s.ID, nil)
				require.NoError(t, err)
			}

			svc.Solver = NewSolver(panickingSearcher{}, nil)
			rec := &events.Recorder{}
			res, got, err := svc.Solve(ctx, s.ID, rec)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Nil(t, got)
			assert.Contains(t, rec.Types(), models.EventError)

			stored, err := svc.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}

func TestExpiredSession(t *testing.T) {
	svc, _, now, _ := newSessionService(nil, fixedBooker{})
	ctx := context.Background()
	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	*now = t0.Add(25 * time.Hour)
	_, err = svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInvite(t *testing.T) {
	svc, _, _, notify := newSessionService(nil, fixedBooker{})
	ctx := context.Background()
	s, err := svc.Create(ctx, createReq())
	require.NoError(t, err)

	require.NoError(t, svc.Invite(ctx, s.ID, []string{"+15550000002", "+15550000003"}))
	require.Len(t, notify.msgs, 2)
	assert.Contains(t, notify.msgs[0].body, "https://slate.app/group/"+s.ID)
}
