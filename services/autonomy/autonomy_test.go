package autonomy

import (
	"context"
	"testing"
	"time"

	"slate/database/kv"
	"slate/models"
	"slate/services/events"
	"slate/services/notification"
	"slate/services/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPlanner struct {
	prompts []string
	stops   []models.PlanStop
}

func (p *stubPlanner) CreatePlan(_ context.Context, prompt string, profile *models.UserProfile, _ events.Sink) *models.EveningPlan {
	p.prompts = append(p.prompts, prompt)
	return &models.EveningPlan{ID: "plan-1", Prompt: prompt, Stops: p.stops, Status: models.DeriveStatus(p.stops)}
}

type sms struct{ to, body string }

type recordingNotifier struct{ sent []sms }

func (r *recordingNotifier) SendSMS(_ context.Context, to, body string) error {
	r.sent = append(r.sent, sms{to, body})
	return nil
}

func (r *recordingNotifier) QueueSMS(ctx context.Context, to, body string) error {
	return r.SendSMS(ctx, to, body)
}

func dinnerStops() []models.PlanStop {
	return []models.PlanStop{
		{
			Type:       models.StopDinner,
			Time:       "7:00 PM",
			Restaurant: models.Restaurant{ID: "r1", Name: "Via Carota", VibeMatchScore: 91, Location: models.RestaurantLocation{Address: "51 Grove St"}},
			Booking:    models.BookingAttempt{Status: models.BookingConfirmed, ConfirmationNumber: "ABC-1234"},
		},
		{
			Type:                models.StopDrinks,
			Time:                "9:00 PM",
			Restaurant:          models.Restaurant{ID: "r2", Name: "Little Branch"},
			Booking:             models.BookingAttempt{Status: models.BookingConfirmed},
			WalkingFromPrevious: &models.WalkingInfo{Minutes: 3},
		},
	}
}

// Wednesday 10:15; a Friday target with notifyDaysBefore 2 is due now.
var wednesday = time.Date(2026, 10, 14, 10, 15, 0, 0, time.UTC)

type fixture struct {
	svc      *DefaultAutonomyService
	planner  *stubPlanner
	notifier *recordingNotifier
	store    *kv.MemoryStore
}

func newFixture(t *testing.T, phone string) *fixture {
	t.Helper()
	clock := func() time.Time { return wednesday }
	store := kv.NewMemoryStore().WithClock(clock)
	profiles := user.NewProfileService(store, zap.NewNop())
	if phone != "" {
		v := models.NeutralVibe()
		_, err := profiles.SaveProfile(context.Background(), user.ProfileRequest{UserID: "u1", Phone: phone, VibeVector: &v})
		require.NoError(t, err)
	}
	p := &stubPlanner{stops: dinnerStops()}
	n := &recordingNotifier{}
	svc := NewAutonomyService(store, p, profiles, n, zap.NewNop())
	svc.Now = clock
	return &fixture{svc: svc, planner: p, notifier: n, store: store}
}

func TestDueTarget(t *testing.T) {
	cfg := models.AutonomyConfig{Enabled: true, Schedule: DefaultSchedule()}

	target, due := DueTarget(cfg, wednesday)
	require.True(t, due)
	assert.Equal(t, "2026-10-16", target.Format(dateKeyLayout))

	_, due = DueTarget(cfg, wednesday.Add(time.Hour))
	assert.False(t, due, "wrong hour")

	_, due = DueTarget(cfg, wednesday.AddDate(0, 0, -1))
	assert.False(t, due, "tuesday would target thursday")

	cfg.Enabled = false
	_, due = DueTarget(cfg, wednesday)
	assert.False(t, due)
}

func TestNextTarget(t *testing.T) {
	cfg := models.AutonomyConfig{Schedule: models.AutonomySchedule{DaysOfWeek: []int{3, 6}}}
	// today is Wednesday (3) so the next Wednesday is a week out; Saturday is sooner
	assert.Equal(t, "2026-10-17", NextTarget(cfg, wednesday).Format(dateKeyLayout))

	cfg.Schedule.DaysOfWeek = []int{3}
	assert.Equal(t, "2026-10-21", NextTarget(cfg, wednesday).Format(dateKeyLayout))
}

func TestBuildPrompt(t *testing.T) {
	c := DefaultConstraints()
	c.Neighborhoods = []string{"West Village", "SoHo"}
	c.CuisinePreferences = []string{"italian", "french"}
	target := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		"Plan dinner for 2 on October 16 at 6:00 PM in West Village. Prefer italian, french. Budget $100 per person. Include drinks after.",
		BuildPrompt(c, target))
}

func TestSaveConfigMaintainsIndex(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")

	cfg, err := f.svc.SaveConfig(ctx, ConfigRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, models.AutonomySuggest, cfg.AutonomyLevel)
	assert.Equal(t, []int{5, 6}, cfg.Schedule.DaysOfWeek)
	assert.NotEmpty(t, cfg.ID)

	ids, err := f.svc.enabledUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)

	off := false
	_, err = f.svc.SaveConfig(ctx, ConfigRequest{UserID: "u1", Enabled: &off})
	require.NoError(t, err)
	ids, err = f.svc.enabledUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = f.svc.SaveConfig(ctx, ConfigRequest{UserID: "u1", AutonomyLevel: "yolo"})
	assert.Error(t, err)
	_, err = f.svc.SaveConfig(ctx, ConfigRequest{})
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestCheckAllCreatesOncePerTarget(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "+14155550101")
	_, err := f.svc.SaveConfig(ctx, ConfigRequest{UserID: "u1", AutonomyLevel: models.AutonomyFullAuto})
	require.NoError(t, err)

	n, err := f.svc.CheckAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = f.svc.CheckAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "plan already exists for the target date")
	assert.Len(t, f.planner.prompts, 1)

	plan, err := f.svc.GetPlan(ctx, "u1", "2026-10-16")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Equal(t, models.AutonomyPlanNotified, plan.Status)
	assert.Equal(t, "u1", plan.Plan.UserID)

	ttl, err := f.store.TTL(ctx, planKey("u1", "2026-10-16"))
	require.NoError(t, err)
	assert.Equal(t, PlanTTL, ttl)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "+14155550101", f.notifier.sent[0].to)
	assert.Contains(t, f.notifier.sent[0].body, "Conf: ABC-1234")
	assert.Contains(t, f.notifier.sent[0].body, "3 min walk after dinner")
}

func TestRunForWithoutPhoneOrStops(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "")
	f.planner.stops = nil

	_, err := f.svc.RunFor(ctx, "u1")
	assert.ErrorIs(t, err, ErrConfigNotFound)

	_, err = f.svc.SaveConfig(ctx, ConfigRequest{UserID: "u1"})
	require.NoError(t, err)
	plan, err := f.svc.RunFor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.AutonomyPlanPlanning, plan.Status)
	assert.Equal(t, "2026-10-16", plan.TargetDate)
	assert.Empty(t, f.notifier.sent)
}

func TestSuggestAsksForReply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, "+14155550101")
	f.svc.Conversations = &notification.Conversations{Store: f.store, Notify: f.notifier, BaseURL: "https://slate.test", Logger: zap.NewNop()}

	_, err := f.svc.SaveConfig(ctx, ConfigRequest{UserID: "u1"})
	require.NoError(t, err)
	_, err = f.svc.RunFor(ctx, "u1")
	require.NoError(t, err)

	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0].body, "91% your vibe")
	assert.Contains(t, f.notifier.sent[0].body, "Reply YES to book.")

	reply, err := f.svc.Conversations.HandleInbound(ctx, "+14155550101", "yes!")
	require.NoError(t, err)
	assert.Equal(t, "Great choice! Booking Via Carota for 7:00 PM. I'll confirm shortly.", reply)
}

func TestFormatMessageLevels(t *testing.T) {
	plan := &models.EveningPlan{Stops: dinnerStops()}

	msg := FormatMessage(models.AutonomyBookWithConfirm, "Friday, October 16", plan)
	assert.Contains(t, msg, "Booked your Friday, October 16")
	assert.Contains(t, msg, "Then 9:00 PM Little Branch")
	assert.Contains(t, msg, "Reply CANCEL")

	msg = FormatMessage(models.AutonomySuggest, "Friday, October 16", plan)
	assert.Contains(t, msg, "+ Little Branch after")
}
