package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"slate/database/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	to, body string
	err      error
}

func (f *fakeNotifier) SendSMS(_ context.Context, to, body string) error {
	f.to, f.body = to, body
	return f.err
}

func (f *fakeNotifier) QueueSMS(ctx context.Context, to, body string) error {
	return f.SendSMS(ctx, to, body)
}

func newTestService(now *time.Time) (*DefaultVerificationService, *fakeNotifier, *kv.MemoryStore) {
	clock := func() time.Time { return *now }
	store := kv.NewMemoryStore().WithClock(clock)
	n := &fakeNotifier{}
	svc := NewVerificationService(store, n, zap.NewNop())
	svc.Now = clock
	svc.Generate = func(int) (string, error) { return "123456", nil }
	return svc, n, store
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"(415) 555-0101", "+14155550101", true},
		{"14155550101", "+14155550101", true},
		{"+44 20 7946 0958", "+442079460958", true},
		{"555-0101", "", false},
		{"24155550101", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizePhone(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSendAndCheck(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)
	svc, n, store := newTestService(&now)

	require.NoError(t, svc.SendCode(ctx, "415-555-0101"))
	assert.Equal(t, "+14155550101", n.to)
	assert.Equal(t, "Your Slate verification code is: 123456", n.body)

	var rec codeRecord
	found, err := store.Get(ctx, "verify:+14155550101", &rec)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, rec.Hash, "123456")

	_, err = svc.CheckCode(ctx, "4155550101", "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)

	phone, err := svc.CheckCode(ctx, "4155550101", "123456")
	require.NoError(t, err)
	assert.Equal(t, "+14155550101", phone)

	// codes are single use
	_, err = svc.CheckCode(ctx, "4155550101", "123456")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCheckCodeExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(&now)

	require.NoError(t, svc.SendCode(ctx, "4155550101"))
	now = now.Add(CodeTTL + 30*time.Second)

	_, err := svc.CheckCode(ctx, "4155550101", "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)

	_, err = svc.CheckCode(ctx, "4155550101", "123456")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc, n, _ := newTestService(&now)

	assert.ErrorIs(t, svc.SendCode(ctx, ""), ErrPhoneRequired)
	assert.ErrorIs(t, svc.SendCode(ctx, "12345"), ErrInvalidPhone)
	_, err := svc.CheckCode(ctx, "4155550101", "")
	assert.ErrorIs(t, err, ErrCodeRequired)

	n.err = errors.New("twilio down")
	assert.Error(t, svc.SendCode(ctx, "4155550101"))
}
