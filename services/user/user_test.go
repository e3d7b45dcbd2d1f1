package user

import (
	"context"
	"testing"
	"time"

	"slate/database/kv"
	"slate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveProfileFromPhotos(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(kv.NewMemoryStore(), zap.NewNop())

	p, err := svc.SaveProfile(ctx, ProfileRequest{UserID: "u1", FavoritePhotos: []string{"dim-romantic", "cozy-neighborhood"}})
	require.NoError(t, err)
	assert.Equal(t, 25, p.VibeVector.Lighting)
	assert.Equal(t, 30, p.VibeVector.NoiseLevel)
	assert.Contains(t, p.VibeSummary, "dim lighting")

	got, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, p.VibeVector, got.VibeVector)
}

func TestSaveProfileKeepsCreatedAt(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(kv.NewMemoryStore(), zap.NewNop())
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return t0 }

	v := models.NeutralVibe()
	_, err := svc.SaveProfile(ctx, ProfileRequest{UserID: "u1", Phone: "+14155550101", VibeVector: &v})
	require.NoError(t, err)

	svc.Now = func() time.Time { return t0.Add(48 * time.Hour) }
	v.Lighting = 10
	p, err := svc.SaveProfile(ctx, ProfileRequest{UserID: "u1", VibeVector: &v})
	require.NoError(t, err)
	assert.True(t, p.CreatedAt.Equal(t0))
	assert.True(t, p.UpdatedAt.After(t0))
	assert.Equal(t, "+14155550101", p.Phone)
	assert.Equal(t, 10, p.VibeVector.Lighting)
}

func TestProfileErrors(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(kv.NewMemoryStore(), zap.NewNop())

	_, err := svc.SaveProfile(ctx, ProfileRequest{UserID: "u1"})
	assert.ErrorIs(t, err, ErrVibeRequired)
	_, err = svc.SaveProfile(ctx, ProfileRequest{})
	assert.ErrorIs(t, err, ErrUserIDRequired)
	_, err = svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
