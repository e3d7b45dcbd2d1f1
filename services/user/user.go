package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slate/database/kv"
	"slate/models"
	"slate/services/vibe"

	"go.uber.org/zap"
)

// ProfileKey is where a user's profile lives in the KV store.
func ProfileKey(userID string) string { return "user:" + userID }

// DefaultProfileService is the production implementation. Profiles never expire.
type DefaultProfileService struct {
	Store  kv.Store
	Logger *zap.Logger
	Now    func() time.Time
}

func NewProfileService(store kv.Store, logger *zap.Logger) *DefaultProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultProfileService{Store: store, Logger: logger, Now: time.Now}
}

// SaveProfile creates or replaces a profile. A missing vector is derived from
// the selected photos; CreatedAt survives updates.
func (s *DefaultProfileService) SaveProfile(ctx context.Context, req ProfileRequest) (*models.UserProfile, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	var vector models.VibeVector
	switch {
	case req.VibeVector != nil:
		vector = *req.VibeVector
	case len(req.FavoritePhotos) > 0:
		vector = vibe.FromSelections(req.FavoritePhotos)
	default:
		return nil, ErrVibeRequired
	}

	now := s.Now()
	profile := &models.UserProfile{
		ID:             userID,
		Phone:          req.Phone,
		VibeVector:     vector,
		VibeSummary:    vibe.Summary(vector),
		FavoritePhotos: req.FavoritePhotos,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if profile.FavoritePhotos == nil {
		profile.FavoritePhotos = []string{}
	}

	var existing models.UserProfile
	found, err := s.Store.Get(ctx, ProfileKey(userID), &existing)
	if err != nil {
		return nil, fmt.Errorf("SaveProfile: %w", err)
	}
	if found {
		profile.CreatedAt = existing.CreatedAt
		if profile.Phone == "" {
			profile.Phone = existing.Phone
		}
	}

	if err := s.Store.Set(ctx, ProfileKey(userID), profile, 0); err != nil {
		return nil, fmt.Errorf("SaveProfile: %w", err)
	}
	s.Logger.Debug("profile saved", zap.String("userId", userID), zap.String("summary", profile.VibeSummary))
	return profile, nil
}

func (s *DefaultProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUserIDRequired
	}
	var p models.UserProfile
	found, err := s.Store.Get(ctx, ProfileKey(userID), &p)
	if err != nil {
		return nil, fmt.Errorf("GetProfile: %w", err)
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}
