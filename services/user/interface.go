package user

import (
	"context"

	"slate/models"
)

// ProfileService stores and reads users' vibe profiles.
type ProfileService interface {
	SaveProfile(ctx context.Context, req ProfileRequest) (*models.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

// ProfileRequest carries either an explicit vector or the onboarding photos
// it should be derived from.
type ProfileRequest struct {
	UserID         string             `json:"userId"`
	Phone          string             `json:"phone,omitempty"`
	VibeVector     *models.VibeVector `json:"vibeVector,omitempty"`
	FavoritePhotos []string           `json:"favoritePhotos,omitempty"`
}
