package autonomy

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"slate/models"

	"github.com/google/uuid"
)

const indexKey = "autonomy:index"

func configKey(userID string) string { return "autonomy:config:" + userID }

func planKey(userID, date string) string {
	return "autonomy:plan:" + userID + ":" + date
}

// ConfigRequest is the body accepted when saving a config. Omitted sections
// fall back to DefaultSchedule and DefaultConstraints.
type ConfigRequest struct {
	ID            string                      `json:"id,omitempty"`
	UserID        string                      `json:"userId"`
	Enabled       *bool                       `json:"enabled,omitempty"`
	AutonomyLevel models.AutonomyLevel        `json:"autonomyLevel,omitempty"`
	Schedule      *models.AutonomySchedule    `json:"schedule,omitempty"`
	Constraints   *models.AutonomyConstraints `json:"constraints,omitempty"`
}

// DefaultSchedule plans Friday and Saturday evenings two days ahead at 10:00.
func DefaultSchedule() models.AutonomySchedule {
	return models.AutonomySchedule{DaysOfWeek: []int{5, 6}, NotifyDaysBefore: 2, NotifyTime: "10:00"}
}

func DefaultConstraints() models.AutonomyConstraints {
	return models.AutonomyConstraints{
		PartySize:          2,
		Neighborhoods:      []string{},
		CuisinePreferences: []string{},
		CuisineExclusions:  []string{},
		BudgetPerPerson:    models.BudgetRange{Min: 50, Max: 150},
		TimePreference:     models.TimeWindow{Earliest: "18:00", Latest: "21:00"},
		IncludeDrinks:      true,
	}
}

func validLevel(l models.AutonomyLevel) bool {
	switch l {
	case models.AutonomySuggest, models.AutonomyBookWithConfirm, models.AutonomyFullAuto:
		return true
	}
	return false
}

func (s *DefaultAutonomyService) SaveConfig(ctx context.Context, req ConfigRequest) (*models.AutonomyConfig, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, ErrMissingUser
	}
	cfg := models.AutonomyConfig{
		ID:            req.ID,
		UserID:        userID,
		Enabled:       true,
		AutonomyLevel: models.AutonomySuggest,
		Schedule:      DefaultSchedule(),
		Constraints:   DefaultConstraints(),
		UpdatedAt:     s.now(),
	}
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	if req.Enabled != nil {
		cfg.Enabled = *req.Enabled
	}
	if req.AutonomyLevel != "" {
		if !validLevel(req.AutonomyLevel) {
			return nil, NewAutonomyError(CodeInvalid, fmt.Sprintf("Unknown autonomy level %q", req.AutonomyLevel))
		}
		cfg.AutonomyLevel = req.AutonomyLevel
	}
	if req.Schedule != nil {
		if err := validateSchedule(*req.Schedule); err != nil {
			return nil, err
		}
		cfg.Schedule = *req.Schedule
	}
	if req.Constraints != nil {
		cfg.Constraints = *req.Constraints
		if cfg.Constraints.PartySize < 1 {
			cfg.Constraints.PartySize = 2
		}
	}

	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	if err := s.Store.Set(ctx, configKey(userID), cfg, 0); err != nil {
		return nil, fmt.Errorf("SaveConfig: %w", err)
	}
	if err := s.updateIndex(ctx, userID, cfg.Enabled); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *DefaultAutonomyService) GetConfig(ctx context.Context, userID string) (*models.AutonomyConfig, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrMissingUser
	}
	var cfg models.AutonomyConfig
	found, err := s.Store.Get(ctx, configKey(userID), &cfg)
	if err != nil {
		return nil, fmt.Errorf("GetConfig: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &cfg, nil
}

func validateSchedule(sc models.AutonomySchedule) error {
	if len(sc.DaysOfWeek) == 0 {
		return NewAutonomyError(CodeInvalid, "Schedule needs at least one day")
	}
	for _, d := range sc.DaysOfWeek {
		if d < 0 || d > 6 {
			return NewAutonomyError(CodeInvalid, fmt.Sprintf("Invalid day of week %d", d))
		}
	}
	if sc.NotifyDaysBefore < 0 || sc.NotifyDaysBefore > 6 {
		return NewAutonomyError(CodeInvalid, "notifyDaysBefore must be between 0 and 6")
	}
	if _, ok := notifyHour(sc.NotifyTime); !ok {
		return NewAutonomyError(CodeInvalid, fmt.Sprintf("Invalid notify time %q", sc.NotifyTime))
	}
	return nil
}

// updateIndex keeps the list of users with an enabled config. Callers hold indexMu.
func (s *DefaultAutonomyService) updateIndex(ctx context.Context, userID string, enabled bool) error {
	var ids []string
	if _, err := s.Store.Get(ctx, indexKey, &ids); err != nil {
		return fmt.Errorf("autonomy index: %w", err)
	}
	has := slices.Contains(ids, userID)
	switch {
	case enabled && !has:
		ids = append(ids, userID)
		slices.Sort(ids)
	case !enabled && has:
		ids = slices.DeleteFunc(ids, func(id string) bool { return id == userID })
	default:
		return nil
	}
	if err := s.Store.Set(ctx, indexKey, ids, 0); err != nil {
		return fmt.Errorf("autonomy index: %w", err)
	}
	return nil
}

func (s *DefaultAutonomyService) enabledUsers(ctx context.Context) ([]string, error) {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()
	var ids []string
	if _, err := s.Store.Get(ctx, indexKey, &ids); err != nil {
		return nil, fmt.Errorf("autonomy index: %w", err)
	}
	return ids, nil
}
