package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	planRepo "slate/database/repository/plan"
	"slate/models"
	"slate/services/events"
	"slate/services/planner"
	"slate/services/user"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PlanHandler struct {
	Planner  planner.PlannerService
	Plans    planRepo.PlanRepository // optional
	Profiles user.ProfileService     // optional
	Logger   *zap.Logger
}

func NewPlanHandler(p planner.PlannerService, plans planRepo.PlanRepository, profiles user.ProfileService, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{Planner: p, Plans: plans, Profiles: profiles, Logger: logger}
}

type planRequest struct {
	Prompt          string              `json:"prompt"`
	UserID          string              `json:"userId,omitempty"`
	UserVibeProfile *models.UserProfile `json:"userVibeProfile,omitempty"`
}

func (h *PlanHandler) bind(c *gin.Context) (planRequest, bool) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return req, false
	}
	if strings.TrimSpace(req.Prompt) == "" {
		utils.JSONError(c, http.StatusBadRequest, "Prompt is required", "")
		return req, false
	}
	return req, true
}

// profile prefers an inline profile, then the stored one for userId.
func (h *PlanHandler) profile(ctx context.Context, req planRequest) *models.UserProfile {
	if req.UserVibeProfile != nil {
		return req.UserVibeProfile
	}
	if req.UserID == "" || h.Profiles == nil {
		return nil
	}
	p, err := h.Profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		if !errors.Is(err, user.ErrProfileNotFound) {
			h.Logger.Warn("profile lookup failed", zap.String("userId", req.UserID), zap.Error(err))
		}
		return &models.UserProfile{ID: req.UserID, VibeVector: models.NeutralVibe()}
	}
	return p
}

// CreatePlanHandler plans synchronously and returns the plan with every event.
func (h *PlanHandler) CreatePlanHandler(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	rec := &events.Recorder{}
	plan := h.Planner.CreatePlan(c.Request.Context(), req.Prompt, h.profile(c.Request.Context(), req), rec)
	c.JSON(http.StatusOK, gin.H{"plan": plan, "events": rec.Events()})
}

// StreamPlanHandler plans while streaming progress as server-sent events.
func (h *PlanHandler) StreamPlanHandler(c *gin.Context) {
	req, ok := h.bind(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	profile := h.profile(ctx, req)
	// Planning continues after a disconnect so the archived plan is complete.
	work := context.WithoutCancel(ctx)
	streamSSE(c, func(sink events.Sink) gin.H {
		plan := h.Planner.CreatePlan(work, req.Prompt, profile, sink)
		return gin.H{"type": "final", "plan": plan}
	})
}

func (h *PlanHandler) GetPlanHandler(c *gin.Context) {
	if h.Plans == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Plan archive is not configured", "")
		return
	}
	plan, err := h.Plans.Get(c.Request.Context(), c.Param("planId"))
	if err != nil {
		respondError(c, err, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) ListPlansHandler(c *gin.Context) {
	if h.Plans == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "Plan archive is not configured", "")
		return
	}
	userID := c.Query("userId")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing userId", "")
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil || limit < 1 {
		limit = 20
	}
	plans, err := h.Plans.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, err, "Failed to list plans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
