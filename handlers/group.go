package handlers

import (
	"context"
	"net/http"
	"strings"

	"slate/models"
	"slate/services/events"
	"slate/services/group"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GroupHandler struct {
	Sessions group.GroupSessionService
	Logger   *zap.Logger
}

func NewGroupHandler(sessions group.GroupSessionService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{Sessions: sessions, Logger: logger}
}

func (h *GroupHandler) CreateSessionHandler(c *gin.Context) {
	var req group.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	session, err := h.Sessions.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create session")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
		"creatorId": session.CreatorID,
		"joinUrl":   "/group/" + session.ID,
		"session":   session,
	})
}

func (h *GroupHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Sessions.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "Failed to load session")
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *GroupHandler) JoinSessionHandler(c *gin.Context) {
	var req group.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	participant, session, err := h.Sessions.Join(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		respondError(c, err, "Failed to join session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"participantId": participant.ID, "session": session})
}

func (h *GroupHandler) UpdateConstraintsHandler(c *gin.Context) {
	var req struct {
		ParticipantID string                  `json:"participantId"`
		Constraints   models.GroupConstraints `json:"constraints"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	session, err := h.Sessions.UpdateConstraints(c.Request.Context(), c.Param("sessionId"), req.ParticipantID, req.Constraints)
	if err != nil {
		respondError(c, err, "Failed to update constraints")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// SolveHandler streams the solver's progress. Lookup errors are returned as
// plain JSON before the stream starts.
func (h *GroupHandler) SolveHandler(c *gin.Context) {
	id := c.Param("sessionId")
	ctx := c.Request.Context()
	if _, err := h.Sessions.Get(ctx, id); err != nil {
		respondError(c, err, "Failed to load session")
		return
	}
	// The solve outlives a disconnected client so its result is still saved.
	work := context.WithoutCancel(ctx)
	streamSSE(c, func(sink events.Sink) gin.H {
		result, session, err := h.Sessions.Solve(work, id, sink)
		if err != nil {
			return gin.H{"type": models.EventError, "message": publicMessage(err)}
		}
		return gin.H{"type": "final", "result": result, "session": session}
	})
}

func (h *GroupHandler) BookHandler(c *gin.Context) {
	rec := &events.Recorder{}
	session, err := h.Sessions.BookSolution(c.Request.Context(), c.Param("sessionId"), rec)
	if err != nil {
		respondError(c, err, "Failed to book session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "events": rec.Events()})
}

func (h *GroupHandler) InviteHandler(c *gin.Context) {
	var req struct {
		Phones []string `json:"phones"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	phones := req.Phones[:0]
	for _, p := range req.Phones {
		if p = strings.TrimSpace(p); p != "" {
			phones = append(phones, p)
		}
	}
	if len(phones) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "At least one phone number is required", "")
		return
	}
	if err := h.Sessions.Invite(c.Request.Context(), c.Param("sessionId"), phones); err != nil {
		respondError(c, err, "Failed to send invites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "invited": len(phones)})
}
