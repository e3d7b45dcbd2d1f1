package handlers

import (
	"net/http"

	"slate/services/autonomy"
	"slate/utils"

	"github.com/gin-gonic/gin"
)

type AutonomyHandler struct {
	Autonomy autonomy.AutonomyService
}

func NewAutonomyHandler(svc autonomy.AutonomyService) *AutonomyHandler {
	return &AutonomyHandler{Autonomy: svc}
}

func (h *AutonomyHandler) GetConfigHandler(c *gin.Context) {
	cfg, err := h.Autonomy.GetConfig(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "Failed to load config")
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *AutonomyHandler) SaveConfigHandler(c *gin.Context) {
	var req autonomy.ConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	cfg, err := h.Autonomy.SaveConfig(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save config")
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

// RunHandler plans the user's next scheduled evening right away.
func (h *AutonomyHandler) RunHandler(c *gin.Context) {
	plan, err := h.Autonomy.RunFor(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Autonomous planning failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// CheckHandler runs the scheduled check once, for deployments that trigger it externally.
func (h *AutonomyHandler) CheckHandler(c *gin.Context) {
	n, err := h.Autonomy.CheckAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Autonomy check failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "created": n})
}
