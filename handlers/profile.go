package handlers

import (
	"net/http"

	"slate/services/user"
	"slate/services/vibe"
	"slate/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Profiles user.ProfileService
}

func NewProfileHandler(profiles user.ProfileService) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles}
}

func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.Profiles.GetProfile(c.Request.Context(), c.Query("userId"))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) SaveProfileHandler(c *gin.Context) {
	var req user.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	p, err := h.Profiles.SaveProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// PhotosHandler lists the onboarding photos a profile can be built from.
func (h *ProfileHandler) PhotosHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"photos": vibe.Photos})
}

// ExtractHandler previews the vector and summary for a set of photos
// without saving anything.
func (h *ProfileHandler) ExtractHandler(c *gin.Context) {
	var req struct {
		PhotoIDs []string `json:"photoIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.PhotoIDs) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Photo IDs required", "")
		return
	}
	v := vibe.FromSelections(req.PhotoIDs)
	c.JSON(http.StatusOK, gin.H{"vibeVector": v, "summary": vibe.Summary(v), "source": "photos"})
}
