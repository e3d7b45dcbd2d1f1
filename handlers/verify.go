package handlers

import (
	"net/http"

	"slate/services/verification"
	"slate/utils"

	"github.com/gin-gonic/gin"
)

type VerifyHandler struct {
	Verification verification.VerificationService
}

func NewVerifyHandler(svc verification.VerificationService) *VerifyHandler {
	return &VerifyHandler{Verification: svc}
}

func (h *VerifyHandler) SendCodeHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := h.Verification.SendCode(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err, "Failed to send SMS")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *VerifyHandler) CheckCodeHandler(c *gin.Context) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	phone, err := h.Verification.CheckCode(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		respondError(c, err, "Verification failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "phone": phone})
}
