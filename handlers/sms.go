package handlers

import (
	"net/http"

	"slate/services/notification"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const emptyTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`

type SMSHandler struct {
	Conversations *notification.Conversations
	Logger        *zap.Logger
}

func NewSMSHandler(conv *notification.Conversations, logger *zap.Logger) *SMSHandler {
	return &SMSHandler{Conversations: conv, Logger: logger}
}

// InboundHandler is the Twilio messaging webhook. It always answers with
// empty TwiML; replies are sent through the REST API.
func (h *SMSHandler) InboundHandler(c *gin.Context) {
	from := c.PostForm("From")
	body := c.PostForm("Body")
	if from != "" {
		if _, err := h.Conversations.HandleInbound(c.Request.Context(), from, body); err != nil {
			h.Logger.Error("Inbound SMS handling failed", zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "text/xml", []byte(emptyTwiML))
}

// SendHandler sends an SMS and, with a context, waits for the recipient's reply.
func (h *SMSHandler) SendHandler(c *gin.Context) {
	var req struct {
		To      string                      `json:"to"`
		Message string                      `json:"message"`
		Context *notification.PendingAction `json:"context,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.To == "" || req.Message == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing to or message", "")
		return
	}
	ctx := c.Request.Context()
	var err error
	if req.Context != nil {
		err = h.Conversations.Ask(ctx, req.To, req.Message, *req.Context)
	} else {
		err = h.Conversations.Notify.QueueSMS(ctx, req.To, req.Message)
	}
	if err != nil {
		respondError(c, err, "Failed to send")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
